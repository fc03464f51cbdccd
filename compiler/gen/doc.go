// Package gen generates project files from a model and a catalog of targets.
//
// # Pipeline
//
//	tgen.yaml ──► load.Project ──► Config (options)
//	model.yaml ──► model.Model
//	templates.cfg ──► []target.Definition
//	        ↓
//	   Task.Plan: one target.Target per entity target and entity,
//	   one per once and resource target
//	        ↓
//	   Task.Run: render (or copy) each target in parallel, format Go
//	   files, write them under the destination folder
//
// # Renderers
//
// A template is rendered by the renderer registered for its extension,
// or by the default renderer:
//
//   - TemplateRenderer: text/template with the sprig functions. The data
//     is a *Context holding the target, the entity, the model, the SQL
//     statements of the entity and the project variables.
//   - StatementsRenderer (".jen"): a Go file declaring the SQL statements
//     of the entity as constants.
//
// Custom renderers are registered with WithRenderer.
//
// # Errors
//
// Failures while producing a file are returned as *tgen.GenerationError,
// which records the target, the entity and the file:
//
//	res, err := task.Run(ctx)
//	if tgen.IsGenerationError(err) {
//		var genErr *tgen.GenerationError
//		errors.As(err, &genErr)
//		log.Printf("target %s failed: %v", genErr.Target, genErr.Cause)
//	}
package gen
