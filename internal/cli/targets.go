package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syssam/tgen/compiler/gen"
	"github.com/syssam/tgen/target"
)

// TargetsCmd returns the targets command listing the resolved targets.
func TargetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the files a generation would produce",
		Long: `Resolve the targets of the project catalog for the model entities and
print, for each generated file, the target name, the entity, the template
and the file path relative to the destination folder.

With --package, the package of each file is derived from its folder and
the given source folder, as in:

  tgen targets --package src/main/java`,
		Args: cobra.NoArgs,
		RunE: runTargets,
	}

	addConfigFlag(cmd)
	cmd.Flags().StringArrayP("entity", "e", nil, "Entity to resolve (repeatable)")
	cmd.Flags().StringArrayP("target", "t", nil, "Target to resolve (repeatable)")
	cmd.Flags().String("package", "", "Source folder used to derive the package of each file")

	return cmd
}

func runTargets(cmd *cobra.Command, _ []string) error {
	names, _ := cmd.Flags().GetStringArray("target")
	entities, _ := cmd.Flags().GetStringArray("entity")
	srcFolder, _ := cmd.Flags().GetString("package")

	w, err := loadWorkspace(cmd, names)
	if err != nil {
		return err
	}
	cfg, err := w.config(newLogger(io.Discard, false))
	if err != nil {
		return err
	}
	task, err := gen.NewTask(cfg, w.model, w.targets, entities...)
	if err != nil {
		return err
	}
	targets, err := task.Plan()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	header := "TARGET\tENTITY\tTEMPLATE\tFILE"
	if srcFolder != "" {
		header += "\tPACKAGE"
	}
	fmt.Fprintln(tw, header)
	for _, t := range targets {
		entity := t.EntityName()
		if entity == "" {
			entity = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s", t.Name(), entity, t.Template(), t.OutputFileNameInProject())
		if srcFolder != "" {
			fmt.Fprintf(tw, "\t%s", packageOf(t, srcFolder))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func packageOf(t *target.Target, srcFolder string) string {
	pkg, err := t.PackageFromFolder(srcFolder)
	if err != nil {
		return "-"
	}
	return pkg
}
