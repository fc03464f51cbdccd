// Package variables implements the project variables used in target
// file and folder patterns, and their "${NAME}" substitution.
package variables

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/tgen"
)

const (
	// UpperSuffix is appended to a variable name to get its upper-case form.
	UpperSuffix = "_UC"
	// LowerSuffix is appended to a variable name to get its lower-case form.
	LowerSuffix = "_LC"
	// PackageSuffix marks a variable holding a dotted package name.
	PackageSuffix = "_PKG"
	// DirSuffix is appended to a package variable name for its path form.
	DirSuffix = "_DIR"
)

// Variable is a single project variable.
type Variable struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// Set is an ordered set of variables with unique names.
// A Set is never modified after construction; the transforms return a new Set.
// A nil *Set behaves as an empty set.
type Set struct {
	vars  []Variable
	index map[string]int
}

// New returns a set holding the given variables in order.
// It returns an error if a name is blank or appears twice.
func New(vars ...Variable) (*Set, error) {
	s := &Set{
		vars:  make([]Variable, 0, len(vars)),
		index: make(map[string]int, len(vars)),
	}
	for _, v := range vars {
		if strings.TrimSpace(v.Name) == "" {
			return nil, tgen.NewConfigError("Variables", v.Value, "variable name cannot be blank")
		}
		if _, ok := s.index[v.Name]; ok {
			return nil, tgen.NewConfigError("Variables", v.Name, "duplicate variable name")
		}
		s.index[v.Name] = len(s.vars)
		s.vars = append(s.vars, v)
	}
	return s, nil
}

// MustNew is like New but panics on error.
func MustNew(vars ...Variable) *Set {
	s, err := New(vars...)
	if err != nil {
		panic(err)
	}
	return s
}

// FromPairs builds a set from name/value pairs: FromPairs("SRC", "src", "TEST", "test").
// It panics on an odd number of arguments.
func FromPairs(pairs ...string) (*Set, error) {
	if len(pairs)%2 != 0 {
		panic("variables: odd number of arguments in FromPairs")
	}
	vars := make([]Variable, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		vars = append(vars, Variable{Name: pairs[i], Value: pairs[i+1]})
	}
	return New(vars...)
}

// Len returns the number of variables.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.vars)
}

// Get returns the value of the named variable.
func (s *Set) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.vars[i].Value, true
}

// Variables returns a copy of the variables in order.
func (s *Set) Variables() []Variable {
	if s == nil {
		return nil
	}
	return append([]Variable(nil), s.vars...)
}

// With returns a copy of the set where name is bound to value. An existing
// binding keeps its position, a new one is appended.
func (s *Set) With(name, value string) *Set {
	c := s.clone(1)
	if i, ok := c.index[name]; ok {
		c.vars[i].Value = value
		return c
	}
	c.index[name] = len(c.vars)
	c.vars = append(c.vars, Variable{Name: name, Value: value})
	return c
}

// Prepend returns a copy of the set with name bound to value in first
// position. An existing binding with the same name is dropped.
func (s *Set) Prepend(name, value string) *Set {
	c := &Set{
		vars:  make([]Variable, 0, s.Len()+1),
		index: make(map[string]int, s.Len()+1),
	}
	c.index[name] = 0
	c.vars = append(c.vars, Variable{Name: name, Value: value})
	for _, v := range s.Variables() {
		if v.Name == name {
			continue
		}
		c.index[v.Name] = len(c.vars)
		c.vars = append(c.vars, v)
	}
	return c
}

// Replace substitutes every known variable found in src, in set order.
// Placeholders with no binding are left as they are.
func (s *Set) Replace(src string) string {
	if s == nil {
		return src
	}
	for _, v := range s.vars {
		src = ReplaceVar(src, v.Name, v.Value)
	}
	return src
}

// WithPackagePaths returns a copy of the set where every package variable
// (name ending with "_PKG") holds its path form, with each '.' replaced by
// the platform path separator. A derived "<NAME>_DIR" variable carrying the
// same path is bound as well. Applying it more than once has no further effect.
func (s *Set) WithPackagePaths() *Set {
	c := s.clone(s.Len())
	for _, v := range s.Variables() {
		if !IsPackageVariable(v.Name) {
			continue
		}
		dir := PackageToPath(v.Value)
		c.vars[c.index[v.Name]].Value = dir
		derived := v.Name + DirSuffix
		if i, ok := c.index[derived]; ok {
			c.vars[i].Value = dir
			continue
		}
		c.index[derived] = len(c.vars)
		c.vars = append(c.vars, Variable{Name: derived, Value: dir})
	}
	return c
}

func (s *Set) clone(extra int) *Set {
	c := &Set{
		vars:  make([]Variable, 0, s.Len()+extra),
		index: make(map[string]int, s.Len()+extra),
	}
	for i, v := range s.Variables() {
		c.index[v.Name] = i
		c.vars = append(c.vars, v)
	}
	return c
}

// IsPackageVariable reports whether name follows the package variable
// naming convention.
func IsPackageVariable(name string) bool {
	return len(name) > len(PackageSuffix) && strings.HasSuffix(name, PackageSuffix)
}

// PackageToPath converts a dotted package name to a path.
func PackageToPath(pkg string) string {
	return strings.ReplaceAll(pkg, ".", string(filepath.Separator))
}

// Placeholder returns the "${name}" form of a variable name.
func Placeholder(name string) string {
	return "${" + name + "}"
}

// Upper returns the language-neutral upper-case form of s.
// A Caser keeps state, so one is created per call.
func Upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Lower returns the language-neutral lower-case form of s.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// ReplaceVar replaces one variable in src. The placeholder forms are tried
// in order "${NAME}", "${NAME_UC}" and "${NAME_LC}"; only the first form
// present in src is replaced, using value as is, upper-cased or
// lower-cased respectively. A blank name returns src unchanged.
func ReplaceVar(src, name, value string) string {
	if strings.TrimSpace(name) == "" {
		return src
	}
	if p := Placeholder(name); strings.Contains(src, p) {
		return strings.ReplaceAll(src, p, value)
	}
	if p := Placeholder(name + UpperSuffix); strings.Contains(src, p) {
		return strings.ReplaceAll(src, p, Upper(value))
	}
	if p := Placeholder(name + LowerSuffix); strings.Contains(src, p) {
		return strings.ReplaceAll(src, p, Lower(value))
	}
	return src
}
