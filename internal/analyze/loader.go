package analyze

import (
	"errors"
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"

	"tsvwriter/plan"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedTypes |
	packages.NeedImports |
	packages.NeedDeps

var (
	ErrTypeNotFound = errors.New("type not found")
	ErrAmbiguous    = errors.New("type name is ambiguous")
)

// Graph holds the named types of the loaded packages.
type Graph struct {
	// Types maps TypeID to the go/types type for all exported named types.
	Types map[plan.TypeID]types.Type
	// Packages lists the loaded package paths in load order.
	Packages []string
}

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph *Graph
	dir   string
}

// NewAnalyzer creates an Analyzer resolving patterns relative to dir
// (the current directory when empty).
func NewAnalyzer(dir string) *Analyzer {
	return &Analyzer{
		graph: &Graph{Types: make(map[plan.TypeID]types.Type)},
		dir:   dir,
	}
}

// LoadPackages loads the specified packages and adds their named types to the graph.
// Patterns are standard Go package patterns (e.g., "./store", "tsvwriter/store").
func (a *Analyzer) LoadPackages(patterns ...string) (*Graph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *Graph {
	return a.graph
}

// processPackage records the exported named types of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() {
			continue
		}

		id := plan.TypeID{PkgPath: pkg.PkgPath, Name: name}
		a.graph.Types[id] = typeName.Type()
	}

	a.graph.Packages = append(a.graph.Packages, pkg.PkgPath)
}

// Lookup returns the descriptor of a type by name. The name may be qualified
// ("tsvwriter/store.Order") or bare ("Order"), in which case it must be unique
// across the loaded packages.
func (g *Graph) Lookup(name string) (plan.Descriptor, error) {
	var found []plan.TypeID

	for id := range g.Types {
		if id.String() == name {
			return NewDescriptor(g.Types[id]), nil
		}
		if id.Name == name {
			found = append(found, id)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
	case 1:
		return NewDescriptor(g.Types[found[0]]), nil
	default:
		return nil, fmt.Errorf("%w: %s matches %d types", ErrAmbiguous, name, len(found))
	}
}
