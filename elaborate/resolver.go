package elaborate

import "github.com/n3lang/n3c/ast"

// Resolver looks up a named model's compiled Graph, following a `use`
// origin. The Graph registry (the registry package) implements this;
// elaborate depends only on the interface so the Graph/Model elaborators
// never import registry (which in turn depends on elaborate to run the
// compiler it guards).
type Resolver interface {
	Find(name string, origin ast.UseOrigin) (*Graph, error)
}
