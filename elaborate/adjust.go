package elaborate

import (
	"fmt"

	"github.com/n3lang/n3c/ast"
	"github.com/n3lang/n3c/compileerr"
	"github.com/n3lang/n3c/dim"
	"github.com/n3lang/n3c/state"
)

// adjustShapes parses the declared output shapes for g's last node (spec
// §4.5.2). isInputContext is true only for the shape declared on the
// graph's own input line, where coined placeholders are tagged is_input.
func (g *Graph) adjustShapes(model, node string, spec ast.ShapeSpec, isInputContext bool) error {
	args := make(map[dim.ArgIndex]dim.Shape, len(spec.Args))
	coinedAny := false

	for i, argSpec := range spec.Args {
		if argSpec.Index != uint64(i) {
			return compileerr.UnvalidNodeArg(model, node, argIndexString(argSpec.Index))
		}
		dims := make([]dim.Dim, len(argSpec.Dims))
		for j, de := range argSpec.Dims {
			converted, coined, err := g.convertDim(model, node, de, isInputContext)
			if err != nil {
				return err
			}
			if coined {
				coinedAny = true
			}
			dims[j] = converted
		}
		args[dim.ArgIndex(i)] = dim.FixedShape(dims)
	}
	declared := dim.FixedShapes(args)

	lastNode, ok := g.LastNode()
	if !ok {
		return compileerr.ShapeNotDefined(model, node)
	}
	prior := lastNode.Shapes

	final := declared
	if g.st.IsTransform() {
		priorProduct := prior.Product()
		declaredProduct := declared.Product()
		if ok, err := priorProduct.ValidateArgsRank(declaredProduct); err != nil {
			return wrapShapeErr(model, node, err)
		} else if ok {
			if err := g.unifyShapes(model, node, priorProduct, declaredProduct); err != nil {
				return err
			}
		}
	} else {
		if ok, err := prior.ValidateArgsRank(declared); err != nil {
			return wrapShapeErr(model, node, err)
		} else if ok {
			unified, err := g.unifyShapesResult(model, node, prior, declared)
			if err != nil {
				return err
			}
			final = unified
		}
	}

	g.SetLastShapes(final)
	g.st = state.AfterAdjust(coinedAny)
	return nil
}

// unifyShapes runs update_dim pairwise across two equal-rank, equal-arg
// Fixed bundles purely for its binding side effects (used by the
// Transform path, where the unified value itself is discarded in favor
// of the originally declared, non-reduced shape).
func (g *Graph) unifyShapes(model, node string, expected, ground dim.Shapes) error {
	_, err := g.unifyShapesResult(model, node, expected, ground)
	return err
}

// unifyShapesResult runs update_dim pairwise across two equal-rank,
// equal-arg Fixed bundles and returns the unified bundle.
func (g *Graph) unifyShapesResult(model, node string, expected, ground dim.Shapes) (dim.Shapes, error) {
	out := make(map[dim.ArgIndex]dim.Shape, expected.Len())
	for _, a := range expected.Args() {
		groundShape, ok := ground.Get(a.Index)
		if !ok {
			return dim.Shapes{}, compileerr.DifferentArgs(model, node)
		}
		expDims, _ := a.Shape.Dims()
		groundDims, _ := groundShape.Dims()
		resultDims := make([]dim.Dim, len(expDims))
		for i := range expDims {
			result, err := g.updateDim(model, node, expDims[i], groundDims[i])
			if err != nil {
				return dim.Shapes{}, err
			}
			resultDims[i] = result
		}
		out[a.Index] = dim.FixedShape(resultDims)
	}
	return dim.FixedShapes(out), nil
}

func wrapShapeErr(model, node string, err error) error {
	switch err {
	case dim.ErrDifferentRank:
		return compileerr.DifferentRank(model, node)
	case dim.ErrDifferentArgs:
		return compileerr.DifferentArgs(model, node)
	default:
		return err
	}
}

func argIndexString(i uint64) string {
	return fmt.Sprintf("%d", i)
}
