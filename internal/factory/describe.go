package factory

import (
	"fmt"
	"go/types"
	"strings"

	"github.com/toyz/matchgen/internal/models"
	"github.com/toyz/matchgen/internal/typetext"
)

// Describe builds the descriptor of an accepted factory function
func Describe(fn *types.Func) models.FactoryMethod {
	sig := fn.Signature()
	results := sig.Results()

	builder := models.NewFactoryMethodBuilder(declaringType(fn), fn.Name(), typetext.Raw(results.At(0).Type()))

	for i := 0; i < sig.TypeParams().Len(); i++ {
		builder.AddTypeParameter(TypeParameter(sig.TypeParams().At(i)))
	}

	if named := typetext.NamedOf(results.At(0).Type()); named != nil && named.TypeArgs().Len() > 0 {
		builder.SetGenerifiedType(typetext.String(named.TypeArgs().At(0)))
	}

	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		text := typetext.String(params.At(i).Type())
		if sig.Variadic() && i == params.Len()-1 {
			text = typetext.Variadic(text)
		}
		builder.AddParameter(text, fmt.Sprintf("param%d", i+1))
	}

	for i := 1; i < results.Len(); i++ {
		builder.AddException(typetext.String(results.At(i).Type()))
	}

	return builder.Build()
}

// TypeParameter renders a type parameter declaration: "T", "T extends A" or
// "T extends A & B". Top bounds are omitted.
func TypeParameter(tp *types.TypeParam) string {
	var b strings.Builder
	b.WriteString(tp.Obj().Name())

	hasBound := false
	for _, bound := range bounds(tp.Constraint()) {
		if typetext.IsTop(bound) {
			continue
		}
		if hasBound {
			b.WriteString(" & ")
		} else {
			b.WriteString(" extends ")
			hasBound = true
		}
		b.WriteString(typetext.String(bound))
	}
	return b.String()
}

// bounds splits a constraint into its bounds. An interface literal made only
// of embedded types, such as interface{ fmt.Stringer; comparable }, has one
// bound per embedded type; any other constraint is a single bound.
func bounds(constraint types.Type) []types.Type {
	iface, ok := types.Unalias(constraint).(*types.Interface)
	if !ok || iface.NumExplicitMethods() > 0 || iface.NumEmbeddeds() == 0 {
		return []types.Type{constraint}
	}
	out := make([]types.Type, 0, iface.NumEmbeddeds())
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		out = append(out, iface.EmbeddedType(i))
	}
	return out
}

func declaringType(fn *types.Func) string {
	if recv := fn.Signature().Recv(); recv != nil {
		return typetext.Raw(recv.Type())
	}
	return fn.Pkg().Path()
}
