// Package typetext renders go/types type references as canonical type text
// for sugar generation.
//
// Only two structural forms are rewritten: plain named or basic types become
// their fully qualified name, and slices become the element text followed by
// "[]". Everything else (instantiated generics, pointers, maps, funcs, fixed
// size arrays, type parameters) is rendered with types.TypeString, which
// already embeds nested type arguments and constraints in Go syntax.
package typetext

import (
	"go/types"
	"strings"
)

const (
	arraySuffix    = "[]"
	variadicSuffix = "..."
)

// String returns the canonical text of t
func String(t types.Type) string {
	switch t := types.Unalias(t).(type) {
	case *types.Slice:
		return String(t.Elem()) + arraySuffix
	case *types.Named:
		if t.TypeArgs().Len() == 0 {
			return qualifiedName(t.Obj())
		}
	case *types.Basic:
		return t.Name()
	}
	return types.TypeString(t, nil)
}

// Raw returns the erased text of t: named types, and pointers to them, render
// as the bare qualified name of the generic origin. All other types render as
// String does.
func Raw(t types.Type) string {
	if named := NamedOf(t); named != nil {
		return qualifiedName(named.Origin().Obj())
	}
	return String(t)
}

// NamedOf returns the named type behind t, looking through one pointer
func NamedOf(t types.Type) *types.Named {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}
	named, _ := t.(*types.Named)
	return named
}

// IsTop reports whether t is the universal top bound (any or interface{})
func IsTop(t types.Type) bool {
	iface, ok := types.Unalias(t).(*types.Interface)
	return ok && iface.Empty()
}

// Variadic rewrites the trailing slice suffix of text into variadic form
func Variadic(text string) string {
	if strings.HasSuffix(text, arraySuffix) {
		return strings.TrimSuffix(text, arraySuffix) + variadicSuffix
	}
	return text
}

func qualifiedName(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		// universe scope: error, comparable
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}
