package walker

import (
	"reflect"

	"github.com/veryl-lang/veryl-go/internal/ast"
)

// isNilNode reports whether n wraps a nil concrete pointer. Optional AST
// fields (e.g. AlwaysFfDecl.Reset, ParameterDecl.Default) are typed as a
// concrete *T or an interface over one; when unset, n is a non-nil
// ast.Node interface value wrapping a nil pointer, which `n == nil` alone
// does not catch.
func isNilNode(n ast.Node) bool {
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
