package walk

import (
	"math"
	"strconv"

	"github.com/JerryHue/emojicode/ast"
	"github.com/JerryHue/emojicode/types"
)

// walkLiteral walks a literal AST node.
func (w *Walker) walkLiteral(lit *ast.Literal) {
	switch lit.Kind {
	case ast.LitInteger:
		w.walkIntLit(lit)
	case ast.LitReal:
		w.walkRealLit(lit)
	case ast.LitBoolean:
		lit.SetType(types.PrimBoolean)
	case ast.LitSymbol:
		lit.SetType(types.PrimSymbol)
	case ast.LitNoValue:
		lit.SetType(types.PrimNoValue)
	}
}

// walkIntLit walks an integer literal and checks it for overflow.
func (w *Walker) walkIntLit(lit *ast.Literal) {
	if _, err := strconv.ParseInt(lit.Value, 0, 64); err != nil {
		w.error(lit.Span(), "integer literal out of range: `%s`", lit.Value)
	}

	lit.SetType(types.PrimInteger)
}

// walkRealLit walks a real number literal.
func (w *Walker) walkRealLit(lit *ast.Literal) {
	value, err := strconv.ParseFloat(lit.Value, 64)
	if err != nil || math.IsInf(value, 0) {
		w.error(lit.Span(), "real literal out of range: `%s`", lit.Value)
	}

	lit.SetType(types.PrimReal)
}
