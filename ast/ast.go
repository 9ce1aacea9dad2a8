package ast

import "github.com/JerryHue/emojicode/report"

// ASTNode is implemented by every node of the checked syntax tree.
type ASTNode interface {
	// Span returns the source region the node covers.
	Span() *report.TextSpan
}

// ASTBase carries the source span shared by every node kind.
type ASTBase struct {
	span *report.TextSpan
}

// NewASTBaseOn creates a node base covering a single span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a node base covering everything between the start of
// one span and the end of another.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}
