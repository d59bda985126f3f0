package ast

type Expr interface {
	Node
	isExpr()
}

func (*CallExpr) isExpr() {}

func (*LiteralExpr) isExpr() {}

func (*IdentExpr) isExpr() {}
