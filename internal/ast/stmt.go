package ast

type Stmt interface {
	Node
	isStmt()
}

func (*ExprStmt) isStmt()     {}
func (*LetStmt) isStmt()      {}
func (*AssignStmt) isStmt()   {}
func (*IfStmt) isStmt()       {}
func (*SwitchStmt) isStmt()   {}
func (*ForStmt) isStmt()      {}
func (*BreakStmt) isStmt()    {}
func (*ContinueStmt) isStmt() {}
func (*LeaveStmt) isStmt()    {}
func (*Block) isStmt()        {}
func (*Function) isStmt()     {}
