package opt

import (
	"math/big"

	"sumi/internal/ast"
	"sumi/internal/builtins"
)

// Folder evaluates Pure builtins over all-literal arguments with EVM word
// semantics: 256-bit two's complement, division and modulo by zero yield
// zero. It also applies the algebraic identities that need no arithmetic at
// all. Calls in statement position are never replaced by bare literals;
// everything in value position is fair game.
type Folder struct {
	changed bool
}

// NewFolder creates the constant folding pass.
func NewFolder() *Folder {
	return &Folder{}
}

func (f *Folder) Name() string {
	return "fold"
}

func (f *Folder) Description() string {
	return "Evaluates pure builtins over literal arguments at compile time"
}

func (f *Folder) Apply(program *ast.Program) bool {
	f.changed = false
	f.foldBlock(program.Entry)
	return f.changed
}

func (f *Folder) foldBlock(b *ast.Block) {
	for _, s := range b.Statements {
		f.foldStmt(s)
	}
}

func (f *Folder) foldStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ExprStmt:
		// The statement must stay a call; only its arguments fold.
		if call, ok := s.Expr.(*ast.CallExpr); ok {
			f.foldArgs(call)
		}
	case *ast.LetStmt:
		if s.Expr != nil {
			s.Expr = f.foldExpr(s.Expr)
		}
	case *ast.AssignStmt:
		s.Value = f.foldExpr(s.Value)
	case *ast.IfStmt:
		s.Condition = f.foldExpr(s.Condition)
		f.foldBlock(s.Body)
	case *ast.SwitchStmt:
		s.Value = f.foldExpr(s.Value)
		for _, c := range s.Cases {
			f.foldBlock(c.Body)
		}
		if s.Default != nil {
			f.foldBlock(s.Default)
		}
	case *ast.ForStmt:
		f.foldBlock(s.Init)
		s.Condition = f.foldExpr(s.Condition)
		f.foldBlock(s.Post)
		f.foldBlock(s.Body)
	case *ast.Block:
		f.foldBlock(s)
	case *ast.Function:
		f.foldBlock(s.Body)
	}
}

func (f *Folder) foldArgs(call *ast.CallExpr) {
	for i := range call.Args {
		call.Args[i] = f.foldExpr(call.Args[i])
	}
}

// foldExpr folds an expression in value position, bottom-up.
func (f *Folder) foldExpr(e ast.Expr) ast.Expr {
	call, ok := e.(*ast.CallExpr)
	if !ok {
		return e
	}
	f.foldArgs(call)

	b, ok := builtins.Lookup(call.Callee.Value)
	if !ok || b.Effect != builtins.Pure || b.Returns != 1 {
		return call
	}

	args := make([]*big.Int, len(call.Args))
	allLiteral := true
	for i, a := range call.Args {
		lit, isLit := a.(*ast.LiteralExpr)
		if !isLit {
			allLiteral = false
			break
		}
		v, valid := lit.NumericValue()
		if !valid {
			allLiteral = false
			break
		}
		args[i] = v
	}

	if allLiteral {
		if result, evaluated := evalPure(call.Callee.Value, args); evaluated {
			f.changed = true
			return &ast.LiteralExpr{
				Pos:    call.Pos,
				EndPos: call.EndPos,
				Kind:   ast.NumberLiteral,
				Value:  result.String(),
			}
		}
	}

	return f.applyIdentity(call)
}

// applyIdentity rewrites x op neutral to x, and the two annihilating forms
// mul(x, 0) and and(x, 0) to 0. An operand is only discarded when it is a
// literal or identifier, so no evaluation is lost.
func (f *Folder) applyIdentity(call *ast.CallExpr) ast.Expr {
	if len(call.Args) != 2 {
		return call
	}
	x, y := call.Args[0], call.Args[1]
	switch call.Callee.Value {
	case "add", "or", "xor":
		if literalIs(y, 0) {
			return f.keep(x)
		}
		if literalIs(x, 0) {
			return f.keep(y)
		}
	case "sub":
		if literalIs(y, 0) {
			return f.keep(x)
		}
	case "mul":
		if literalIs(y, 1) {
			return f.keep(x)
		}
		if literalIs(x, 1) {
			return f.keep(y)
		}
		if literalIs(y, 0) && isLeaf(x) {
			return f.zero(call)
		}
		if literalIs(x, 0) && isLeaf(y) {
			return f.zero(call)
		}
	case "div":
		if literalIs(y, 1) {
			return f.keep(x)
		}
	case "and":
		if literalIs(y, 0) && isLeaf(x) {
			return f.zero(call)
		}
		if literalIs(x, 0) && isLeaf(y) {
			return f.zero(call)
		}
	}
	return call
}

func (f *Folder) keep(e ast.Expr) ast.Expr {
	f.changed = true
	return e
}

func (f *Folder) zero(call *ast.CallExpr) ast.Expr {
	f.changed = true
	return &ast.LiteralExpr{Pos: call.Pos, EndPos: call.EndPos, Kind: ast.NumberLiteral, Value: "0"}
}

func literalIs(e ast.Expr, value int64) bool {
	lit, ok := e.(*ast.LiteralExpr)
	if !ok {
		return false
	}
	v, valid := lit.NumericValue()
	return valid && v.Cmp(big.NewInt(value)) == 0
}

// isLeaf reports whether an expression can be discarded without losing any
// evaluation: a literal or a plain variable reference.
func isLeaf(e ast.Expr) bool {
	switch e.(type) {
	case *ast.LiteralExpr, *ast.IdentExpr:
		return true
	}
	return false
}

var wordModulus = new(big.Int).Lsh(big.NewInt(1), 256)

func wrap(v *big.Int) *big.Int {
	return v.Mod(v, wordModulus)
}

// toSigned reinterprets an unsigned word as two's complement.
func toSigned(v *big.Int) *big.Int {
	if v.Bit(255) == 0 {
		return new(big.Int).Set(v)
	}
	return new(big.Int).Sub(v, wordModulus)
}

// evalPure computes one Pure builtin over word values. The second result is
// false for operations the folder does not evaluate.
func evalPure(name string, args []*big.Int) (*big.Int, bool) {
	two56 := big.NewInt(256)
	switch name {
	case "add":
		return wrap(new(big.Int).Add(args[0], args[1])), true
	case "sub":
		return wrap(new(big.Int).Sub(args[0], args[1])), true
	case "mul":
		return wrap(new(big.Int).Mul(args[0], args[1])), true
	case "div":
		if args[1].Sign() == 0 {
			return big.NewInt(0), true
		}
		return new(big.Int).Quo(args[0], args[1]), true
	case "sdiv":
		if args[1].Sign() == 0 {
			return big.NewInt(0), true
		}
		return wrap(new(big.Int).Quo(toSigned(args[0]), toSigned(args[1]))), true
	case "mod":
		if args[1].Sign() == 0 {
			return big.NewInt(0), true
		}
		return new(big.Int).Mod(args[0], args[1]), true
	case "smod":
		if args[1].Sign() == 0 {
			return big.NewInt(0), true
		}
		return wrap(new(big.Int).Rem(toSigned(args[0]), toSigned(args[1]))), true
	case "exp":
		return new(big.Int).Exp(args[0], args[1], wordModulus), true
	case "not":
		return new(big.Int).Xor(args[0], maxWordValue()), true
	case "lt":
		return boolWord(args[0].Cmp(args[1]) < 0), true
	case "gt":
		return boolWord(args[0].Cmp(args[1]) > 0), true
	case "slt":
		return boolWord(toSigned(args[0]).Cmp(toSigned(args[1])) < 0), true
	case "sgt":
		return boolWord(toSigned(args[0]).Cmp(toSigned(args[1])) > 0), true
	case "eq":
		return boolWord(args[0].Cmp(args[1]) == 0), true
	case "iszero":
		return boolWord(args[0].Sign() == 0), true
	case "and":
		return new(big.Int).And(args[0], args[1]), true
	case "or":
		return new(big.Int).Or(args[0], args[1]), true
	case "xor":
		return new(big.Int).Xor(args[0], args[1]), true
	case "byte":
		if args[0].Cmp(big.NewInt(32)) >= 0 {
			return big.NewInt(0), true
		}
		shift := uint(8 * (31 - args[0].Uint64()))
		b := new(big.Int).Rsh(args[1], shift)
		return b.And(b, big.NewInt(0xff)), true
	case "shl":
		if args[0].Cmp(two56) >= 0 {
			return big.NewInt(0), true
		}
		return wrap(new(big.Int).Lsh(args[1], uint(args[0].Uint64()))), true
	case "shr":
		if args[0].Cmp(two56) >= 0 {
			return big.NewInt(0), true
		}
		return new(big.Int).Rsh(args[1], uint(args[0].Uint64())), true
	case "sar":
		signed := toSigned(args[1])
		if args[0].Cmp(two56) >= 0 {
			if signed.Sign() < 0 {
				return maxWordValue(), true
			}
			return big.NewInt(0), true
		}
		return wrap(new(big.Int).Rsh(signed, uint(args[0].Uint64()))), true
	case "addmod":
		if args[2].Sign() == 0 {
			return big.NewInt(0), true
		}
		sum := new(big.Int).Add(args[0], args[1])
		return sum.Mod(sum, args[2]), true
	case "mulmod":
		if args[2].Sign() == 0 {
			return big.NewInt(0), true
		}
		product := new(big.Int).Mul(args[0], args[1])
		return product.Mod(product, args[2]), true
	case "signextend":
		if args[0].Cmp(big.NewInt(31)) >= 0 {
			return new(big.Int).Set(args[1]), true
		}
		bit := uint(8*(args[0].Uint64()+1) - 1)
		mask := new(big.Int).Lsh(big.NewInt(1), bit+1)
		mask.Sub(mask, big.NewInt(1))
		lower := new(big.Int).And(args[1], mask)
		if args[1].Bit(int(bit)) == 1 {
			upper := new(big.Int).Xor(maxWordValue(), mask)
			return lower.Or(lower, upper), true
		}
		return lower, true
	}
	return nil, false
}

func boolWord(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}

func maxWordValue() *big.Int {
	return ast.MaxWord()
}
