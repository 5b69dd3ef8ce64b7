package syntax

// The statement and expression kinds form two closed unions; the evaluator
// and the document codec switch over them exhaustively. Nodes own their
// children outright and are immutable after parsing.

type Stmt interface{ isStmt() }

type Expr interface{ isExpr() }

// Program is the tree root, an ordered sequence of top-level statements.
type Program struct {
	Body []Stmt
}

type Var struct {
	Name        string
	Initializer Expr // nil when declared without '='
}

type Function struct {
	Name       string
	Parameters []string
	Body       []Stmt
}

type Expression struct {
	Expression Expr
}

type If struct {
	Condition Expr
	Then      []Stmt
	Else      []Stmt // nil when there is no else branch
}

type While struct {
	Condition Expr
	Body      []Stmt
}

type Return struct {
	Value Expr // nil for a bare return
}

type Break struct{}

type Continue struct{}

func (*Var) isStmt()        {}
func (*Function) isStmt()   {}
func (*Expression) isStmt() {}
func (*If) isStmt()         {}
func (*While) isStmt()      {}
func (*Return) isStmt()     {}
func (*Break) isStmt()      {}
func (*Continue) isStmt()   {}

// Literal holds the decoded value: int64, float64, string, bool or nil.
// Raw keeps the source spelling for the document format.
type Literal struct {
	Value any
	Raw   string
}

type Identifier struct {
	Name string
}

type Binary struct {
	Left     Expr
	Operator string
	Right    Expr
}

type Unary struct {
	Operator string
	Operand  Expr
}

// Assign targets an identifier by name; any other target shape is rejected
// at parse time.
type Assign struct {
	Name  string
	Value Expr
}

type Call struct {
	Callee    Expr
	Arguments []Expr
}

func (*Literal) isExpr()    {}
func (*Identifier) isExpr() {}
func (*Binary) isExpr()     {}
func (*Unary) isExpr()      {}
func (*Assign) isExpr()     {}
func (*Call) isExpr()       {}

func NewProgram(body []Stmt) *Program {
	return &Program{Body: body}
}

func NewVar(name string, initializer Expr) *Var {
	return &Var{Name: name, Initializer: initializer}
}

func NewFunction(name string, parameters []string, body []Stmt) *Function {
	return &Function{Name: name, Parameters: parameters, Body: body}
}

func NewIf(condition Expr, thenBody, elseBody []Stmt) *If {
	return &If{Condition: condition, Then: thenBody, Else: elseBody}
}

func NewWhile(condition Expr, body []Stmt) *While {
	return &While{Condition: condition, Body: body}
}

func NewBinary(left Expr, operator string, right Expr) *Binary {
	return &Binary{Left: left, Operator: operator, Right: right}
}

func NewUnary(operator string, operand Expr) *Unary {
	return &Unary{Operator: operator, Operand: operand}
}

func NewAssign(name string, value Expr) *Assign {
	return &Assign{Name: name, Value: value}
}

func NewCall(callee Expr, arguments []Expr) *Call {
	return &Call{Callee: callee, Arguments: arguments}
}
