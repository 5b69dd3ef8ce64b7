package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

/*
the precedence of the operators is as follows, from lowest to highest:

Operator                    Associativity
Assignment:  =               Right
Logical or:  ||              Left
Logical and: &&              Left
Equality:    == !=           Left
Comparison:  > >= < <=       Left
Additive:    - +             Left
Multiplicative: / * %        Left
Power:       **              Left
Unary:       ! -             Right
Call:        callee(args)    Left

expression -> assignment
assignment -> IDENTIFIER "=" assignment | logical_or
logical_or  -> logical_and ( "||" logical_and )*
logical_and -> equality ( "&&" equality )*
equality   -> comparison ( ( "!=" | "==" ) comparison )*
comparison -> additive ( ( ">" | ">=" | "<" | "<=" ) additive )*
additive   -> multiplicative ( ( "-" | "+" ) multiplicative )*
multiplicative -> power ( ( "/" | "*" | "%" ) power )*
power      -> unary ( "**" unary )*
unary      -> ( "!" | "-" ) unary | call
call       -> primary ( "(" arguments? ")" )*
primary    -> NUMBER | STRING | "false" | "true" | "null" | "(" expr ")" | IDENTIFIER

program    -> statement* EOF

statement  -> varDecl | funcDecl | ifStmt | whileStmt
            | returnStmt | breakStmt | continueStmt | exprStmt

varDecl    -> "var" IDENTIFIER ( "=" expression )? ";"?
funcDecl   -> "func" IDENTIFIER "(" parameters? ")" body
ifStmt     -> "if" "(" expression ")" body ( "else" ( ifStmt | body ) )?
whileStmt  -> "while" "(" expression ")" body
returnStmt -> "return" expression? ";"?
breakStmt  -> "break" ";"?
continueStmt -> "continue" ";"?
exprStmt   -> expression ";"?
body       -> "{" statement* "}"

Newline tokens are insignificant wherever a new statement or a closing
brace is expected; the scanner keeps them because ";" is optional.
*/

type Parser struct {
	Tokens    []Token
	Current   int
	parseErrs []error
}

func NewParser(tokens []Token) *Parser {
	return &Parser{
		Tokens:  tokens,
		Current: 0,
	}
}

// Parse consumes the whole token stream and returns the Program. A failed
// statement is recorded and dropped, and parsing resumes at the next
// statement boundary, so one bad statement does not abort the program.
func (p *Parser) Parse() *Program {
	stmts := make([]Stmt, 0)
	for {
		p.skipNewlines()
		if p.isEnd() {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			p.parseErrs = append(p.parseErrs, err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return NewProgram(stmts)
}

// Errors returns the per-statement syntax errors collected while parsing.
func (p *Parser) Errors() []error {
	return p.parseErrs
}

func (p *Parser) parseStatement() (Stmt, error) {
	if p.matchKeyword("var") {
		return p.parseVarDecl()
	}
	if p.matchKeyword("func") {
		return p.parseFuncDecl()
	}
	if p.matchKeyword("if") {
		return p.parseIfStmt()
	}
	if p.matchKeyword("while") {
		return p.parseWhileStmt()
	}
	if p.matchKeyword("return") {
		return p.parseReturnStmt()
	}
	if p.matchKeyword("break") {
		p.match(TOKEN_SEMICOLON)
		return &Break{}, nil
	}
	if p.matchKeyword("continue") {
		p.match(TOKEN_SEMICOLON)
		return &Continue{}, nil
	}
	return p.parseExprStmt()
}

func (p *Parser) parseVarDecl() (Stmt, error) {
	name, cErr := p.consume(TOKEN_IDENTIFIER, "expect variable name")
	if cErr != nil {
		return nil, cErr
	}
	var initializer Expr
	if p.match(TOKEN_ASSIGN) {
		var pErr error
		initializer, pErr = p.parseExpr()
		if pErr != nil {
			return nil, pErr
		}
	}

	p.match(TOKEN_SEMICOLON)
	return NewVar(name.Text, initializer), nil
}

func (p *Parser) parseFuncDecl() (Stmt, error) {
	name, cErr := p.consume(TOKEN_IDENTIFIER, "expect function name")
	if cErr != nil {
		return nil, cErr
	}
	if _, cErr := p.consume(TOKEN_LEFT_PAREN, "expect '(' after function name"); cErr != nil {
		return nil, cErr
	}

	parameters := make([]string, 0)
	if !p.check(TOKEN_RIGHT_PAREN) {
		for {
			param, cErr := p.consume(TOKEN_IDENTIFIER, "expect parameter name")
			if cErr != nil {
				return nil, cErr
			}
			parameters = append(parameters, param.Text)
			if !p.match(TOKEN_COMMA) {
				break
			}
		}
	}
	if _, cErr := p.consume(TOKEN_RIGHT_PAREN, "expect ')' after parameters"); cErr != nil {
		return nil, cErr
	}

	body, err := p.parseBody("function body")
	if err != nil {
		return nil, err
	}
	return NewFunction(name.Text, parameters, body), nil
}

func (p *Parser) parseIfStmt() (Stmt, error) {
	if _, cErr := p.consume(TOKEN_LEFT_PAREN, "expect '(' after 'if'"); cErr != nil {
		return nil, cErr
	}
	condition, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, cErr := p.consume(TOKEN_RIGHT_PAREN, "expect ')' after if condition"); cErr != nil {
		return nil, cErr
	}
	thenBody, err := p.parseBody("if branch")
	if err != nil {
		return nil, err
	}

	var elseBody []Stmt
	p.skipNewlines()
	if p.matchKeyword("else") {
		if p.checkKeyword("if") {
			p.advance()
			nested, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}
			elseBody = []Stmt{nested}
		} else {
			elseBody, err = p.parseBody("else branch")
			if err != nil {
				return nil, err
			}
		}
	}
	return NewIf(condition, thenBody, elseBody), nil
}

func (p *Parser) parseWhileStmt() (Stmt, error) {
	if _, cErr := p.consume(TOKEN_LEFT_PAREN, "expect '(' after 'while'"); cErr != nil {
		return nil, cErr
	}
	condition, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, cErr := p.consume(TOKEN_RIGHT_PAREN, "expect ')' after while condition"); cErr != nil {
		return nil, cErr
	}
	body, err := p.parseBody("while body")
	if err != nil {
		return nil, err
	}
	return NewWhile(condition, body), nil
}

func (p *Parser) parseReturnStmt() (Stmt, error) {
	var value Expr
	if !p.check(TOKEN_SEMICOLON) && !p.check(TOKEN_NEWLINE) &&
		!p.check(TOKEN_RIGHT_BRACE) && !p.isEnd() {
		var err error
		value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	p.match(TOKEN_SEMICOLON)
	return &Return{Value: value}, nil
}

func (p *Parser) parseExprStmt() (Stmt, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.match(TOKEN_SEMICOLON)
	return &Expression{Expression: expr}, nil
}

// parseBody parses a brace-delimited statement sequence; newline tokens
// between statements are insignificant.
func (p *Parser) parseBody(what string) ([]Stmt, error) {
	if _, cErr := p.consume(TOKEN_LEFT_BRACE, "expect '{' before "+what); cErr != nil {
		return nil, cErr
	}
	stmts := make([]Stmt, 0)
	for {
		p.skipNewlines()
		if p.check(TOKEN_RIGHT_BRACE) || p.isEnd() {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, cErr := p.consume(TOKEN_RIGHT_BRACE, "expect '}' after "+what); cErr != nil {
		return nil, cErr
	}
	return stmts, nil
}

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (Expr, error) {
	expr, pErr := p.parseLogicalOr()
	if pErr != nil {
		return nil, pErr
	}

	if p.match(TOKEN_ASSIGN) {
		assignToken := p.previous()
		value, pErr := p.parseAssignment()
		if pErr != nil {
			return nil, pErr
		}

		if ident, ok := expr.(*Identifier); ok {
			return NewAssign(ident.Name, value), nil
		}

		return nil, p.error(assignToken, "invalid assignment target")
	}
	return expr, nil
}

func (p *Parser) parseLogicalOr() (Expr, error) {
	expr, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}

	for p.match(TOKEN_OR) {
		op := p.previous()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		expr = NewBinary(expr, op.Text, right)
	}

	return expr, nil
}

func (p *Parser) parseLogicalAnd() (Expr, error) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	for p.match(TOKEN_AND) {
		op := p.previous()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		expr = NewBinary(expr, op.Text, right)
	}

	return expr, nil
}

func (p *Parser) parseEquality() (Expr, error) {
	expr, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.match(TOKEN_EQUAL, TOKEN_NOT_EQUAL) {
		op := p.previous()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		expr = NewBinary(expr, op.Text, right)
	}

	return expr, nil
}

func (p *Parser) parseComparison() (Expr, error) {
	expr, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for p.match(TOKEN_GREATER, TOKEN_GREATER_EQUAL, TOKEN_LESS, TOKEN_LESS_EQUAL) {
		op := p.previous()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		expr = NewBinary(expr, op.Text, right)
	}

	return expr, nil
}

func (p *Parser) parseAdditive() (Expr, error) {
	expr, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.match(TOKEN_MINUS, TOKEN_PLUS) {
		op := p.previous()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		expr = NewBinary(expr, op.Text, right)
	}

	return expr, nil
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	expr, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	for p.match(TOKEN_SLASH, TOKEN_STAR, TOKEN_PERCENT) {
		op := p.previous()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		expr = NewBinary(expr, op.Text, right)
	}

	return expr, nil
}

func (p *Parser) parsePower() (Expr, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.match(TOKEN_POWER) {
		op := p.previous()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr = NewBinary(expr, op.Text, right)
	}

	return expr, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.match(TOKEN_NOT, TOKEN_MINUS) {
		op := p.previous()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return NewUnary(op.Text, operand), nil
	}

	return p.parseCall()
}

func (p *Parser) parseCall() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.match(TOKEN_LEFT_PAREN) {
		args := make([]Expr, 0)
		if !p.check(TOKEN_RIGHT_PAREN) {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.match(TOKEN_COMMA) {
					break
				}
			}
		}
		if _, cErr := p.consume(TOKEN_RIGHT_PAREN, "expect ')' after arguments"); cErr != nil {
			return nil, cErr
		}
		expr = NewCall(expr, args)
	}

	return expr, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	if p.matchKeyword("true") {
		return &Literal{Value: true, Raw: "true"}, nil
	}
	if p.matchKeyword("false") {
		return &Literal{Value: false, Raw: "false"}, nil
	}
	if p.matchKeyword("null") {
		return &Literal{Value: nil, Raw: "null"}, nil
	}
	if p.match(TOKEN_NUMBER) {
		return p.numberLiteral(p.previous())
	}
	if p.match(TOKEN_STRING) {
		text := p.previous().Text
		return &Literal{Value: text, Raw: strconv.Quote(text)}, nil
	}
	if p.match(TOKEN_IDENTIFIER) {
		return &Identifier{Name: p.previous().Text}, nil
	}
	if p.match(TOKEN_LEFT_PAREN) {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, cErr := p.consume(TOKEN_RIGHT_PAREN, "expect ')' after expression"); cErr != nil {
			return nil, cErr
		}
		return expr, nil
	}
	return nil, p.error(p.peek(), "expect expression")
}

// A literal spelled with '.' is floating, else integer.
func (p *Parser) numberLiteral(tok Token) (Expr, error) {
	if strings.Contains(tok.Text, ".") {
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, p.error(tok, "invalid number literal "+tok.Text)
		}
		return &Literal{Value: f, Raw: tok.Text}, nil
	}
	n, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return nil, p.error(tok, "invalid number literal "+tok.Text)
	}
	return &Literal{Value: n, Raw: tok.Text}, nil
}

func (p *Parser) skipNewlines() {
	for p.check(TOKEN_NEWLINE) {
		p.advance()
	}
}

func (p *Parser) match(tokenTypes ...TokenType) bool {
	for _, type_ := range tokenTypes {
		if p.check(type_) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) matchKeyword(kw string) bool {
	if p.checkKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) checkKeyword(kw string) bool {
	if p.isEnd() {
		return false
	}
	return p.peek().IsKeyword(kw)
}

func (p *Parser) check(tokenType TokenType) bool {
	if p.isEnd() {
		return false
	}
	return p.peek().TokenType == tokenType
}

func (p *Parser) isEnd() bool {
	return p.peek().TokenType == TOKEN_EOF
}

func (p *Parser) peek() Token {
	return p.Tokens[p.Current]
}

func (p *Parser) advance() Token {
	if !p.isEnd() {
		p.Current++
	}
	return p.Tokens[p.Current-1]
}

func (p *Parser) previous() Token {
	return p.Tokens[p.Current-1]
}

func (p *Parser) consume(tokenType TokenType, message string) (Token, error) {
	if p.check(tokenType) {
		return p.advance(), nil
	}
	return Token{}, p.error(p.peek(), message)
}

func (p *Parser) error(token Token, message string) error {
	got := TokenTypeStr[token.TokenType]
	if token.Text != "" && token.TokenType != TOKEN_NEWLINE {
		got = fmt.Sprintf("%s %q", got, token.Text)
	}
	return &SyntaxError{
		Msg:    fmt.Sprintf("%s, got %s", message, got),
		Line:   token.Line,
		Column: token.Column,
	}
}

// Synchronize the parser when it encounters a syntax error.
//
//	just skip to the next statement boundary.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isEnd() {
		switch p.previous().TokenType {
		case TOKEN_SEMICOLON, TOKEN_NEWLINE:
			return
		}
		switch p.peek().Text {
		case "var", "func", "if", "while", "return", "break", "continue":
			if p.peek().TokenType == TOKEN_KEYWORD {
				return
			}
		}
		p.advance()
	}
}
