package syntax

import "fmt"

type TokenType int

const (
	TOKEN_NUMBER TokenType = iota + 1
	TOKEN_STRING
	TOKEN_IDENTIFIER
	TOKEN_KEYWORD

	TOKEN_ASSIGN
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_STAR
	TOKEN_SLASH
	TOKEN_PERCENT
	TOKEN_POWER

	TOKEN_EQUAL
	TOKEN_NOT_EQUAL
	TOKEN_LESS
	TOKEN_GREATER
	TOKEN_LESS_EQUAL
	TOKEN_GREATER_EQUAL

	TOKEN_AND
	TOKEN_OR
	TOKEN_NOT

	TOKEN_ARROW
	TOKEN_INCREMENT
	TOKEN_DECREMENT

	TOKEN_LEFT_PAREN
	TOKEN_RIGHT_PAREN
	TOKEN_LEFT_BRACE
	TOKEN_RIGHT_BRACE
	TOKEN_LEFT_BRACKET
	TOKEN_RIGHT_BRACKET
	TOKEN_SEMICOLON
	TOKEN_COMMA
	TOKEN_DOT
	TOKEN_COLON

	TOKEN_NEWLINE
	TOKEN_EOF
)

var (
	TokenTypeStr = map[TokenType]string{
		TOKEN_NUMBER:     "NUMBER",
		TOKEN_STRING:     "STRING",
		TOKEN_IDENTIFIER: "IDENTIFIER",
		TOKEN_KEYWORD:    "KEYWORD",

		TOKEN_ASSIGN:  "ASSIGN",
		TOKEN_PLUS:    "PLUS",
		TOKEN_MINUS:   "MINUS",
		TOKEN_STAR:    "MULTIPLY",
		TOKEN_SLASH:   "DIVIDE",
		TOKEN_PERCENT: "MODULO",
		TOKEN_POWER:   "POWER",

		TOKEN_EQUAL:         "EQUAL",
		TOKEN_NOT_EQUAL:     "NOT_EQUAL",
		TOKEN_LESS:          "LESS_THAN",
		TOKEN_GREATER:       "GREATER_THAN",
		TOKEN_LESS_EQUAL:    "LESS_EQUAL",
		TOKEN_GREATER_EQUAL: "GREATER_EQUAL",

		TOKEN_AND: "AND",
		TOKEN_OR:  "OR",
		TOKEN_NOT: "NOT",

		TOKEN_ARROW:     "ARROW",
		TOKEN_INCREMENT: "INCREMENT",
		TOKEN_DECREMENT: "DECREMENT",

		TOKEN_LEFT_PAREN:    "LEFT_PAREN",
		TOKEN_RIGHT_PAREN:   "RIGHT_PAREN",
		TOKEN_LEFT_BRACE:    "LEFT_BRACE",
		TOKEN_RIGHT_BRACE:   "RIGHT_BRACE",
		TOKEN_LEFT_BRACKET:  "LEFT_BRACKET",
		TOKEN_RIGHT_BRACKET: "RIGHT_BRACKET",
		TOKEN_SEMICOLON:     "SEMICOLON",
		TOKEN_COMMA:         "COMMA",
		TOKEN_DOT:           "DOT",
		TOKEN_COLON:         "COLON",

		TOKEN_NEWLINE: "NEWLINE",
		TOKEN_EOF:     "EOF",
	}

	tokenTypeByName = func() map[string]TokenType {
		m := make(map[string]TokenType, len(TokenTypeStr))
		for tk, name := range TokenTypeStr {
			m[name] = tk
		}
		return m
	}()
)

// TokenTypeByName resolves the wire name of a token kind, as written in the
// `tokens` section of a compiled document.
func TokenTypeByName(name string) (TokenType, bool) {
	tk, ok := tokenTypeByName[name]
	return tk, ok
}

// Token is a classified lexical unit. Line and Column are 1-based and refer
// to the first character of the lexeme. Tokens are immutable once produced.
type Token struct {
	TokenType TokenType
	Text      string
	Line      int
	Column    int
}

func NewToken(tokenType TokenType, text string, line int, column int) Token {
	return Token{tokenType, text, line, column}
}

// IsKeyword reports whether t is the reserved word kw.
func (t Token) IsKeyword(kw string) bool {
	return t.TokenType == TOKEN_KEYWORD && t.Text == kw
}

func (t Token) String() string {
	if t.Text == "" {
		return fmt.Sprintf("token: {type: %s, line: %d, column: %d}",
			TokenTypeStr[t.TokenType], t.Line, t.Column)
	}
	return fmt.Sprintf("token: {type: %s text:%q, line: %d, column: %d}",
		TokenTypeStr[t.TokenType], t.Text, t.Line, t.Column)
}
