package syntax

import (
	"github.com/littlekuo/veil-treewalk/internal/util"
)

var keywords = map[string]struct{}{}

func init() {
	for _, kw := range []string{
		"func", "var", "const", "if", "else", "elif", "while", "for", "in",
		"return", "break", "continue", "class", "interface", "struct",
		"enum", "import", "export", "from", "as", "try", "catch", "finally",
		"throw", "async", "await", "yield", "match", "when", "default",
		"true", "false", "null", "and", "or", "not", "is", "typeof",
		"new", "delete", "this", "super", "static", "private", "public",
		"protected", "abstract", "final", "override", "virtual",
	} {
		keywords[kw] = struct{}{}
	}
}

type Scanner struct {
	source  string
	tokens  []Token
	start   int
	current int

	// position of s.current, 1-based
	line int
	col  int
	// position of s.start, captured before each token
	startLine int
	startCol  int

	warnings []string
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		tokens: make([]Token, 0),
		line:   1,
		col:    1,
	}
}

// ScanTokens tokenizes the whole source and always terminates the stream
// with a single EOF token. Unknown characters produce warnings, never a
// failed scan.
func (s *Scanner) ScanTokens() []Token {
	for {
		if s.isEnd() {
			break
		}
		s.start = s.current
		s.startLine = s.line
		s.startCol = s.col
		s.scanToken()
	}

	// the last token
	s.tokens = append(s.tokens, NewToken(TOKEN_EOF, "", s.line, s.col))
	return s.tokens
}

// Warnings returns the non-fatal diagnostics collected while scanning.
func (s *Scanner) Warnings() []string {
	return s.warnings
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addSimpleToken(TOKEN_LEFT_PAREN)
	case ')':
		s.addSimpleToken(TOKEN_RIGHT_PAREN)
	case '{':
		s.addSimpleToken(TOKEN_LEFT_BRACE)
	case '}':
		s.addSimpleToken(TOKEN_RIGHT_BRACE)
	case '[':
		s.addSimpleToken(TOKEN_LEFT_BRACKET)
	case ']':
		s.addSimpleToken(TOKEN_RIGHT_BRACKET)
	case ';':
		s.addSimpleToken(TOKEN_SEMICOLON)
	case ',':
		s.addSimpleToken(TOKEN_COMMA)
	case '.':
		s.addSimpleToken(TOKEN_DOT)
	case ':':
		s.addSimpleToken(TOKEN_COLON)
	case '%':
		s.addSimpleToken(TOKEN_PERCENT)
	case '+':
		s.addConditionalToken('+', TOKEN_INCREMENT, TOKEN_PLUS)
	case '-':
		if s.match('>') {
			s.addSimpleToken(TOKEN_ARROW)
		} else if s.match('-') {
			s.addSimpleToken(TOKEN_DECREMENT)
		} else {
			s.addSimpleToken(TOKEN_MINUS)
		}
	case '*':
		s.addConditionalToken('*', TOKEN_POWER, TOKEN_STAR)
	case '!':
		s.addConditionalToken('=', TOKEN_NOT_EQUAL, TOKEN_NOT)
	case '=':
		if s.match('=') {
			s.addSimpleToken(TOKEN_EQUAL)
		} else if s.match('>') {
			s.addSimpleToken(TOKEN_ARROW)
		} else {
			s.addSimpleToken(TOKEN_ASSIGN)
		}
	case '<':
		s.addConditionalToken('=', TOKEN_LESS_EQUAL, TOKEN_LESS)
	case '>':
		s.addConditionalToken('=', TOKEN_GREATER_EQUAL, TOKEN_GREATER)
	case '&':
		if s.match('&') {
			s.addSimpleToken(TOKEN_AND)
		} else {
			s.warn("unknown character '&'")
		}
	case '|':
		if s.match('|') {
			s.addSimpleToken(TOKEN_OR)
		} else {
			s.warn("unknown character '|'")
		}
	case '/':
		// comment detection comes before the divide operator, so "//"
		// always opens a line comment
		if s.match('/') {
			s.skipLineComment()
		} else if s.match('*') {
			s.skipBlockComment()
		} else {
			s.addSimpleToken(TOKEN_SLASH)
		}
	case '#':
		s.skipLineComment()
	case ' ', '\r', '\t':
		// ignore whitespace
	case '\n':
		// statement separation is newline-sensitive, keep it as a token
		s.tokens = append(s.tokens, NewToken(TOKEN_NEWLINE, "\n", s.startLine, s.startCol))
	case '"', '\'':
		s.scanString(c)
	default:
		if isDigit(c) {
			s.scanNumber()
		} else if isAlpha(c) {
			s.scanIdentifier()
		} else {
			s.warn("unknown character '" + string(c) + "'")
		}
	}
}

func (s *Scanner) addSimpleToken(tk TokenType) {
	s.addTokenWithText(tk, s.source[s.start:s.current])
}

func (s *Scanner) addTokenWithText(tk TokenType, text string) {
	s.tokens = append(s.tokens, NewToken(tk, text, s.startLine, s.startCol))
}

func (s *Scanner) isEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) addConditionalToken(expected byte, matchedType TokenType, unmatchedType TokenType) {
	if s.match(expected) {
		s.addSimpleToken(matchedType)
	} else {
		s.addSimpleToken(unmatchedType)
	}
}

func (s *Scanner) match(expected byte) bool {
	if s.isEnd() {
		return false
	}
	if s.source[s.current] != expected {
		return false
	}

	// if match, then advance
	s.advance()
	return true
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func (s *Scanner) peek() byte {
	if s.isEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) skipLineComment() {
	for s.peek() != '\n' && !s.isEnd() {
		s.advance()
	}
}

// An unterminated block comment simply runs to end of input; that is
// tolerated rather than reported.
func (s *Scanner) skipBlockComment() {
	for !s.isEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance()
			s.advance()
			return
		}
		s.advance()
	}
}

// scanString decodes escapes in place, so the token text is the string's
// value, not its source spelling. An unterminated string consumes to end of
// input without error, mirroring the block-comment policy.
func (s *Scanner) scanString(quote byte) {
	var text []byte
	for !s.isEnd() && s.peek() != quote {
		c := s.advance()
		if c != '\\' {
			text = append(text, c)
			continue
		}
		if s.isEnd() {
			break
		}
		esc := s.advance()
		switch esc {
		case 'n':
			text = append(text, '\n')
		case 't':
			text = append(text, '\t')
		case 'r':
			text = append(text, '\r')
		case '\\':
			text = append(text, '\\')
		case quote:
			text = append(text, quote)
		default:
			// unrecognized escape passes the character through
			text = append(text, esc)
		}
	}

	if !s.isEnd() {
		// the closing quote
		s.advance()
	}

	s.addTokenWithText(TOKEN_STRING, string(text))
}

// scanNumber consumes a maximal run of digits with at most one '.'; a
// second '.' terminates the literal, so "1.2.3" lexes as 1.2, '.', 3.
func (s *Scanner) scanNumber() {
	hasDot := s.source[s.start] == '.'
	for !s.isEnd() {
		c := s.peek()
		if c == '.' {
			if hasDot {
				break
			}
			hasDot = true
		} else if !isDigit(c) {
			break
		}
		s.advance()
	}

	s.addSimpleToken(TOKEN_NUMBER)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}

	text := s.source[s.start:s.current]
	if _, ok := keywords[text]; ok {
		s.addSimpleToken(TOKEN_KEYWORD)
	} else {
		s.addSimpleToken(TOKEN_IDENTIFIER)
	}
}

func (s *Scanner) warn(message string) {
	s.warnings = append(s.warnings, util.WarningMsg(s.startLine, s.startCol, message))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
