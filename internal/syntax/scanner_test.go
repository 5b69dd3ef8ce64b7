package syntax

import (
	"reflect"
	"testing"
)

func scan(t *testing.T, src string) *Scanner {
	t.Helper()
	s := NewScanner(src)
	s.ScanTokens()
	return s
}

func toks(t *testing.T, src string) []Token {
	t.Helper()
	return NewScanner(src).ScanTokens()
}

func typesWithoutEOF(tokens []Token) []TokenType {
	end := len(tokens)
	if end > 0 && tokens[end-1].TokenType == TOKEN_EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].TokenType)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func TestScanner_NumberLiterals(t *testing.T) {
	got := wantTypes(t, "1234 12.34", []TokenType{TOKEN_NUMBER, TOKEN_NUMBER})
	if got[0].Text != "1234" || got[1].Text != "12.34" {
		t.Fatalf("number texts: %q, %q", got[0].Text, got[1].Text)
	}
}

func TestScanner_SecondDotStartsNewLiteral(t *testing.T) {
	got := wantTypes(t, "1.2.3", []TokenType{TOKEN_NUMBER, TOKEN_DOT, TOKEN_NUMBER})
	if got[0].Text != "1.2" || got[2].Text != "3" {
		t.Fatalf("want 1.2 and 3, got %q and %q", got[0].Text, got[2].Text)
	}
}

func TestScanner_StringEscapes(t *testing.T) {
	got := wantTypes(t, `"a\nb\t\\" 'it\'s' "\q"`,
		[]TokenType{TOKEN_STRING, TOKEN_STRING, TOKEN_STRING})
	if got[0].Text != "a\nb\t\\" {
		t.Fatalf("escape decoding: %q", got[0].Text)
	}
	if got[1].Text != "it's" {
		t.Fatalf("escaped delimiter: %q", got[1].Text)
	}
	// unknown escape passes the character through
	if got[2].Text != "q" {
		t.Fatalf("unknown escape: %q", got[2].Text)
	}
}

func TestScanner_UnterminatedStringIsTolerated(t *testing.T) {
	s := scan(t, `"no closing quote`)
	if len(s.Warnings()) != 0 {
		t.Fatalf("unexpected warnings: %v", s.Warnings())
	}
	got := typesWithoutEOF(s.tokens)
	if !reflect.DeepEqual(got, []TokenType{TOKEN_STRING}) {
		t.Fatalf("token types: %v", got)
	}
	if s.tokens[0].Text != "no closing quote" {
		t.Fatalf("string text: %q", s.tokens[0].Text)
	}
}

func TestScanner_Comments(t *testing.T) {
	src := "1 # hash comment\n2 // slash comment\n/* block\ncomment */ 3"
	wantTypes(t, src, []TokenType{
		TOKEN_NUMBER, TOKEN_NEWLINE,
		TOKEN_NUMBER, TOKEN_NEWLINE,
		TOKEN_NUMBER,
	})
}

func TestScanner_UnterminatedBlockCommentIsTolerated(t *testing.T) {
	s := scan(t, "1 /* runs to the end")
	if len(s.Warnings()) != 0 {
		t.Fatalf("unexpected warnings: %v", s.Warnings())
	}
	got := typesWithoutEOF(s.tokens)
	if !reflect.DeepEqual(got, []TokenType{TOKEN_NUMBER}) {
		t.Fatalf("token types: %v", got)
	}
}

func TestScanner_TwoCharOperatorsAreGreedy(t *testing.T) {
	wantTypes(t, "== != <= >= => -> && || ** ++ --", []TokenType{
		TOKEN_EQUAL, TOKEN_NOT_EQUAL, TOKEN_LESS_EQUAL, TOKEN_GREATER_EQUAL,
		TOKEN_ARROW, TOKEN_ARROW, TOKEN_AND, TOKEN_OR, TOKEN_POWER,
		TOKEN_INCREMENT, TOKEN_DECREMENT,
	})
}

func TestScanner_SingleCharOperators(t *testing.T) {
	wantTypes(t, "+ - * / % = < > ! ( ) { } [ ] ; , . :", []TokenType{
		TOKEN_PLUS, TOKEN_MINUS, TOKEN_STAR, TOKEN_SLASH, TOKEN_PERCENT,
		TOKEN_ASSIGN, TOKEN_LESS, TOKEN_GREATER, TOKEN_NOT,
		TOKEN_LEFT_PAREN, TOKEN_RIGHT_PAREN, TOKEN_LEFT_BRACE, TOKEN_RIGHT_BRACE,
		TOKEN_LEFT_BRACKET, TOKEN_RIGHT_BRACKET, TOKEN_SEMICOLON, TOKEN_COMMA,
		TOKEN_DOT, TOKEN_COLON,
	})
}

func TestScanner_KeywordsAndIdentifiers(t *testing.T) {
	got := wantTypes(t, "var x import _y $z function", []TokenType{
		TOKEN_KEYWORD, TOKEN_IDENTIFIER, TOKEN_KEYWORD,
		TOKEN_IDENTIFIER, TOKEN_IDENTIFIER, TOKEN_IDENTIFIER,
	})
	if !got[0].IsKeyword("var") {
		t.Fatalf("expected var keyword, got %v", got[0])
	}
	if got[5].Text != "function" {
		t.Fatalf("near-keyword should stay an identifier: %v", got[5])
	}
}

func TestScanner_UnknownCharacterWarnsAndContinues(t *testing.T) {
	s := scan(t, "1 @ 2 ~ 3")
	got := typesWithoutEOF(s.tokens)
	if !reflect.DeepEqual(got, []TokenType{TOKEN_NUMBER, TOKEN_NUMBER, TOKEN_NUMBER}) {
		t.Fatalf("token types: %v", got)
	}
	if len(s.Warnings()) != 2 {
		t.Fatalf("want 2 warnings, got %v", s.Warnings())
	}
}

func TestScanner_LineAndColumnTracking(t *testing.T) {
	tokens := toks(t, "var x\n  x = 1")
	// var(1:1) x(1:5) \n(1:6) x(2:3) =(2:5) 1(2:7) EOF(2:8)
	want := []struct {
		line, col int
	}{
		{1, 1}, {1, 5}, {1, 6}, {2, 3}, {2, 5}, {2, 7}, {2, 8},
	}
	if len(tokens) != len(want) {
		t.Fatalf("token count: want %d, got %d (%v)", len(want), len(tokens), tokens)
	}
	for i, w := range want {
		if tokens[i].Line != w.line || tokens[i].Column != w.col {
			t.Fatalf("token %d (%v): want %d:%d, got %d:%d",
				i, tokens[i], w.line, w.col, tokens[i].Line, tokens[i].Column)
		}
	}
}

func TestScanner_SlashSlashIsAlwaysAComment(t *testing.T) {
	wantTypes(t, "4 // 2", []TokenType{TOKEN_NUMBER})
}

func TestScanner_AlwaysEndsWithEOF(t *testing.T) {
	for _, src := range []string{"", "   ", "# only a comment", "1 + 2"} {
		tokens := toks(t, src)
		if len(tokens) == 0 || tokens[len(tokens)-1].TokenType != TOKEN_EOF {
			t.Fatalf("source %q: missing EOF terminator: %v", src, tokens)
		}
	}
}
