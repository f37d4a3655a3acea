package lexer

import (
	"strings"
	"testing"

	"github.com/zircon-lang/zircon/internal/source"
)

func tokenize(t *testing.T, code string) []Token {
	t.Helper()
	tokens, err := Tokenize(source.NewUnit("test.zr", []byte(code)))
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", code, err)
	}
	return tokens
}

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []Kind
	}{
		{
			name: "empty input",
			code: "",
			want: []Kind{TokenEOF},
		},
		{
			name: "symbols and keywords",
			code: "fn main return mutable mut",
			want: []Kind{TokenKeywordFn, TokenSymbol, TokenKeywordReturn, TokenSymbol, TokenKeywordMut, TokenEOF},
		},
		{
			name: "number and string",
			code: `42 "hello"`,
			want: []Kind{TokenNumber, TokenString, TokenEOF},
		},
		{
			name: "punctuation",
			code: "( ) { } , ; : -> #",
			want: []Kind{TokenLParen, TokenRParen, TokenLBrace, TokenRBrace, TokenComma, TokenSemicolon, TokenColon, TokenArrow, TokenNumberSign, TokenEOF},
		},
		{
			name: "single-char operators",
			code: "* / % + - & ^ | ! ~ < >",
			want: []Kind{TokenStar, TokenSlash, TokenPercent, TokenPlus, TokenDash, TokenAmpersand, TokenCaret, TokenPipe, TokenBang, TokenTilde, TokenCmpLessThan, TokenCmpGreaterThan, TokenEOF},
		},
		{
			name: "two-char operators",
			code: "<< >> && || == != <= >=",
			want: []Kind{TokenShiftLeft, TokenShiftRight, TokenBoolAnd, TokenBoolOr, TokenCmpEq, TokenCmpNotEq, TokenCmpLessOrEq, TokenCmpGreaterOrEq, TokenEOF},
		},
		{
			name: "dash then arrow",
			code: "- ->",
			want: []Kind{TokenDash, TokenArrow, TokenEOF},
		},
		{
			name: "adjacent operators split greedily",
			code: "a<=<b",
			want: []Kind{TokenSymbol, TokenCmpLessOrEq, TokenCmpLessThan, TokenSymbol, TokenEOF},
		},
		{
			name: "keyword prefix stays symbol",
			code: "fnord externs used",
			want: []Kind{TokenSymbol, TokenSymbol, TokenSymbol, TokenEOF},
		},
		{
			name: "line comment swallowed",
			code: "a // b c d\nb",
			want: []Kind{TokenSymbol, TokenSymbol, TokenEOF},
		},
		{
			name: "block comment swallowed",
			code: "a /* b */ c",
			want: []Kind{TokenSymbol, TokenSymbol, TokenEOF},
		},
		{
			name: "nested block comment",
			code: "a /* x /* y */ z */ b",
			want: []Kind{TokenSymbol, TokenSymbol, TokenEOF},
		},
		{
			name: "string with escaped quote",
			code: `"a\"b" c`,
			want: []Kind{TokenString, TokenSymbol, TokenEOF},
		},
		{
			name: "function definition",
			code: "pub fn add(a: i32, b: i32) -> i32 { return a + b; }",
			want: []Kind{
				TokenKeywordPub, TokenKeywordFn, TokenSymbol, TokenLParen,
				TokenSymbol, TokenColon, TokenSymbol, TokenComma,
				TokenSymbol, TokenColon, TokenSymbol, TokenRParen,
				TokenArrow, TokenSymbol, TokenLBrace,
				TokenKeywordReturn, TokenSymbol, TokenPlus, TokenSymbol, TokenSemicolon,
				TokenRBrace, TokenEOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(tokenize(t, tt.code))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("token %d: got %s, want %s (full: %v)", i, got[i], tt.want[i], got)
				}
			}
		})
	}
}

func TestTokenPositions(t *testing.T) {
	code := "fn main()\n  return 12;\n"
	tokens := tokenize(t, code)

	want := []struct {
		kind         Kind
		line, column int
	}{
		{TokenKeywordFn, 1, 1},
		{TokenSymbol, 1, 4},
		{TokenLParen, 1, 8},
		{TokenRParen, 1, 9},
		{TokenKeywordReturn, 2, 3},
		{TokenNumber, 2, 10},
		{TokenSemicolon, 2, 12},
		{TokenEOF, 3, 1},
	}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Kind != w.kind || tok.Line != w.line || tok.Column != w.column {
			t.Errorf("token %d: got %s at %d:%d, want %s at %d:%d",
				i, tok.Kind, tok.Line, tok.Column, w.kind, w.line, w.column)
		}
	}
}

func TestTokenOffsets(t *testing.T) {
	code := `x "ab" 123`
	tokens := tokenize(t, code)

	// The string token's span includes the quotes.
	str := tokens[1]
	if str.Kind != TokenString {
		t.Fatalf("token 1: got %s, want String", str.Kind)
	}
	if got := code[str.Start:str.End]; got != `"ab"` {
		t.Errorf("string span: got %q, want %q", got, `"ab"`)
	}

	num := tokens[2]
	if got := code[num.Start:num.End]; got != "123" {
		t.Errorf("number span: got %q, want %q", got, "123")
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"invalid character", "a $ b", "test.zr:1:3: invalid character: '$'"},
		{"bare equals", "a = b", "test.zr:1:3: invalid character: '='"},
		{"unterminated string", `"abc`, "test.zr:1:1: unterminated string literal"},
		{"escape at end of input", `"abc\`, "test.zr:1:1: unterminated string literal"},
		{"newline in string", "\"ab\ncd\"", "test.zr:1:1: newline in string literal"},
		{"unterminated block comment", "a /* b", "test.zr:1:3: unterminated block comment"},
		{"unterminated nested block comment", "/* a /* b */", "test.zr:1:1: unterminated block comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(source.NewUnit("test.zr", []byte(tt.code)))
			if err == nil {
				t.Fatalf("Tokenize(%q) succeeded, want error", tt.code)
			}
			if err.Error() != tt.want {
				t.Errorf("got error %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestEOFSentinelRepeats(t *testing.T) {
	l := New(source.NewUnit("test.zr", []byte("x")))
	if tok, err := l.Next(); err != nil || tok.Kind != TokenSymbol {
		t.Fatalf("first token: got %v, %v", tok, err)
	}
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil || tok.Kind != TokenEOF {
			t.Fatalf("call %d past end: got %v, %v, want EOF", i, tok, err)
		}
	}
}

func TestKindStrings(t *testing.T) {
	for kind, name := range kindNames {
		if kind.String() != name {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), kind.String(), name)
		}
	}
	if got := Kind(999).String(); !strings.HasPrefix(got, "UNKNOWN") {
		t.Errorf("unknown kind: got %q", got)
	}
}
