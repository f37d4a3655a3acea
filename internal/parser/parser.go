// Package parser implements the Zircon recursive descent parser. It turns
// the token sequence of one source unit into an abstract syntax tree.
//
// Parsing is fail-fast: the first malformed token aborts the whole parse
// with a positioned diagnostic. There is no recovery, no synchronization,
// and no multi-error collection.
package parser

import (
	"github.com/zircon-lang/zircon/internal/arena"
	"github.com/zircon-lang/zircon/internal/ast"
	"github.com/zircon-lang/zircon/internal/diagnostics"
	"github.com/zircon-lang/zircon/internal/lexer"
	"github.com/zircon-lang/zircon/internal/source"
)

// session is the state of one parse call: the borrowed token sequence, the
// cursor index, the node pool, and the pending directive slot. Nothing in
// it survives past Parse.
type session struct {
	unit   *source.Unit
	tokens []lexer.Token
	index  int
	arena  *arena.Arena

	// Directives collected in front of a declaration position, waiting for
	// the declaration that will take ownership of them.
	pending       []*ast.Directive
	pendingActive bool
}

// bailout carries the fatal diagnostic up the descent. The first error wins
// because nothing ever continues past a panic.
type bailout struct {
	diag *diagnostics.Diagnostic
}

// Parse parses the token sequence of unit into a tree rooted at an
// *ast.Root. The sequence must end with the EOF sentinel the lexer always
// appends. Nodes are allocated from pool; pass nil to let the session own a
// private pool released by garbage collection. On a syntax fault the
// returned error is a *diagnostics.Diagnostic positioned at the offending
// token.
func Parse(unit *source.Unit, tokens []lexer.Token, pool *arena.Arena) (root *ast.Root, err error) {
	if pool == nil {
		pool = arena.NewArena()
	}
	p := &session{unit: unit, tokens: tokens, arena: pool}

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			root, err = nil, b.diag
		}
	}()

	return p.parseRoot(), nil
}

// ----- token cursor -----

// peek returns the current token without consuming it. The EOF sentinel
// guarantees the index always dereferences safely.
func (p *session) peek() lexer.Token {
	return p.tokens[p.index]
}

// peekAt returns the token offset positions past the current one.
func (p *session) peekAt(offset int) lexer.Token {
	return p.tokens[p.index+offset]
}

// advance consumes and returns the current token.
func (p *session) advance() lexer.Token {
	tok := p.tokens[p.index]
	p.index++
	return tok
}

// expect consumes the current token and fails unless it has the wanted kind.
func (p *session) expect(kind lexer.Kind) lexer.Token {
	tok := p.advance()
	if tok.Kind != kind {
		p.invalidToken(tok)
	}
	return tok
}

// lexeme returns the owned source text underlying tok.
func (p *session) lexeme(tok lexer.Token) string {
	return string(p.unit.Code[tok.Start:tok.End])
}

// ----- diagnostics -----

// errorAt aborts the parse with a diagnostic at tok.
func (p *session) errorAt(tok lexer.Token, format string, args ...interface{}) {
	panic(bailout{diag: diagnostics.New(p.unit.Path, tok.Line, tok.Column, format, args...)})
}

// invalidToken aborts the parse reporting tok as unexpected.
func (p *session) invalidToken(tok lexer.Token) {
	p.errorAt(tok, "invalid token: '%s'", p.lexeme(tok))
}

// ----- node factory -----

// pos stamps a position from a token, the normal case.
func (p *session) pos(tok lexer.Token) ast.Pos {
	return ast.Pos{Unit: p.unit, Line: tok.Line, Column: tok.Column}
}

// posOf stamps a position from another node, used when the syntactic anchor
// is a subtree rather than a token.
func (p *session) posOf(node ast.Node) ast.Pos {
	return node.Position()
}
