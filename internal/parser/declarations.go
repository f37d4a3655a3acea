package parser

import (
	"github.com/zircon-lang/zircon/internal/arena"
	"github.com/zircon-lang/zircon/internal/ast"
	"github.com/zircon-lang/zircon/internal/lexer"
)

// parseRoot parses the whole token sequence into a Root. The parse only
// succeeds if the cursor comes to rest exactly on the EOF sentinel; a
// stray-but-valid token after the last declaration is as fatal as a
// malformed one.
func (p *session) parseRoot() *ast.Root {
	root := arena.New[ast.Root](p.arena)
	root.Pos = p.pos(p.peek())
	root.Decls = p.parseTopLevelDecls()

	if p.index != len(p.tokens)-1 {
		p.invalidToken(p.peek())
	}
	return root
}

// parseTopLevelDecls consumes declarations until none of the top-level
// productions match. Directives in front of a declaration position are
// collected first; a declaration that matches takes ownership of them, and
// leftovers with no declaration to attach to are a fault at the first '#'.
func (p *session) parseTopLevelDecls() []ast.Decl {
	var decls []ast.Decl
	for {
		directiveTok := p.peek()
		p.collectDirectives()

		if decl := p.parseRootExportDecl(); decl != nil {
			decls = append(decls, decl)
			continue
		}
		if decl := p.parseFnDef(); decl != nil {
			decls = append(decls, decl)
			continue
		}
		if decl := p.parseExternBlock(); decl != nil {
			decls = append(decls, decl)
			continue
		}
		if decl := p.parseUse(); decl != nil {
			decls = append(decls, decl)
			continue
		}

		if len(p.pending) > 0 {
			p.errorAt(directiveTok, "invalid directive")
		}
		p.pendingActive = false
		return decls
	}
}

// ----- directives -----

// collectDirectives gathers the run of directives at the cursor into the
// pending slot. Only one pending list may exist at a time; a second
// collection before the first is claimed is a parser bug, not a user error.
func (p *session) collectDirectives() {
	if p.pendingActive {
		panic("parser: directive list already pending")
	}
	p.pendingActive = true
	for p.peek().Kind == lexer.TokenNumberSign {
		p.pending = append(p.pending, p.parseDirective())
	}
}

// takePendingDirectives transfers ownership of the pending directives to the
// caller and clears the slot.
func (p *session) takePendingDirectives() []*ast.Directive {
	directives := p.pending
	p.pending = nil
	p.pendingActive = false
	return directives
}

// parseDirective parses one `#name("param")` annotation.
func (p *session) parseDirective() *ast.Directive {
	hash := p.expect(lexer.TokenNumberSign)

	directive := arena.New[ast.Directive](p.arena)
	directive.Pos = p.pos(hash)
	directive.Name = p.lexeme(p.expect(lexer.TokenSymbol))

	p.expect(lexer.TokenLParen)
	directive.Param = p.decodeStringText(p.expect(lexer.TokenString))
	p.expect(lexer.TokenRParen)
	return directive
}

// ----- functions -----

// parseFnProto parses a function signature. When mandatory is false and the
// cursor is not at a prototype, nil is returned with nothing consumed.
// A missing `-> Type` clause synthesizes a void return type positioned at
// the token where the arrow would have been.
func (p *session) parseFnProto(mandatory bool) *ast.FnProto {
	first := p.peek()

	visibility := ast.VisPrivate
	switch first.Kind {
	case lexer.TokenKeywordFn:
		p.advance()
	case lexer.TokenKeywordPub:
		visibility = ast.VisPub
		p.advance()
		p.expect(lexer.TokenKeywordFn)
	case lexer.TokenKeywordExport:
		visibility = ast.VisExport
		p.advance()
		p.expect(lexer.TokenKeywordFn)
	default:
		if mandatory {
			p.invalidToken(first)
		}
		return nil
	}

	proto := arena.New[ast.FnProto](p.arena)
	proto.Pos = p.pos(first)
	proto.Visibility = visibility
	proto.Directives = p.takePendingDirectives()
	proto.Name = p.lexeme(p.expect(lexer.TokenSymbol))
	proto.Params = p.parseParamDeclList()

	if p.peek().Kind == lexer.TokenArrow {
		p.advance()
		proto.ReturnType = p.parseType()
	} else {
		void := arena.New[ast.Type](p.arena)
		void.Pos = p.pos(p.peek())
		void.Kind = ast.TypePrimitive
		void.Name = "void"
		proto.ReturnType = void
	}
	return proto
}

// parseFnDef parses a function definition. Returns nil if the cursor is not
// at a prototype.
func (p *session) parseFnDef() *ast.FnDef {
	proto := p.parseFnProto(false)
	if proto == nil {
		return nil
	}

	def := arena.New[ast.FnDef](p.arena)
	def.Pos = p.posOf(proto)
	def.Proto = proto
	def.Body = p.parseBlock(true)
	return def
}

// parseFnDecl parses a bodiless prototype terminated by a semicolon, the
// only form admitted inside extern blocks.
func (p *session) parseFnDecl() *ast.FnDecl {
	proto := p.parseFnProto(true)

	decl := arena.New[ast.FnDecl](p.arena)
	decl.Pos = p.posOf(proto)
	decl.Proto = proto
	p.expect(lexer.TokenSemicolon)
	return decl
}

// parseExternBlock parses `extern { ... }`. Directives collected inside the
// block attach to the prototype that follows them; a run of directives
// straight before the closing brace has nothing to attach to and is a fault.
func (p *session) parseExternBlock() *ast.ExternBlock {
	first := p.peek()
	if first.Kind != lexer.TokenKeywordExtern {
		return nil
	}
	p.advance()

	block := arena.New[ast.ExternBlock](p.arena)
	block.Pos = p.pos(first)
	block.Directives = p.takePendingDirectives()

	p.expect(lexer.TokenLBrace)
	for {
		directiveTok := p.peek()
		p.collectDirectives()

		if p.peek().Kind == lexer.TokenRBrace {
			if len(p.pending) > 0 {
				p.errorAt(directiveTok, "invalid directive")
			}
			p.pendingActive = false
			p.advance()
			return block
		}
		block.Decls = append(block.Decls, p.parseFnDecl())
	}
}

// ----- other top-level declarations -----

// parseRootExportDecl parses `export type "name";`. The export keyword alone
// does not commit: `export fn` belongs to parseFnProto, so the decision
// needs the token after export to be a symbol.
func (p *session) parseRootExportDecl() *ast.RootExportDecl {
	first := p.peek()
	if first.Kind != lexer.TokenKeywordExport || p.peekAt(1).Kind != lexer.TokenSymbol {
		return nil
	}
	p.advance()

	decl := arena.New[ast.RootExportDecl](p.arena)
	decl.Pos = p.pos(first)
	decl.Directives = p.takePendingDirectives()
	decl.ExportType = p.lexeme(p.advance())
	decl.Name = p.decodeStringText(p.expect(lexer.TokenString))
	p.expect(lexer.TokenSemicolon)
	return decl
}

// parseUse parses a `use "path";` import.
func (p *session) parseUse() *ast.Use {
	first := p.peek()
	if first.Kind != lexer.TokenKeywordUse {
		return nil
	}
	p.advance()

	use := arena.New[ast.Use](p.arena)
	use.Pos = p.pos(first)
	use.Path = p.decodeStringText(p.expect(lexer.TokenString))
	use.Directives = p.takePendingDirectives()
	p.expect(lexer.TokenSemicolon)
	return use
}

// ----- types -----

// parseType parses a type expression: a primitive name, the unreachable
// type, or a `*mut T` / `*const T` pointer.
func (p *session) parseType() *ast.Type {
	tok := p.advance()
	typ := arena.New[ast.Type](p.arena)
	typ.Pos = p.pos(tok)

	switch tok.Kind {
	case lexer.TokenKeywordUnreachable:
		typ.Kind = ast.TypePrimitive
		typ.Name = "unreachable"
	case lexer.TokenSymbol:
		typ.Kind = ast.TypePrimitive
		typ.Name = p.lexeme(tok)
	case lexer.TokenStar:
		typ.Kind = ast.TypePointer
		switch p.peek().Kind {
		case lexer.TokenKeywordMut:
			p.advance()
		case lexer.TokenKeywordConst:
			p.advance()
			typ.IsConst = true
		default:
			p.invalidToken(p.peek())
		}
		typ.Child = p.parseType()
	default:
		p.invalidToken(tok)
	}
	return typ
}

// ----- parameters -----

// parseParamDecl parses a single `name: Type` parameter.
func (p *session) parseParamDecl() *ast.ParamDecl {
	name := p.expect(lexer.TokenSymbol)

	param := arena.New[ast.ParamDecl](p.arena)
	param.Pos = p.pos(name)
	param.Name = p.lexeme(name)
	p.expect(lexer.TokenColon)
	param.Type = p.parseType()
	return param
}

// parseParamDeclList parses a parenthesized, comma-separated parameter
// list. The empty list is legal; a trailing comma is not.
func (p *session) parseParamDeclList() []*ast.ParamDecl {
	p.expect(lexer.TokenLParen)
	if p.peek().Kind == lexer.TokenRParen {
		p.advance()
		return nil
	}

	var params []*ast.ParamDecl
	for {
		params = append(params, p.parseParamDecl())
		switch tok := p.advance(); tok.Kind {
		case lexer.TokenRParen:
			return params
		case lexer.TokenComma:
		default:
			p.invalidToken(tok)
		}
	}
}

// ----- blocks -----

// parseBlock parses a `{ ... }` sequence of semicolon-terminated expression
// statements. When mandatory is false and the cursor is not at an opening
// brace, nil is returned with nothing consumed.
func (p *session) parseBlock(mandatory bool) *ast.Block {
	lbrace := p.peek()
	if lbrace.Kind != lexer.TokenLBrace {
		if mandatory {
			p.invalidToken(lbrace)
		}
		return nil
	}
	p.advance()

	block := arena.New[ast.Block](p.arena)
	block.Pos = p.pos(lbrace)
	for {
		if p.peek().Kind == lexer.TokenRBrace {
			p.advance()
			return block
		}
		block.Stmts = append(block.Stmts, p.parseExpression(true))
		p.expect(lexer.TokenSemicolon)
	}
}
