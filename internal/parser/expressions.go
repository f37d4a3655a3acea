package parser

import (
	"github.com/zircon-lang/zircon/internal/arena"
	"github.com/zircon-lang/zircon/internal/ast"
	"github.com/zircon-lang/zircon/internal/lexer"
)

// The expression grammar is a precedence ladder. Every entry point threads
// a mandatory flag: true means a failed match is a fatal invalid-token
// fault at the current position, false means the caller gets nil and
// decides. Binary levels iterate over operators of their own band so that
// chains of same-precedence operators group left to right.

// parseExpression parses Expression : ReturnExpression | BoolOrExpression.
func (p *session) parseExpression(mandatory bool) ast.Expr {
	tok := p.peek()

	if returnExpr := p.parseReturnExpr(false); returnExpr != nil {
		return returnExpr
	}

	if boolOrExpr := p.parseBoolOrExpr(false); boolOrExpr != nil {
		return boolOrExpr
	}

	if !mandatory {
		return nil
	}
	p.invalidToken(tok)
	return nil
}

// parseReturnExpr parses ReturnExpression : return option(Expression).
// The value is absent when the next token cannot start an expression.
func (p *session) parseReturnExpr(mandatory bool) ast.Expr {
	tok := p.peek()
	if tok.Kind != lexer.TokenKeywordReturn {
		if mandatory {
			p.invalidToken(tok)
		}
		return nil
	}
	p.advance()

	node := arena.New[ast.ReturnExpr](p.arena)
	node.Pos = p.pos(tok)
	node.Value = p.parseExpression(false)
	return node
}

// foldBinary builds one BinOpExpr positioned at the operator token.
func (p *session) foldBinary(lhs ast.Expr, opTok lexer.Token, op ast.BinOp, rhs ast.Expr) ast.Expr {
	node := arena.New[ast.BinOpExpr](p.arena)
	node.Pos = p.pos(opTok)
	node.Op = op
	node.LHS = lhs
	node.RHS = rhs
	return node
}

// parseBoolOrExpr parses BoolOr : BoolAnd (`||` BoolAnd)*.
func (p *session) parseBoolOrExpr(mandatory bool) ast.Expr {
	operand := p.parseBoolAndExpr(mandatory)
	if operand == nil {
		return nil
	}
	for p.peek().Kind == lexer.TokenBoolOr {
		opTok := p.advance()
		rhs := p.parseBoolAndExpr(true)
		operand = p.foldBinary(operand, opTok, ast.BinOpBoolOr, rhs)
	}
	return operand
}

// parseBoolAndExpr parses BoolAnd : Comparison (`&&` Comparison)*.
func (p *session) parseBoolAndExpr(mandatory bool) ast.Expr {
	operand := p.parseComparisonExpr(mandatory)
	if operand == nil {
		return nil
	}
	for p.peek().Kind == lexer.TokenBoolAnd {
		opTok := p.advance()
		rhs := p.parseComparisonExpr(true)
		operand = p.foldBinary(operand, opTok, ast.BinOpBoolAnd, rhs)
	}
	return operand
}

func comparisonOp(kind lexer.Kind) (ast.BinOp, bool) {
	switch kind {
	case lexer.TokenCmpEq:
		return ast.BinOpCmpEq, true
	case lexer.TokenCmpNotEq:
		return ast.BinOpCmpNotEq, true
	case lexer.TokenCmpLessThan:
		return ast.BinOpCmpLessThan, true
	case lexer.TokenCmpGreaterThan:
		return ast.BinOpCmpGreaterThan, true
	case lexer.TokenCmpLessOrEq:
		return ast.BinOpCmpLessOrEq, true
	case lexer.TokenCmpGreaterOrEq:
		return ast.BinOpCmpGreaterOrEq, true
	}
	return 0, false
}

// parseComparisonExpr parses Comparison : BinOr (cmp-op BinOr)*.
func (p *session) parseComparisonExpr(mandatory bool) ast.Expr {
	operand := p.parseBinOrExpr(mandatory)
	if operand == nil {
		return nil
	}
	for {
		op, ok := comparisonOp(p.peek().Kind)
		if !ok {
			return operand
		}
		opTok := p.advance()
		rhs := p.parseBinOrExpr(true)
		operand = p.foldBinary(operand, opTok, op, rhs)
	}
}

// parseBinOrExpr parses BinOr : BinXor (`|` BinXor)*.
func (p *session) parseBinOrExpr(mandatory bool) ast.Expr {
	operand := p.parseBinXorExpr(mandatory)
	if operand == nil {
		return nil
	}
	for p.peek().Kind == lexer.TokenPipe {
		opTok := p.advance()
		rhs := p.parseBinXorExpr(true)
		operand = p.foldBinary(operand, opTok, ast.BinOpBinOr, rhs)
	}
	return operand
}

// parseBinXorExpr parses BinXor : BinAnd (`^` BinAnd)*.
func (p *session) parseBinXorExpr(mandatory bool) ast.Expr {
	operand := p.parseBinAndExpr(mandatory)
	if operand == nil {
		return nil
	}
	for p.peek().Kind == lexer.TokenCaret {
		opTok := p.advance()
		rhs := p.parseBinAndExpr(true)
		operand = p.foldBinary(operand, opTok, ast.BinOpBinXor, rhs)
	}
	return operand
}

// parseBinAndExpr parses BinAnd : BitShift (`&` BitShift)*.
func (p *session) parseBinAndExpr(mandatory bool) ast.Expr {
	operand := p.parseBitShiftExpr(mandatory)
	if operand == nil {
		return nil
	}
	for p.peek().Kind == lexer.TokenAmpersand {
		opTok := p.advance()
		rhs := p.parseBitShiftExpr(true)
		operand = p.foldBinary(operand, opTok, ast.BinOpBinAnd, rhs)
	}
	return operand
}

func bitShiftOp(kind lexer.Kind) (ast.BinOp, bool) {
	switch kind {
	case lexer.TokenShiftLeft:
		return ast.BinOpShiftLeft, true
	case lexer.TokenShiftRight:
		return ast.BinOpShiftRight, true
	}
	return 0, false
}

// parseBitShiftExpr parses BitShift : Add ((`<<`|`>>`) Add)*.
func (p *session) parseBitShiftExpr(mandatory bool) ast.Expr {
	operand := p.parseAddExpr(mandatory)
	if operand == nil {
		return nil
	}
	for {
		op, ok := bitShiftOp(p.peek().Kind)
		if !ok {
			return operand
		}
		opTok := p.advance()
		rhs := p.parseAddExpr(true)
		operand = p.foldBinary(operand, opTok, op, rhs)
	}
}

func addOp(kind lexer.Kind) (ast.BinOp, bool) {
	switch kind {
	case lexer.TokenPlus:
		return ast.BinOpAdd, true
	case lexer.TokenDash:
		return ast.BinOpSub, true
	}
	return 0, false
}

// parseAddExpr parses Add : Mult ((`+`|`-`) Mult)*.
func (p *session) parseAddExpr(mandatory bool) ast.Expr {
	operand := p.parseMultExpr(mandatory)
	if operand == nil {
		return nil
	}
	for {
		op, ok := addOp(p.peek().Kind)
		if !ok {
			return operand
		}
		opTok := p.advance()
		rhs := p.parseMultExpr(true)
		operand = p.foldBinary(operand, opTok, op, rhs)
	}
}

func multOp(kind lexer.Kind) (ast.BinOp, bool) {
	switch kind {
	case lexer.TokenStar:
		return ast.BinOpMult, true
	case lexer.TokenSlash:
		return ast.BinOpDiv, true
	case lexer.TokenPercent:
		return ast.BinOpMod, true
	}
	return 0, false
}

// parseMultExpr parses Mult : Cast ((`*`|`/`|`%`) Cast)*.
func (p *session) parseMultExpr(mandatory bool) ast.Expr {
	operand := p.parseCastExpr(mandatory)
	if operand == nil {
		return nil
	}
	for {
		op, ok := multOp(p.peek().Kind)
		if !ok {
			return operand
		}
		opTok := p.advance()
		rhs := p.parseCastExpr(true)
		operand = p.foldBinary(operand, opTok, op, rhs)
	}
}

// parseCastExpr parses Cast : PrefixOp (`as` Type)?. The cast suffix
// applies at most once; `x as T as U` is not expressible.
func (p *session) parseCastExpr(mandatory bool) ast.Expr {
	operand := p.parsePrefixOpExpr(mandatory)
	if operand == nil {
		return nil
	}

	asTok := p.peek()
	if asTok.Kind != lexer.TokenKeywordAs {
		return operand
	}
	p.advance()

	node := arena.New[ast.CastExpr](p.arena)
	node.Pos = p.pos(asTok)
	node.Operand = operand
	node.Type = p.parseType()
	return node
}

func prefixOp(kind lexer.Kind) (ast.PrefixOp, bool) {
	switch kind {
	case lexer.TokenBang:
		return ast.PrefixBoolNot, true
	case lexer.TokenDash:
		return ast.PrefixNegate, true
	case lexer.TokenTilde:
		return ast.PrefixBinNot, true
	}
	return 0, false
}

// parsePrefixOpExpr parses PrefixOp : (`!`|`-`|`~`)? FnCall.
func (p *session) parsePrefixOpExpr(mandatory bool) ast.Expr {
	tok := p.peek()
	op, ok := prefixOp(tok.Kind)
	if !ok {
		return p.parseFnCallExpr(mandatory)
	}
	p.advance()

	operand := p.parseFnCallExpr(true)

	node := arena.New[ast.PrefixOpExpr](p.arena)
	node.Pos = p.pos(tok)
	node.Op = op
	node.Operand = operand
	return node
}

// parseFnCallExpr parses FnCall : Primary (`(` arg-list `)`)?. The call
// suffix applies at most once; `f()()` is not expressible.
func (p *session) parseFnCallExpr(mandatory bool) ast.Expr {
	primary := p.parsePrimaryExpr(mandatory)
	if primary == nil {
		return nil
	}

	if p.peek().Kind != lexer.TokenLParen {
		return primary
	}

	node := arena.New[ast.FnCallExpr](p.arena)
	node.Pos = p.posOf(primary)
	node.Callee = primary
	p.parseFnCallArgs(&node.Args)
	return node
}

// parseFnCallArgs parses `(` list(Expression, `,`) `)`. Empty lists are
// legal.
func (p *session) parseFnCallArgs(args *[]ast.Expr) {
	p.expect(lexer.TokenLParen)

	if p.peek().Kind == lexer.TokenRParen {
		p.advance()
		return
	}

	for {
		*args = append(*args, p.parseExpression(true))

		tok := p.advance()
		if tok.Kind == lexer.TokenRParen {
			return
		}
		if tok.Kind != lexer.TokenComma {
			p.invalidToken(tok)
		}
	}
}

// parseGroupedExpr parses `(` Expression `)`. The inner expression is
// returned as-is; the parens leave no node.
func (p *session) parseGroupedExpr(mandatory bool) ast.Expr {
	if p.peek().Kind != lexer.TokenLParen {
		if mandatory {
			p.invalidToken(p.peek())
		}
		return nil
	}
	p.advance()

	node := p.parseExpression(true)
	p.expect(lexer.TokenRParen)
	return node
}

// parsePrimaryExpr parses Primary : NumberLiteral | StringLiteral |
// unreachable | Symbol | Block | GroupedExpression.
func (p *session) parsePrimaryExpr(mandatory bool) ast.Expr {
	tok := p.peek()

	switch tok.Kind {
	case lexer.TokenNumber:
		node := arena.New[ast.NumberLiteral](p.arena)
		node.Pos = p.pos(tok)
		node.Value = p.lexeme(tok)
		p.advance()
		return node
	case lexer.TokenString:
		node := arena.New[ast.StringLiteral](p.arena)
		node.Pos = p.pos(tok)
		node.Value = p.decodeString(tok)
		p.advance()
		return node
	case lexer.TokenKeywordUnreachable:
		node := arena.New[ast.Unreachable](p.arena)
		node.Pos = p.pos(tok)
		p.advance()
		return node
	case lexer.TokenSymbol:
		node := arena.New[ast.Symbol](p.arena)
		node.Pos = p.pos(tok)
		node.Name = p.lexeme(tok)
		p.advance()
		return node
	}

	if block := p.parseBlock(false); block != nil {
		return block
	}

	if grouped := p.parseGroupedExpr(false); grouped != nil {
		return grouped
	}

	if !mandatory {
		return nil
	}
	p.invalidToken(tok)
	return nil
}
