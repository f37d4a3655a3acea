// Package ast defines the abstract syntax tree produced by the Zircon
// parser. Nodes form a strict ownership tree: every node exclusively owns
// its children, the Root owns everything, and no node is mutated after
// construction except to fill child slots discovered deeper in the descent.
//
// Every node records its owning source unit and a 1-based line/column. For
// most nodes that is the first token consumed by its production; binary and
// cast expressions are positioned at their operator token (the operator or
// `as`), and a synthesized void return type at the token where the `->`
// would have appeared. Lexemes and decoded string
// data are copied out of the token buffer, so a parsed tree holds no
// references into the source bytes.
package ast

import "github.com/zircon-lang/zircon/internal/source"

// Pos records a node's owning unit and 1-based source position. It is
// embedded in every node.
type Pos struct {
	Unit   *source.Unit
	Line   int
	Column int
}

// Position returns the node's position record.
func (p Pos) Position() Pos { return p }

// Node is implemented by every AST node.
type Node interface {
	Position() Pos
}

// Decl is implemented by declaration nodes: those that can appear at the top
// level of a unit, and FnDecl, which appears only inside extern blocks.
type Decl interface {
	Node
	declNode()
}

// Expr is implemented by expression nodes. Blocks are expressions: the
// grammar admits them as primaries and block statements are expressions.
type Expr interface {
	Node
	exprNode()
}

// Visibility controls linkage and external visibility of a function.
type Visibility int

const (
	VisPrivate Visibility = iota
	VisPub
	VisExport
)

func (v Visibility) String() string {
	switch v {
	case VisPrivate:
		return "private"
	case VisPub:
		return "pub"
	case VisExport:
		return "export"
	}
	return "unknown"
}

// BinOp identifies a binary operator.
type BinOp int

const (
	BinOpBoolOr BinOp = iota
	BinOpBoolAnd
	BinOpCmpEq
	BinOpCmpNotEq
	BinOpCmpLessThan
	BinOpCmpGreaterThan
	BinOpCmpLessOrEq
	BinOpCmpGreaterOrEq
	BinOpBinOr
	BinOpBinXor
	BinOpBinAnd
	BinOpShiftLeft
	BinOpShiftRight
	BinOpAdd
	BinOpSub
	BinOpMult
	BinOpDiv
	BinOpMod
)

func (op BinOp) String() string {
	switch op {
	case BinOpBoolOr:
		return "||"
	case BinOpBoolAnd:
		return "&&"
	case BinOpCmpEq:
		return "=="
	case BinOpCmpNotEq:
		return "!="
	case BinOpCmpLessThan:
		return "<"
	case BinOpCmpGreaterThan:
		return ">"
	case BinOpCmpLessOrEq:
		return "<="
	case BinOpCmpGreaterOrEq:
		return ">="
	case BinOpBinOr:
		return "|"
	case BinOpBinXor:
		return "^"
	case BinOpBinAnd:
		return "&"
	case BinOpShiftLeft:
		return "<<"
	case BinOpShiftRight:
		return ">>"
	case BinOpAdd:
		return "+"
	case BinOpSub:
		return "-"
	case BinOpMult:
		return "*"
	case BinOpDiv:
		return "/"
	case BinOpMod:
		return "%"
	}
	return "(invalid)"
}

// PrefixOp identifies a prefix operator.
type PrefixOp int

const (
	PrefixBoolNot PrefixOp = iota // !
	PrefixNegate                  // -
	PrefixBinNot                  // ~
)

func (op PrefixOp) String() string {
	switch op {
	case PrefixBoolNot:
		return "!"
	case PrefixNegate:
		return "-"
	case PrefixBinNot:
		return "~"
	}
	return "(invalid)"
}

// Root is the top of the tree: the ordered top-level declarations of one
// source unit.
type Root struct {
	Pos
	Decls []Decl
}

// RootExportDecl is a file-scope `export type "name";` declaration.
type RootExportDecl struct {
	Pos
	ExportType string // export category lexeme, e.g. "executable"
	Name       string // decoded exported name
	Directives []*Directive
}

func (*RootExportDecl) declNode() {}

// Use is a `use "path";` import directive.
type Use struct {
	Pos
	Path       string // decoded import path
	Directives []*Directive
}

func (*Use) declNode() {}

// ExternBlock groups foreign function prototypes.
type ExternBlock struct {
	Pos
	Directives []*Directive
	Decls      []*FnDecl
}

func (*ExternBlock) declNode() {}

// FnDecl is a bodiless prototype inside an extern block.
type FnDecl struct {
	Pos
	Proto *FnProto
}

func (*FnDecl) declNode() {}

// FnDef is a function definition: a prototype plus its body.
type FnDef struct {
	Pos
	Proto *FnProto
	Body  *Block
}

func (*FnDef) declNode() {}

// FnProto is a function signature, shared by declarations and definitions.
// ReturnType is never nil: a missing `-> Type` synthesizes a void primitive
// positioned at the token where the arrow would have appeared.
type FnProto struct {
	Pos
	Visibility Visibility
	Name       string
	Params     []*ParamDecl
	ReturnType *Type
	Directives []*Directive
}

// ParamDecl is a single `name: Type` parameter.
type ParamDecl struct {
	Pos
	Name string
	Type *Type
}

// TypeKind discriminates the Type variants.
type TypeKind int

const (
	TypePrimitive TypeKind = iota
	TypePointer
)

// Type is a type expression: a named primitive or a pointer.
type Type struct {
	Pos
	Kind    TypeKind
	Name    string // primitive name, TypePrimitive only
	IsConst bool   // TypePointer only
	Child   *Type  // TypePointer only
}

// Block is a `{ ... }` sequence of expression statements.
type Block struct {
	Pos
	Stmts []Expr
}

func (*Block) exprNode() {}

// BinOpExpr applies a binary operator to two operands.
type BinOpExpr struct {
	Pos
	Op  BinOp
	LHS Expr
	RHS Expr
}

func (*BinOpExpr) exprNode() {}

// PrefixOpExpr applies a prefix operator to its operand.
type PrefixOpExpr struct {
	Pos
	Op      PrefixOp
	Operand Expr
}

func (*PrefixOpExpr) exprNode() {}

// CastExpr converts an operand to a target type via `as`.
type CastExpr struct {
	Pos
	Operand Expr
	Type    *Type
}

func (*CastExpr) exprNode() {}

// FnCallExpr applies a callee to an ordered argument list.
type FnCallExpr struct {
	Pos
	Callee Expr
	Args   []Expr
}

func (*FnCallExpr) exprNode() {}

// ReturnExpr is `return` with an optional value.
type ReturnExpr struct {
	Pos
	Value Expr // nil when absent
}

func (*ReturnExpr) exprNode() {}

// NumberLiteral preserves the literal's digits verbatim.
type NumberLiteral struct {
	Pos
	Value string
}

func (*NumberLiteral) exprNode() {}

// StringLiteral holds the decoded bytes of a string literal.
type StringLiteral struct {
	Pos
	Value []byte
}

func (*StringLiteral) exprNode() {}

// Symbol is an identifier reference.
type Symbol struct {
	Pos
	Name string
}

func (*Symbol) exprNode() {}

// Unreachable is the `unreachable` primary.
type Unreachable struct {
	Pos
}

func (*Unreachable) exprNode() {}

// Directive is a `#name("param")` annotation attached to the declaration
// that follows it.
type Directive struct {
	Pos
	Name  string
	Param string // decoded parameter
}
