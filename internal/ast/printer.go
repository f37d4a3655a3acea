package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a structural dump of the tree rooted at node to w, two
// spaces of indentation per level of depth. The dump is for debugging only
// and never mutates the tree.
func Fprint(w io.Writer, node Node) {
	printNode(w, node, 0)
}

// Sprint returns the structural dump as a string.
func Sprint(node Node) string {
	var b strings.Builder
	Fprint(&b, node)
	return b.String()
}

func printNode(w io.Writer, node Node, indent int) {
	pad := strings.Repeat(" ", indent)

	switch n := node.(type) {
	case *Root:
		fmt.Fprintf(w, "%sRoot\n", pad)
		for _, decl := range n.Decls {
			printNode(w, decl, indent+2)
		}
	case *RootExportDecl:
		fmt.Fprintf(w, "%sRootExportDecl %s '%s'\n", pad, n.ExportType, n.Name)
		printDirectives(w, n.Directives, indent+2)
	case *Use:
		fmt.Fprintf(w, "%sUse '%s'\n", pad, n.Path)
		printDirectives(w, n.Directives, indent+2)
	case *ExternBlock:
		fmt.Fprintf(w, "%sExternBlock\n", pad)
		printDirectives(w, n.Directives, indent+2)
		for _, decl := range n.Decls {
			printNode(w, decl, indent+2)
		}
	case *FnDecl:
		fmt.Fprintf(w, "%sFnDecl\n", pad)
		printNode(w, n.Proto, indent+2)
	case *FnDef:
		fmt.Fprintf(w, "%sFnDef\n", pad)
		printNode(w, n.Proto, indent+2)
		printNode(w, n.Body, indent+2)
	case *FnProto:
		fmt.Fprintf(w, "%sFnProto %s '%s'\n", pad, n.Visibility, n.Name)
		printDirectives(w, n.Directives, indent+2)
		for _, param := range n.Params {
			printNode(w, param, indent+2)
		}
		printNode(w, n.ReturnType, indent+2)
	case *ParamDecl:
		fmt.Fprintf(w, "%sParamDecl '%s'\n", pad, n.Name)
		printNode(w, n.Type, indent+2)
	case *Type:
		switch n.Kind {
		case TypePrimitive:
			fmt.Fprintf(w, "%sType '%s'\n", pad, n.Name)
		case TypePointer:
			constOrMut := "mut"
			if n.IsConst {
				constOrMut = "const"
			}
			fmt.Fprintf(w, "%sPointerType '%s'\n", pad, constOrMut)
			printNode(w, n.Child, indent+2)
		}
	case *Block:
		fmt.Fprintf(w, "%sBlock\n", pad)
		for _, stmt := range n.Stmts {
			printNode(w, stmt, indent+2)
		}
	case *BinOpExpr:
		fmt.Fprintf(w, "%sBinOpExpr %s\n", pad, n.Op)
		printNode(w, n.LHS, indent+2)
		printNode(w, n.RHS, indent+2)
	case *PrefixOpExpr:
		fmt.Fprintf(w, "%sPrefixOpExpr %s\n", pad, n.Op)
		printNode(w, n.Operand, indent+2)
	case *CastExpr:
		fmt.Fprintf(w, "%sCastExpr\n", pad)
		printNode(w, n.Operand, indent+2)
		printNode(w, n.Type, indent+2)
	case *FnCallExpr:
		fmt.Fprintf(w, "%sFnCallExpr\n", pad)
		printNode(w, n.Callee, indent+2)
		for _, arg := range n.Args {
			printNode(w, arg, indent+2)
		}
	case *ReturnExpr:
		fmt.Fprintf(w, "%sReturnExpr\n", pad)
		if n.Value != nil {
			printNode(w, n.Value, indent+2)
		}
	case *NumberLiteral:
		fmt.Fprintf(w, "%sNumberLiteral %s\n", pad, n.Value)
	case *StringLiteral:
		fmt.Fprintf(w, "%sStringLiteral '%s'\n", pad, n.Value)
	case *Symbol:
		fmt.Fprintf(w, "%sSymbol %s\n", pad, n.Name)
	case *Unreachable:
		fmt.Fprintf(w, "%sUnreachable\n", pad)
	case *Directive:
		fmt.Fprintf(w, "%sDirective %s '%s'\n", pad, n.Name, n.Param)
	default:
		fmt.Fprintf(w, "%s(unknown node %T)\n", pad, node)
	}
}

func printDirectives(w io.Writer, directives []*Directive, indent int) {
	for _, d := range directives {
		printNode(w, d, indent)
	}
}
