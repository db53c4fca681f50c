package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/vivax3794/viv-script-blog/internal/ast"
	"github.com/vivax3794/viv-script-blog/internal/source"
)

// ASTNodeOutput is the shared shape of both AST dumps.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	Span     [2]uint32       `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty prints the module as an indented tree:
//
//	Module (1:1-1:18)
//	└─ Function fn0 (1:1-1:18)
//	   └─ Print (1:5-1:16)
//	      └─ Binary + (1:11-1:15)
func FormatASTPretty(w io.Writer, mod *ast.Module, fs *source.FileSet) error {
	root := buildModuleNode(mod)
	if _, err := fmt.Fprintf(w, "%s\n", nodeLabel(root, fs, mod.Span.File)); err != nil {
		return err
	}
	return writeChildren(w, root.Children, "", fs, mod.Span.File)
}

// FormatASTJSON writes the module tree as indented JSON.
func FormatASTJSON(w io.Writer, mod *ast.Module) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildModuleNode(mod))
}

func writeChildren(w io.Writer, children []ASTNodeOutput, prefix string, fs *source.FileSet, file source.FileID) error {
	for i, child := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, nodeLabel(child, fs, file)); err != nil {
			return err
		}
		if err := writeChildren(w, child.Children, prefix+next, fs, file); err != nil {
			return err
		}
	}
	return nil
}

func nodeLabel(n ASTNodeOutput, fs *source.FileSet, file source.FileID) string {
	label := n.Type
	if n.Text != "" {
		label += " " + n.Text
	}
	if fs == nil {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, formatSpan(source.Span{File: file, Start: n.Span[0], End: n.Span[1]}, fs))
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func spanOf(n ast.Node) [2]uint32 {
	sp := n.Location()
	return [2]uint32{sp.Start, sp.End}
}

func buildModuleNode(mod *ast.Module) ASTNodeOutput {
	root := ASTNodeOutput{Type: "Module", Span: spanOf(mod)}
	for _, fn := range mod.Functions {
		fnNode := ASTNodeOutput{Type: "Function", Text: fn.Name, Span: spanOf(fn)}
		for _, st := range fn.Body {
			fnNode.Children = append(fnNode.Children, buildStmtNode(st))
		}
		root.Children = append(root.Children, fnNode)
	}
	return root
}

func buildStmtNode(st ast.Stmt) ASTNodeOutput {
	switch st := st.(type) {
	case *ast.PrintStmt:
		return ASTNodeOutput{Type: "Print", Span: spanOf(st), Children: []ASTNodeOutput{buildExprNode(st.Value)}}
	case *ast.AssertStmt:
		n := ASTNodeOutput{Type: "Assert", Span: spanOf(st), Children: []ASTNodeOutput{buildExprNode(st.Cond)}}
		if st.HasMessage {
			n.Text = strconv.Quote(st.Message)
		}
		return n
	case *ast.DeclareStmt:
		return ASTNodeOutput{Type: "Let", Text: st.Name, Span: spanOf(st), Children: []ASTNodeOutput{buildExprNode(st.Value)}}
	case *ast.AssignStmt:
		return ASTNodeOutput{Type: "Set", Text: st.Name, Span: spanOf(st), Children: []ASTNodeOutput{buildExprNode(st.Value)}}
	default:
		panic(fmt.Sprintf("diagfmt: unhandled statement %T", st))
	}
}

func buildExprNode(e ast.Expr) ASTNodeOutput {
	switch e := e.(type) {
	case *ast.IntLit:
		return ASTNodeOutput{Type: "Int", Text: strconv.FormatInt(int64(e.Value), 10), Span: spanOf(e)}
	case *ast.BoolLit:
		return ASTNodeOutput{Type: "Bool", Text: strconv.FormatBool(e.Value), Span: spanOf(e)}
	case *ast.VarRef:
		return ASTNodeOutput{Type: "Var", Text: e.Name, Span: spanOf(e)}
	case *ast.PrefixExpr:
		return ASTNodeOutput{Type: "Prefix", Text: e.Op.String(), Span: spanOf(e), Children: []ASTNodeOutput{buildExprNode(e.X)}}
	case *ast.BinaryExpr:
		return ASTNodeOutput{
			Type:     "Binary",
			Text:     e.Op.String(),
			Span:     spanOf(e),
			Children: []ASTNodeOutput{buildExprNode(e.Left), buildExprNode(e.Right)},
		}
	case *ast.ComparisonExpr:
		n := ASTNodeOutput{Type: "Comparison", Span: spanOf(e), Children: []ASTNodeOutput{buildExprNode(e.Left)}}
		for _, link := range e.Chain {
			n.Children = append(n.Children, ASTNodeOutput{
				Type:     "Link",
				Text:     link.Op.String(),
				Span:     [2]uint32{link.OpSpan.Start, link.OpSpan.End},
				Children: []ASTNodeOutput{buildExprNode(link.Right)},
			})
		}
		return n
	default:
		panic(fmt.Sprintf("diagfmt: unhandled expression %T", e))
	}
}
