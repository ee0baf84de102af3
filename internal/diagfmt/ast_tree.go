package diagfmt

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"storyscript/internal/ast"
	"storyscript/internal/source"
)

// FormatASTTree печатает AST в виде дерева:
//
//	Program (span: 1:1-3:2)
//	├─ Decl:Room name="Hall" (span: 1:1-3:2)
//	│  └─ Property name="title" (span: 2:3-2:15)
//	└─ Stmt:Say (span: 4:1-4:9)
func FormatASTTree(w io.Writer, builder *ast.Builder, prog ast.ProgramID, fs *source.FileSet) error {
	root, err := BuildASTOutput(builder, prog, fs)
	if err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString(nodeLabel(root))
	sb.WriteByte('\n')
	writeTreeChildren(&sb, root.Children, "")
	_, err = io.WriteString(w, sb.String())
	return err
}

func writeTreeChildren(sb *strings.Builder, children []ASTNodeOutput, prefix string) {
	for i, child := range children {
		marker, childPrefix := "├─ ", prefix+"│  "
		if i == len(children)-1 {
			marker, childPrefix = "└─ ", prefix+"   "
		}
		sb.WriteString(prefix)
		sb.WriteString(marker)
		sb.WriteString(nodeLabel(child))
		sb.WriteByte('\n')
		writeTreeChildren(sb, child.Children, childPrefix)
	}
}

func nodeLabel(n ASTNodeOutput) string {
	var sb strings.Builder
	sb.WriteString(n.Type)
	if n.Kind != "" {
		sb.WriteByte(':')
		sb.WriteString(n.Kind)
	}
	for _, key := range slices.Sorted(maps.Keys(n.Fields)) {
		sb.WriteByte(' ')
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(formatFieldValue(n.Fields[key]))
	}
	fmt.Fprintf(&sb, " (span: %s)", n.Span)
	return sb.String()
}

func formatFieldValue(v any) string {
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case []string:
		quoted := make([]string, len(val))
		for i, s := range val {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
