package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/metaphox/golox/ast"
)

func newASTCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "ast <script>",
		Short: "Print the syntax tree of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "sexpr" && format != "yaml" {
				return fmt.Errorf("unknown format %q, want sexpr or yaml", format)
			}
			src, err := readScript(args[0])
			if err != nil {
				return err
			}
			stmts, err := a.newSession(cmd).Parse(src)
			if err != nil {
				return err
			}
			if format == "yaml" {
				return writeYAML(cmd.OutOrStdout(), stmts)
			}
			for _, stmt := range stmts {
				fmt.Fprintln(cmd.OutOrStdout(), ast.Print(stmt))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "sexpr", "output format: sexpr or yaml")
	return cmd
}

// ── YAML rendering ────────────────────────────────────────────────────────────

func writeYAML(w io.Writer, stmts []ast.Statement) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, stmt := range stmts {
		doc.Content = append(doc.Content, yamlNode(stmt))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// yamlNode renders n as a single-key mapping named after the node kind.
func yamlNode(n ast.Node) *yaml.Node {
	switch n := n.(type) {
	case *ast.Literal:
		return mapping("literal", literal(n.Value))
	case *ast.Unary:
		return mapping("unary", mapping(
			"operator", scalar(n.Operator.Lexeme),
			"right", yamlNode(n.Right)))
	case *ast.Binary:
		return mapping("binary", mapping(
			"left", yamlNode(n.Left),
			"operator", scalar(n.Operator.Lexeme),
			"right", yamlNode(n.Right)))
	case *ast.Grouping:
		return mapping("grouping", yamlNode(n.Expression))
	case *ast.Variable:
		return mapping("variable", scalar(n.Name.Lexeme))
	case *ast.Assign:
		return mapping("assign", mapping(
			"name", scalar(n.Name.Lexeme),
			"value", yamlNode(n.Value)))
	case *ast.ExpressionStmt:
		return mapping("expression", yamlNode(n.Expression))
	case *ast.PrintStmt:
		return mapping("print", yamlNode(n.Expression))
	case *ast.VarStmt:
		fields := []any{"name", scalar(n.Name.Lexeme)}
		if n.Initializer != nil {
			fields = append(fields, "initializer", yamlNode(n.Initializer))
		}
		return mapping("var", mapping(fields...))
	case *ast.BlockStmt:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, s := range n.Statements {
			seq.Content = append(seq.Content, yamlNode(s))
		}
		return mapping("block", seq)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}
}

// mapping builds a mapping node from alternating string keys and nodes.
func mapping(kv ...any) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(kv); i += 2 {
		m.Content = append(m.Content, scalar(kv[i].(string)), kv[i+1].(*yaml.Node))
	}
	return m
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func literal(v any) *yaml.Node {
	switch v := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: ast.FormatValue(v)}
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: ast.FormatNumber(v)}
	}
	return scalar(ast.FormatValue(v))
}
