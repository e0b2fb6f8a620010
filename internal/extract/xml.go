package extract

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"
)

// xmlNode is a generic element tree node. Schema-less on purpose: electronic
// invoices arrive in many dialects and the downstream model tolerates loosely
// structured text.
type xmlNode struct {
	Name     string
	Attrs    []xml.Attr
	Text     string
	Children []*xmlNode
}

// parseXMLTree decodes the file into a generic element tree. A parse failure
// yields a nil tree and the error; the caller logs and carries on with an
// empty rendering.
func parseXMLTree(path string) (*xmlNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	root := &xmlNode{}
	stack := []*xmlNode{root}

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &xmlNode{Name: t.Name.Local, Attrs: t.Attr}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if text := strings.TrimSpace(string(t)); text != "" {
				node := stack[len(stack)-1]
				if node.Text != "" {
					node.Text += " "
				}
				node.Text += text
			}
		}
	}

	if len(root.Children) == 1 {
		return root.Children[0], nil
	}
	return root, nil
}

// renderXMLTree produces a deterministic indented text rendering of the tree,
// one "name: text" line per element with attributes inlined.
func renderXMLTree(node *xmlNode) string {
	if node == nil {
		return ""
	}
	var sb strings.Builder
	renderNode(&sb, node, 0)
	return strings.TrimSpace(sb.String())
}

func renderNode(sb *strings.Builder, node *xmlNode, depth int) {
	if node.Name != "" {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(node.Name)
		for _, attr := range node.Attrs {
			sb.WriteString(" ")
			sb.WriteString(attr.Name.Local)
			sb.WriteString("=")
			sb.WriteString(attr.Value)
		}
		if node.Text != "" {
			sb.WriteString(": ")
			sb.WriteString(node.Text)
		}
		sb.WriteByte('\n')
		depth++
	}
	for _, child := range node.Children {
		renderNode(sb, child, depth)
	}
}
