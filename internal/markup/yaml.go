// Package markup turns outline files into generic outline nodes.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dgallion1/docoutline/internal/outline"
	"gopkg.in/yaml.v3"
)

// maxNesting guards alias expansion against pathological documents.
const maxNesting = 512

// Alias expansion may produce at most minNodes nodes, or nodesPerByte nodes
// per input byte on larger documents.
const (
	minNodes     = 10_000
	nodesPerByte = 10
)

// ErrExcessiveAliasing is returned for documents whose aliases expand into
// far more nodes than the source text holds.
var ErrExcessiveAliasing = errors.New("document contains excessive aliasing")

// Parse decodes the first YAML document in data. Later documents are ignored.
// Empty input yields a Null node.
func Parse(data []byte) (outline.Node, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return outline.Null{}, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	c := &converter{budget: max(minNodes, nodesPerByte*len(data))}
	root := c.convert(&doc, 0)
	if c.budget < 0 {
		return nil, fmt.Errorf("parse yaml: %w", ErrExcessiveAliasing)
	}
	return root, nil
}

// converter maps yaml.v3 nodes onto outline nodes, counting every node it
// produces against budget.
type converter struct {
	budget int
}

func (c *converter) convert(n *yaml.Node, depth int) outline.Node {
	if n == nil {
		return outline.Null{}
	}
	if depth > maxNesting {
		return outline.Invalid{Reason: "nesting too deep"}
	}
	c.budget--
	if c.budget < 0 {
		return outline.Null{}
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return outline.Null{}
		}
		return c.convert(n.Content[0], depth+1)

	case yaml.SequenceNode:
		arr := make(outline.Array, len(n.Content))
		for i, item := range n.Content {
			if c.budget < 0 {
				break
			}
			arr[i] = c.convert(item, depth+1)
		}
		return arr

	case yaml.MappingNode:
		m := make(outline.Mapping, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content) && c.budget >= 0; i += 2 {
			m = append(m, outline.Pair{
				Key:   c.convert(n.Content[i], depth+1),
				Value: c.convert(n.Content[i+1], depth+1),
			})
		}
		return m

	case yaml.AliasNode:
		return c.convert(n.Alias, depth+1)

	case yaml.ScalarNode:
		return scalar(n)
	}
	return outline.Invalid{Reason: fmt.Sprintf("unknown yaml node kind %d", n.Kind)}
}

func scalar(n *yaml.Node) outline.Node {
	switch tag := n.ShortTag(); tag {
	case "!!str", "!!timestamp", "!!binary":
		return outline.String(n.Value)
	case "!!null":
		return outline.Null{}
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return outline.Invalid{Reason: err.Error()}
		}
		return outline.Boolean(b)
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return outline.Invalid{Reason: err.Error()}
		}
		return outline.Integer(i)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return outline.Invalid{Reason: err.Error()}
		}
		return outline.Real(f)
	default:
		return outline.Invalid{Reason: fmt.Sprintf("unsupported tag %s", tag)}
	}
}
