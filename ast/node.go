package ast

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shamaton/msgpack/v2"
)

// Node is the generic tree produced by the parser: a kind tag plus named
// fields. Scalar fields live in Attrs, single children in Nodes and child
// sequences in Lists. Nodes are never mutated once parsing finishes.
type Node struct {
	Kind  string             `yaml:"kind"`
	Line  int                `yaml:"line"`
	Attrs map[string]string  `yaml:"attrs,omitempty"`
	Nodes map[string]*Node   `yaml:"nodes,omitempty"`
	Lists map[string][]*Node `yaml:"lists,omitempty"`
}

func NewNode(kind string, line int) *Node {
	return &Node{Kind: kind, Line: line}
}

func (n *Node) SetAttr(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
	return n
}

func (n *Node) SetChild(name string, child *Node) *Node {
	if child == nil {
		return n
	}
	if n.Nodes == nil {
		n.Nodes = make(map[string]*Node)
	}
	n.Nodes[name] = child
	return n
}

// SetList records a child sequence. A nil slice is stored as present but
// empty, which distinguishes `else {}` from a missing else clause.
func (n *Node) SetList(name string, children []*Node) *Node {
	if n.Lists == nil {
		n.Lists = make(map[string][]*Node)
	}
	if children == nil {
		children = []*Node{}
	}
	n.Lists[name] = children
	return n
}

func (n *Node) Attr(name string) string {
	return n.Attrs[name]
}

func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attrs[name]
	return ok
}

func (n *Node) Child(name string) *Node {
	return n.Nodes[name]
}

func (n *Node) List(name string) []*Node {
	return n.Lists[name]
}

func (n *Node) HasList(name string) bool {
	_, ok := n.Lists[name]
	return ok
}

// wireNode is the serialized form of a Node. Map fields become key-sorted
// parallel slices so equal trees always encode to equal bytes.
type wireNode struct {
	Kind     string
	Line     int
	AttrKeys []string
	AttrVals []string
	NodeKeys []string
	NodeVals []*wireNode
	ListKeys []string
	ListVals [][]*wireNode
}

func (n *Node) toWire() *wireNode {
	w := &wireNode{Kind: n.Kind, Line: n.Line}
	for _, k := range sortedKeys(n.Attrs) {
		w.AttrKeys = append(w.AttrKeys, k)
		w.AttrVals = append(w.AttrVals, n.Attrs[k])
	}
	for _, k := range sortedKeys(n.Nodes) {
		w.NodeKeys = append(w.NodeKeys, k)
		w.NodeVals = append(w.NodeVals, n.Nodes[k].toWire())
	}
	for _, k := range sortedKeys(n.Lists) {
		items := make([]*wireNode, 0, len(n.Lists[k]))
		for _, c := range n.Lists[k] {
			items = append(items, c.toWire())
		}
		w.ListKeys = append(w.ListKeys, k)
		w.ListVals = append(w.ListVals, items)
	}
	return w
}

func (w *wireNode) toNode() (*Node, error) {
	if len(w.AttrKeys) != len(w.AttrVals) || len(w.NodeKeys) != len(w.NodeVals) || len(w.ListKeys) != len(w.ListVals) {
		return nil, fmt.Errorf("Corrupt %s node: key and value counts differ", w.Kind)
	}
	n := NewNode(w.Kind, w.Line)
	for i, k := range w.AttrKeys {
		n.SetAttr(k, w.AttrVals[i])
	}
	for i, k := range w.NodeKeys {
		c, err := w.NodeVals[i].toNode()
		if err != nil {
			return nil, err
		}
		n.SetChild(k, c)
	}
	for i, k := range w.ListKeys {
		items := make([]*Node, 0, len(w.ListVals[i]))
		for _, wc := range w.ListVals[i] {
			c, err := wc.toNode()
			if err != nil {
				return nil, err
			}
			items = append(items, c)
		}
		n.SetList(k, items)
	}
	return n, nil
}

func (n *Node) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, n.toWire())
}

func (n *Node) Deserialize(r io.Reader) error {
	var w wireNode
	if err := msgpack.UnmarshalRead(r, &w); err != nil {
		return err
	}
	out, err := w.toNode()
	if err != nil {
		return err
	}
	*n = *out
	return nil
}

// String renders the node as an s-expression with sorted field names.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s(%s", indent, n.Kind)
	for _, k := range sortedKeys(n.Attrs) {
		fmt.Fprintf(b, " %s=%q", k, n.Attrs[k])
	}
	for _, k := range sortedKeys(n.Nodes) {
		fmt.Fprintf(b, "\n%s  :%s\n", indent, k)
		n.Nodes[k].write(b, depth+2)
	}
	for _, k := range sortedKeys(n.Lists) {
		fmt.Fprintf(b, "\n%s  :%s [", indent, k)
		for _, c := range n.Lists[k] {
			b.WriteString("\n")
			c.write(b, depth+2)
		}
		b.WriteString("]")
	}
	b.WriteString(")")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
