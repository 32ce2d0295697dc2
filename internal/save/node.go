// Package save exposes a parsed save game to the checkup evaluators.
//
// The document itself is reached only through the Node interface; the XML
// loader in this package is one producer of Nodes and tests build trees by
// hand. Snapshot layers typed, default-tolerant getters over a Node.
package save

// Node is one element of a structured save document.
//
// Child must return an untyped nil when no child matches, so callers can
// compare against nil.
type Node interface {
	// Name returns the element's local tag name.
	Name() string
	// Text returns the element's trimmed character data.
	Text() string
	// Attr returns the attribute value for name ("" when absent). Namespaced
	// attributes are addressed as "prefix:local", e.g. "xsi:type".
	Attr(name string) string
	// Child returns the first child element named name, or nil.
	Child(name string) Node
	// Children returns every child element named name.
	Children(name string) []Node
	// Elements returns every child element in document order.
	Elements() []Node
}

// Element is the in-memory Node implementation.
type Element struct {
	Tag   string
	Value string
	Attrs map[string]string
	Kids  []*Element
}

var _ Node = (*Element)(nil)

// E builds an element with the given children.
func E(tag string, kids ...*Element) *Element {
	return &Element{Tag: tag, Kids: kids}
}

// T builds a leaf element holding text.
func T(tag, text string) *Element {
	return &Element{Tag: tag, Value: text}
}

// WithAttr sets an attribute and returns e for chaining.
func (e *Element) WithAttr(name, value string) *Element {
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	e.Attrs[name] = value
	return e
}

// Append adds children and returns e for chaining.
func (e *Element) Append(kids ...*Element) *Element {
	e.Kids = append(e.Kids, kids...)
	return e
}

// Name implements Node.
func (e *Element) Name() string {
	if e == nil {
		return ""
	}
	return e.Tag
}

// Text implements Node.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return e.Value
}

// Attr implements Node.
func (e *Element) Attr(name string) string {
	if e == nil {
		return ""
	}
	return e.Attrs[name]
}

// Child implements Node.
func (e *Element) Child(name string) Node {
	if e == nil {
		return nil
	}
	for _, k := range e.Kids {
		if k.Tag == name {
			return k
		}
	}
	return nil
}

// Children implements Node.
func (e *Element) Children(name string) []Node {
	if e == nil {
		return nil
	}
	var out []Node
	for _, k := range e.Kids {
		if k.Tag == name {
			out = append(out, k)
		}
	}
	return out
}

// Elements implements Node.
func (e *Element) Elements() []Node {
	if e == nil {
		return nil
	}
	out := make([]Node, len(e.Kids))
	for i, k := range e.Kids {
		out[i] = k
	}
	return out
}

// at walks a child path from n, returning nil as soon as a step is missing.
func at(n Node, path ...string) Node {
	for _, p := range path {
		if n == nil {
			return nil
		}
		n = n.Child(p)
	}
	return n
}

// children is Children tolerant of a nil parent.
func children(n Node, name string) []Node {
	if n == nil {
		return nil
	}
	return n.Children(name)
}

// text is Text tolerant of a nil node.
func text(n Node) string {
	if n == nil {
		return ""
	}
	return n.Text()
}
