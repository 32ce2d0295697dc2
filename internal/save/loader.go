package save

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
)

// LoadXML parses a raw XML save into an Element tree.
//
// Precondition: r yields a complete XML document.
// Postcondition: Returns the root element, or a non-nil error when the bytes are
// not well-formed XML or contain no root element.
func LoadXML(r io.Reader) (*Element, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing save xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}
	return convert(root), nil
}

// LoadXMLBytes is LoadXML over an in-memory buffer.
func LoadXMLBytes(data []byte) (*Element, error) {
	return LoadXML(bytes.NewReader(data))
}

// LoadFile opens path and parses it with LoadXML.
//
// Precondition: path names a readable file.
// Postcondition: Returns the root element or a non-nil error.
func LoadFile(path string) (*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening save %s: %w", path, err)
	}
	defer f.Close()
	root, err := LoadXML(f)
	if err != nil {
		return nil, fmt.Errorf("loading save %s: %w", path, err)
	}
	return root, nil
}

func convert(el *etree.Element) *Element {
	out := &Element{
		Tag:   el.Tag,
		Value: strings.TrimSpace(el.Text()),
	}
	if len(el.Attr) > 0 {
		out.Attrs = make(map[string]string, len(el.Attr))
		for _, a := range el.Attr {
			key := a.Key
			if a.Space != "" {
				key = a.Space + ":" + a.Key
			}
			out.Attrs[key] = a.Value
		}
	}
	kids := el.ChildElements()
	if len(kids) > 0 {
		out.Kids = make([]*Element, 0, len(kids))
		for _, k := range kids {
			out.Kids = append(out.Kids, convert(k))
		}
	}
	return out
}
