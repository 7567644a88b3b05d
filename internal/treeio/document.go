package treeio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"blanklines/internal/pytree"
)

// ErrMalformed marks documents that decode but do not describe a tree.
var ErrMalformed = errors.New("malformed tree document")

const maxDepth = 10000

// Format is the encoding of a tree document.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatMsgpack
)

const (
	ExtJSON    = ".tree.json"
	ExtMsgpack = ".tree.msgpack"
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	}
	return "unknown"
}

// FormatForPath picks the document format from the file name.
func FormatForPath(path string) (Format, bool) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ExtJSON):
		return FormatJSON, true
	case strings.HasSuffix(lower, ExtMsgpack):
		return FormatMsgpack, true
	}
	return 0, false
}

// SourceFor derives the conventional source name for a document path
// ("a.py.tree.json" -> "a.py").
func SourceFor(docPath string) string {
	lower := strings.ToLower(docPath)
	for _, ext := range []string{ExtJSON, ExtMsgpack} {
		if strings.HasSuffix(lower, ext) {
			return docPath[:len(docPath)-len(ext)]
		}
	}
	return docPath
}

type wireNode struct {
	Sym      string      `json:"sym,omitempty" msgpack:"sym,omitempty"`
	Tok      string      `json:"tok,omitempty" msgpack:"tok,omitempty"`
	Value    string      `json:"value,omitempty" msgpack:"value,omitempty"`
	Line     int         `json:"line,omitempty" msgpack:"line,omitempty"`
	Col      int         `json:"col,omitempty" msgpack:"col,omitempty"`
	Children []*wireNode `json:"children,omitempty" msgpack:"children,omitempty"`
}

type wireDocument struct {
	Path string    `json:"path" msgpack:"path"`
	Root *wireNode `json:"root" msgpack:"root"`
}

// Document is a decoded tree together with its source path.
type Document struct {
	// Path is the source file, relative to the document's directory
	// unless absolute.
	Path string
	Tree *pytree.Tree
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*Document, error) {
	var wire wireDocument
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&wire); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported document format %d", format)
	}
	if wire.Root == nil {
		return nil, fmt.Errorf("%w: missing root", ErrMalformed)
	}
	b := pytree.NewBuilder(64)
	root, err := build(b, wire.Root, "root", 0)
	if err != nil {
		return nil, err
	}
	return &Document{Path: wire.Path, Tree: b.Finish(root)}, nil
}

// ReadFile loads a document, choosing the format from its extension.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return DecodeFile(path, data)
}

// DecodeFile decodes data read from path. A document without a path
// names the source after the document ("a.py.tree.json" -> "a.py").
func DecodeFile(path string, data []byte) (*Document, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, fmt.Errorf("%s: not a tree document (want %s or %s)", path, ExtJSON, ExtMsgpack)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Path == "" {
		doc.Path = filepath.Base(SourceFor(path))
	}
	return doc, nil
}

func build(b *pytree.Builder, n *wireNode, where string, depth int) (pytree.NodeID, error) {
	if n == nil {
		return pytree.NoNode, fmt.Errorf("%w: %s is null", ErrMalformed, where)
	}
	if depth > maxDepth {
		return pytree.NoNode, fmt.Errorf("%w: %s nests deeper than %d", ErrMalformed, where, maxDepth)
	}
	switch {
	case n.Sym != "" && n.Tok != "":
		return pytree.NoNode, fmt.Errorf("%w: %s has both sym %q and tok %q", ErrMalformed, where, n.Sym, n.Tok)
	case n.Tok != "":
		if len(n.Children) > 0 {
			return pytree.NoNode, fmt.Errorf("%w: %s token %s has children", ErrMalformed, where, n.Tok)
		}
		return b.Leaf(n.Tok, n.Value, n.Line, n.Col), nil
	case n.Sym != "":
		children := make([]pytree.NodeID, 0, len(n.Children))
		for i, c := range n.Children {
			id, err := build(b, c, fmt.Sprintf("%s.children[%d]", where, i), depth+1)
			if err != nil {
				return pytree.NoNode, err
			}
			children = append(children, id)
		}
		return b.Node(n.Sym, children...), nil
	}
	return pytree.NoNode, fmt.Errorf("%w: %s has neither sym nor tok", ErrMalformed, where)
}

// Encode writes doc in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	if doc == nil || doc.Tree == nil {
		return fmt.Errorf("%w: nothing to encode", ErrMalformed)
	}
	wire := wireDocument{Path: doc.Path, Root: toWire(doc.Tree, doc.Tree.Root())}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(wire)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(wire)
	}
	return fmt.Errorf("unsupported document format %d", format)
}

func toWire(t *pytree.Tree, id pytree.NodeID) *wireNode {
	if t.Kind(id).IsLeaf() {
		return &wireNode{Tok: t.Symbol(id), Value: t.Value(id), Line: t.Line(id), Col: t.Column(id)}
	}
	n := &wireNode{Sym: t.Symbol(id)}
	for _, child := range t.Children(id) {
		n.Children = append(n.Children, toWire(t, child))
	}
	return n
}
