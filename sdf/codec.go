package sdf

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// ParseRoot decodes an <sdf> document. Unknown elements are skipped, since
// SDF grows vocabulary faster than any consumer, but tuple elements that are
// present must parse exactly (arity and finiteness).
func ParseRoot(data []byte) (*Root, error) {
	var root Root
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return nil, fmt.Errorf("parsing sdf: %w", err)
	}
	if root.Version == "" {
		return nil, fmt.Errorf("parsing sdf: missing version attribute on <sdf>")
	}
	return &root, nil
}

// LoadRoot reads and parses an .sdf or .world file.
func LoadRoot(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	root, err := ParseRoot(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// Encode renders the document as indented XML with the standard header.
// Output is deterministic: field order is fixed and floats use shortest
// round-trip formatting.
func (r *Root) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encoding sdf: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding sdf: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteRoot encodes the document to w.
func WriteRoot(w io.Writer, r *Root) error {
	data, err := r.Encode()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
