package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/actlog/internal/domain"
)

// Style selects how leaves are written.
type Style int

const (
	// StyleData writes leaf accumulators as integers.
	StyleData Style = iota
	// StyleSchema writes every leaf as null.
	StyleSchema
)

// Decode reads a JSON object into a tree, keeping key order. Objects become
// branches; integers and null become leaves (null as zero). Any other value
// fails with ErrTypeMismatch.
func Decode(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading tree: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("tree root must be an object, got %v: %w", tok, domain.ErrTypeMismatch)
	}
	root, err := decodeBranch(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after tree: %w", domain.ErrTypeMismatch)
	}
	return root, nil
}

// decodeBranch consumes object members up to and including the closing brace.
func decodeBranch(dec *json.Decoder) (*Node, error) {
	branch := NewBranch()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading key: %w", err)
		}
		key, _ := keyTok.(string)
		if err := ValidateName(key); err != nil {
			return nil, fmt.Errorf("at key %q: %w: %w", key, domain.ErrTypeMismatch, err)
		}

		child, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("at key %q: %w", key, err)
		}
		if err := branch.Insert(key, child); err != nil {
			return nil, fmt.Errorf("at key %q: %w", key, err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("closing object: %w", err)
	}
	return branch, nil
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading value: %w", err)
	}
	switch v := tok.(type) {
	case nil:
		return NewLeaf(0), nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return nil, fmt.Errorf("%s is not an integer: %w", v, domain.ErrTypeMismatch)
		}
		return NewLeaf(n), nil
	case json.Delim:
		if v == '{' {
			return decodeBranch(dec)
		}
		return nil, fmt.Errorf("unexpected %v: %w", v, domain.ErrTypeMismatch)
	default:
		return nil, fmt.Errorf("%T is neither an object nor an integer: %w", v, domain.ErrTypeMismatch)
	}
}

// Encode writes root as indented JSON in insertion order.
func Encode(w io.Writer, root *Node, style Style) error {
	if !root.IsBranch() {
		return fmt.Errorf("tree root is a %s: %w", root.Kind(), domain.ErrTypeMismatch)
	}
	var raw bytes.Buffer
	if err := encodeNode(&raw, root, style); err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("indenting tree: %w", err)
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

// Marshal is Encode into a byte slice.
func Marshal(root *Node, style Style) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, root, style); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal is Decode from a byte slice.
func Unmarshal(data []byte) (*Node, error) {
	return Decode(bytes.NewReader(data))
}

func encodeNode(buf *bytes.Buffer, n *Node, style Style) error {
	switch n.Kind() {
	case KindLeaf:
		if style == StyleSchema {
			buf.WriteString("null")
		} else {
			buf.WriteString(strconv.Itoa(n.value))
		}
		return nil
	case KindBranch:
		buf.WriteByte('{')
		for i, name := range n.names {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return fmt.Errorf("encoding key %q: %w", name, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := encodeNode(buf, n.children[name], style); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("encoding %s node: %w", n.Kind(), domain.ErrTypeMismatch)
	}
}
