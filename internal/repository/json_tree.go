package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexanderramin/actlog/internal/domain"
	"github.com/alexanderramin/actlog/internal/tree"
)

// JSONTreeRepo stores a tree as a JSON file. Schema files write null leaves,
// data files write integers.
type JSONTreeRepo struct {
	path  string
	style tree.Style
}

func NewJSONSchemaRepo(path string) *JSONTreeRepo {
	return &JSONTreeRepo{path: path, style: tree.StyleSchema}
}

func NewJSONDataRepo(path string) *JSONTreeRepo {
	return &JSONTreeRepo{path: path, style: tree.StyleData}
}

func (r *JSONTreeRepo) Load(ctx context.Context) (*tree.Node, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", r.path, domain.ErrFileAbsent)
		}
		return nil, fmt.Errorf("reading %s: %v: %w", r.path, err, domain.ErrIO)
	}
	root, err := tree.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", r.path, err)
	}
	return root, nil
}

// Save writes the tree atomically through a temp file in the same directory.
func (r *JSONTreeRepo) Save(ctx context.Context, root *tree.Node) error {
	out, err := tree.Marshal(root, r.style)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", r.path, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %v: %w", dir, err, domain.ErrIO)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %v: %w", r.path, err, domain.ErrIO)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %v: %w", r.path, err, domain.ErrIO)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %v: %w", r.path, err, domain.ErrIO)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replacing %s: %v: %w", r.path, err, domain.ErrIO)
	}
	return nil
}
