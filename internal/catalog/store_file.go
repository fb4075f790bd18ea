package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Products []Product `yaml:"products"`
}

// FileStore reads products from a YAML or JSON document of the form
// {"products": [{"title", "price", "image"}, ...]}. A bare list is accepted too.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Ping(ctx context.Context) error {
	_, err := os.Stat(s.path)
	return err
}

func (s *FileStore) List(ctx context.Context) ([]Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	items, err := decodeProducts(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", s.path, err)
	}
	return items, nil
}

func decodeProducts(data []byte) ([]Product, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return []Product{}, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var items []Product
		if err := root.Decode(&items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var f catalogFile
	if err := root.Decode(&f); err != nil {
		return nil, err
	}
	if f.Products == nil {
		return []Product{}, nil
	}
	return f.Products, nil
}
