package source

import (
	"context"
	"os"
	"path/filepath"
)

type fileSource struct {
	root string
}

// NewFileSource serves reports from a local directory, typically the
// pipeline's output folder.
func NewFileSource(root string) Source {
	return &fileSource{root: root}
}

func (s *fileSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(filepath.Clean("/"+path))))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	data, err := readAll(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return data, nil
}
