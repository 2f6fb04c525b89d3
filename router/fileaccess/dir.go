package fileaccess

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrBadName is returned for names that would escape the base directory or address it.
var ErrBadName = errors.New("file name must be a plain name inside the directory")

const filePerm = 0o644

// Dir exposes regular files located directly in the base directory. Nested directories
// aren't traversed.
type Dir struct {
	root string
}

func New(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the base directory.
func (d *Dir) Root() string {
	return d.root
}

// List returns names of regular files in the base directory.
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

func (d *Dir) Open(name string) (io.ReadCloser, error) {
	path, err := d.path(name)
	if err != nil {
		return nil, err
	}

	return os.Open(path)
}

func (d *Dir) Create(name string) (io.WriteCloser, error) {
	path, err := d.path(name)
	if err != nil {
		return nil, err
	}

	return os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm)
}

func (d *Dir) path(name string) (string, error) {
	switch {
	case name == "", name == ".", name == "..",
		strings.ContainsRune(name, '/'), strings.ContainsRune(name, filepath.Separator):
		return "", ErrBadName
	}

	return filepath.Join(d.root, name), nil
}
