package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// StoredFile describes an upload that has been written to the asset dir.
type StoredFile struct {
	Filename string
	Path     string
}

// ImageStore is the capability handlers use to persist an uploaded image.
type ImageStore interface {
	Save(file *multipart.FileHeader) (*StoredFile, error)
}

// DiskStore writes uploads under Dir keeping the original filename, so a
// second upload with the same name overwrites the first.
type DiskStore struct {
	Dir string
}

func (d *DiskStore) Save(file *multipart.FileHeader) (*StoredFile, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	name := filepath.Base(file.Filename)
	path := filepath.Join(d.Dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	return &StoredFile{Filename: name, Path: path}, nil
}
