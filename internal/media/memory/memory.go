package memory

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bloodwraith8851/gocart/internal/media"
)

// Uploader is an in-memory media store for tests and local development.
type Uploader struct {
	mu    sync.RWMutex
	files map[string][]byte

	// baseURL stands in for a CDN endpoint in built URLs.
	baseURL string
}

// New creates an empty in-memory uploader.
func New() *Uploader {
	return &Uploader{
		files:   make(map[string][]byte),
		baseURL: "https://media.local",
	}
}

func (u *Uploader) Upload(_ context.Context, input *media.UploadInput) (*media.UploadResult, error) {
	data, err := io.ReadAll(input.Data)
	if err != nil {
		return nil, fmt.Errorf("read asset: %w", err)
	}

	filePath := "/" + strings.Trim(input.Folder, "/") + "/" + input.FileName

	u.mu.Lock()
	u.files[filePath] = data
	u.mu.Unlock()

	return &media.UploadResult{FilePath: filePath}, nil
}

func (u *Uploader) URL(filePath string, t media.Transform) string {
	path := "/" + strings.TrimLeft(filePath, "/")
	if tr := t.Path(); tr != "" {
		return u.baseURL + "/" + tr + path
	}
	return u.baseURL + path
}

func (u *Uploader) Delete(_ context.Context, filePath string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.files[filePath]; !ok {
		return fmt.Errorf("file %s not found", filePath)
	}
	delete(u.files, filePath)
	return nil
}

// Get returns a stored asset's bytes. Test helper.
func (u *Uploader) Get(filePath string) ([]byte, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	data, ok := u.files[filePath]
	return data, ok
}

// Len returns the number of stored assets. Test helper.
func (u *Uploader) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.files)
}
