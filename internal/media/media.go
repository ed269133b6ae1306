package media

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Folder names used by this service when uploading assets.
const (
	FolderLogos    = "logos"
	FolderProducts = "products"
)

// Transform describes the derived rendition requested for an uploaded asset.
// Zero-valued fields are omitted from the rendered transformation.
type Transform struct {
	// Quality is "auto" or a numeric string ("80").
	Quality string
	// Format is the target encoding, e.g. "webp".
	Format string
	// Width in pixels; 0 means unconstrained.
	Width int
	// Height in pixels; 0 means unconstrained.
	Height int
}

// Path renders the transform in ImageKit path form, e.g. "tr:q-auto,f-webp,h-512".
// An empty transform renders to "".
func (t Transform) Path() string {
	var parts []string
	if t.Quality != "" {
		parts = append(parts, "q-"+t.Quality)
	}
	if t.Format != "" {
		parts = append(parts, "f-"+t.Format)
	}
	if t.Width > 0 {
		parts = append(parts, fmt.Sprintf("w-%d", t.Width))
	}
	if t.Height > 0 {
		parts = append(parts, fmt.Sprintf("h-%d", t.Height))
	}
	if len(parts) == 0 {
		return ""
	}
	return "tr:" + strings.Join(parts, ",")
}

// LogoTransform is the rendition applied to store logos.
func LogoTransform() Transform {
	return Transform{Quality: "auto", Format: "webp", Height: 512}
}

// ProductTransform is the rendition applied to product images.
func ProductTransform() Transform {
	return Transform{Quality: "auto", Format: "webp", Width: 1024}
}

// UploadInput holds the parameters for uploading a raw asset.
type UploadInput struct {
	Data     io.Reader
	FileName string
	Folder   string
}

// UploadResult holds the stored path of a successful upload.
type UploadResult struct {
	FilePath string
}

// Uploader is the external media capability: store raw bytes, derive
// transformed URLs, and delete stored assets. Upload failures are surfaced
// as MediaUpload errors so callers can abort without persisting a partial
// store or product.
type Uploader interface {
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)
	URL(filePath string, t Transform) string
	Delete(ctx context.Context, filePath string) error
}
