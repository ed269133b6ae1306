package imagekit

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/bloodwraith8851/gocart/internal/media"
	apperrors "github.com/bloodwraith8851/gocart/pkg/errors"
	"github.com/bloodwraith8851/gocart/pkg/httpclient"
)

// Config holds ImageKit credentials and endpoints.
type Config struct {
	// PrivateKey authenticates API calls (HTTP basic auth, empty password).
	PrivateKey string
	// URLEndpoint is the public delivery endpoint, e.g. "https://ik.imagekit.io/gocart".
	URLEndpoint string
	// UploadEndpoint is the upload API endpoint.
	UploadEndpoint string
}

// DefaultUploadEndpoint is the ImageKit upload API.
const DefaultUploadEndpoint = "https://upload.imagekit.io/api/v1/files/upload"

// Client uploads assets to ImageKit and builds derived delivery URLs. All
// calls go through the circuit-broken HTTP client so a degraded media service
// fails fast instead of piling up blocked requests.
type Client struct {
	cfg    Config
	http   *httpclient.CircuitBreakerClient
	logger *slog.Logger
}

// New creates an ImageKit client.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.UploadEndpoint == "" {
		cfg.UploadEndpoint = DefaultUploadEndpoint
	}
	base := httpclient.New(httpclient.DefaultConfig())
	cb := httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("imagekit"), logger)
	return &Client{cfg: cfg, http: cb, logger: logger}
}

// uploadResponse is the subset of ImageKit's upload API response we use.
type uploadResponse struct {
	FileID   string `json:"fileId"`
	Name     string `json:"name"`
	FilePath string `json:"filePath"`
}

// Upload sends the asset to the ImageKit upload API and returns its stored
// path. Any transport or API failure is reported as a MediaUpload error,
// never as a generic internal error.
func (c *Client) Upload(ctx context.Context, input *media.UploadInput) (*media.UploadResult, error) {
	data, err := io.ReadAll(input.Data)
	if err != nil {
		return nil, apperrors.MediaUpload(fmt.Errorf("read asset: %w", err))
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	// The upload API accepts the file as a base64 string form field.
	if err := mw.WriteField("file", base64.StdEncoding.EncodeToString(data)); err != nil {
		return nil, apperrors.MediaUpload(fmt.Errorf("write file field: %w", err))
	}
	if err := mw.WriteField("fileName", input.FileName); err != nil {
		return nil, apperrors.MediaUpload(fmt.Errorf("write fileName field: %w", err))
	}
	if input.Folder != "" {
		if err := mw.WriteField("folder", "/"+strings.Trim(input.Folder, "/")); err != nil {
			return nil, apperrors.MediaUpload(fmt.Errorf("write folder field: %w", err))
		}
	}
	if err := mw.Close(); err != nil {
		return nil, apperrors.MediaUpload(fmt.Errorf("close multipart body: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.UploadEndpoint, &body)
	if err != nil {
		return nil, apperrors.MediaUpload(fmt.Errorf("create upload request: %w", err))
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.SetBasicAuth(c.cfg.PrivateKey, "")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, apperrors.MediaUpload(fmt.Errorf("upload to imagekit: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apperrors.MediaUpload(fmt.Errorf("imagekit returned status %d: %s", resp.StatusCode, string(respBody)))
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.MediaUpload(fmt.Errorf("decode upload response: %w", err))
	}
	if parsed.FilePath == "" {
		return nil, apperrors.MediaUpload(fmt.Errorf("imagekit response missing filePath"))
	}

	c.logger.DebugContext(ctx, "asset uploaded",
		slog.String("file_id", parsed.FileID),
		slog.String("file_path", parsed.FilePath),
	)

	return &media.UploadResult{FilePath: parsed.FilePath}, nil
}

// URL builds the derived delivery URL for a stored path, with the transform
// rendered as an ImageKit path segment.
func (c *Client) URL(filePath string, t media.Transform) string {
	endpoint := strings.TrimRight(c.cfg.URLEndpoint, "/")
	path := "/" + strings.TrimLeft(filePath, "/")
	if tr := t.Path(); tr != "" {
		return endpoint + "/" + tr + path
	}
	return endpoint + path
}

// Delete removes a stored asset. Used for best-effort cleanup when a create
// operation aborts after some of its uploads succeeded. ImageKit deletes by
// file id, which we do not retain, so this issues a purge by path instead;
// failures are reported to the caller, which logs and moves on.
func (c *Client) Delete(ctx context.Context, filePath string) error {
	payload, err := json.Marshal(map[string]string{
		"url": c.URL(filePath, media.Transform{}),
	})
	if err != nil {
		return fmt.Errorf("marshal purge payload: %w", err)
	}

	purgeURL := "https://api.imagekit.io/v1/files/purge"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, purgeURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create purge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.PrivateKey, "")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("purge %s: %w", filePath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("purge %s: status %d", filePath, resp.StatusCode)
	}
	return nil
}

// validateConfig reports obviously broken configuration early.
func (c Config) Validate() error {
	if c.PrivateKey == "" {
		return fmt.Errorf("imagekit private key is required")
	}
	if c.URLEndpoint == "" {
		return fmt.Errorf("imagekit URL endpoint is required")
	}
	if _, err := url.Parse(c.URLEndpoint); err != nil {
		return fmt.Errorf("invalid imagekit URL endpoint: %w", err)
	}
	return nil
}
