package imagekit

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodwraith8851/gocart/internal/media"
	apperrors "github.com/bloodwraith8851/gocart/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testClient(uploadEndpoint string) *Client {
	return New(Config{
		PrivateKey:     "private_key",
		URLEndpoint:    "https://ik.imagekit.io/gocart",
		UploadEndpoint: uploadEndpoint,
	}, testLogger())
}

func TestUpload_Success(t *testing.T) {
	var gotUser, gotPass string
	var gotFile, gotFileName, gotFolder string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFile = r.FormValue("file")
		gotFileName = r.FormValue("fileName")
		gotFolder = r.FormValue("folder")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"fileId":   "file-1",
			"name":     "logo.png",
			"filePath": "/logos/logo.png",
		})
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	result, err := client.Upload(context.Background(), &media.UploadInput{
		Data:     strings.NewReader("png-bytes"),
		FileName: "logo.png",
		Folder:   media.FolderLogos,
	})

	require.NoError(t, err)
	assert.Equal(t, "/logos/logo.png", result.FilePath)
	assert.Equal(t, "private_key", gotUser)
	assert.Equal(t, "", gotPass)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("png-bytes")), gotFile)
	assert.Equal(t, "logo.png", gotFileName)
	assert.Equal(t, "/logos", gotFolder)
}

func TestUpload_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.Upload(context.Background(), &media.UploadInput{
		Data:     strings.NewReader("png-bytes"),
		FileName: "logo.png",
		Folder:   media.FolderLogos,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrMediaUpload))
}

func TestUpload_MissingFilePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.Upload(context.Background(), &media.UploadInput{
		Data:     strings.NewReader("png-bytes"),
		FileName: "logo.png",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrMediaUpload))
}

func TestURL(t *testing.T) {
	client := testClient(DefaultUploadEndpoint)

	tests := []struct {
		name      string
		filePath  string
		transform media.Transform
		want      string
	}{
		{
			"logo rendition",
			"/logos/logo.png",
			media.LogoTransform(),
			"https://ik.imagekit.io/gocart/tr:q-auto,f-webp,h-512/logos/logo.png",
		},
		{
			"product rendition",
			"products/front.jpg",
			media.ProductTransform(),
			"https://ik.imagekit.io/gocart/tr:q-auto,f-webp,w-1024/products/front.jpg",
		},
		{
			"no transform",
			"/logos/logo.png",
			media.Transform{},
			"https://ik.imagekit.io/gocart/logos/logo.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.URL(tt.filePath, tt.transform))
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := Config{PrivateKey: "key", URLEndpoint: "https://ik.imagekit.io/gocart"}
	assert.NoError(t, valid.Validate())

	noKey := Config{URLEndpoint: "https://ik.imagekit.io/gocart"}
	assert.Error(t, noKey.Validate())

	noEndpoint := Config{PrivateKey: "key"}
	assert.Error(t, noEndpoint.Validate())
}
