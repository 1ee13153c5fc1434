package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCSObjectName(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{
			name:     "path style",
			url:      "https://storage.googleapis.com/my-bucket/videos/123-abc.mp4",
			expected: "videos/123-abc.mp4",
		},
		{
			name:     "subdomain style",
			url:      "https://my-bucket.storage.googleapis.com/images/456-def.png",
			expected: "images/456-def.png",
		},
		{name: "bucket mismatch", url: "https://storage.googleapis.com/other-bucket/videos/1.mp4", wantErr: true},
		{name: "foreign host", url: "https://example.com/videos/1.mp4", wantErr: true},
		{name: "missing object path", url: "https://my-bucket.storage.googleapis.com/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gcsObjectName("my-bucket", tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestR2ObjectName(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{
			name:     "custom domain",
			url:      "https://files.example.com/my-bucket/videos/123.mp4",
			expected: "videos/123.mp4",
		},
		{
			name:     "r2 dev style falls back to path",
			url:      "https://pub-xyz.r2.dev/images/456.png",
			expected: "images/456.png",
		},
		{name: "no object path", url: "https://pub-xyz.r2.dev", wantErr: true},
		{name: "not a url", url: "videos/123.mp4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r2ObjectName("https://files.example.com", "my-bucket", tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestObjectNameKeepsExtensionAndFolder(t *testing.T) {
	name := objectName(ResourceVideo, "/tmp/upload-abc.MP4")
	assert.True(t, strings.HasPrefix(name, "videos/"))
	assert.True(t, strings.HasSuffix(name, ".mp4"))

	name = objectName(ResourceImage, "/tmp/no-extension")
	assert.True(t, strings.HasPrefix(name, "images/"))
	assert.True(t, strings.HasSuffix(name, ".bin"))
}

func TestRemoveTemp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scratch.bin")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

	RemoveTemp(path, "", "/does/not/exist")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "video/mp4", contentTypeFor("/tmp/a.mp4", UploadOptions{}))
	assert.Equal(t, "image/png", contentTypeFor("/tmp/a.png", UploadOptions{}))
	assert.Equal(t, "application/octet-stream", contentTypeFor("/tmp/a.unknownext", UploadOptions{}))
	assert.Equal(t, "video/webm", contentTypeFor("/tmp/a.mp4", UploadOptions{ContentType: "video/webm"}))
}
