package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores blobs on the filesystem, serving them under URLPrefix.
// Used in development so the admin flows work without S3 credentials.
type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (l *Local) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	_ = ctx
	_ = contentType

	dstPath := filepath.Join(l.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return "", err
	}

	f, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}

	return l.URLPrefix + "/" + key, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	_ = ctx
	// Refuse keys that would escape BaseDir.
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("chave inválida: %s", key)
	}
	return os.Remove(filepath.Join(l.BaseDir, clean))
}

func (l *Local) KeyFromURL(rawURL string) (string, bool) {
	if !strings.HasPrefix(rawURL, l.URLPrefix+"/") {
		return "", false
	}
	key := strings.TrimPrefix(rawURL, l.URLPrefix+"/")
	if key == "" {
		return "", false
	}
	return key, true
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
