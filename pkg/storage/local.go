package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalUploader writes images below Root; they are served from URLPrefix.
type LocalUploader struct {
	Root      string
	URLPrefix string
}

func NewLocalUploader(root, urlPrefix string) *LocalUploader {
	return &LocalUploader{
		Root:      root,
		URLPrefix: strings.TrimRight(urlPrefix, "/"),
	}
}

func (u *LocalUploader) UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	folder = path.Clean("/" + filepath.ToSlash(folder))
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	if filepath.Ext(name) == "" {
		name += ".jpg"
	}

	dir := filepath.Join(u.Root, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
		return "", err
	}

	return u.URLPrefix + path.Join(folder, name), nil
}
