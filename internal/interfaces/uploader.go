package interfaces

import "context"

// Uploader stores an image and returns the path or URL clients load it from.
type Uploader interface {
	UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error)
}
