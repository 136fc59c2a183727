package storage

import "io"

// Storage persists uploaded media and generated thumbnails. Save returns
// the public URL (or server-relative path) the catalog should record.
type Storage interface {
	Save(key string, r io.Reader, contentType string) (string, error)
	Delete(key string) error
}
