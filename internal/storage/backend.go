package storage

import "io"

// Backend is the interface that wraps the blob operations of the dev proxy.
// Blobs are keyed by container id and object name.
type Backend interface {
	// Name returns the name of the backend implementation.
	Name() string

	// Reader returns a ReadCloser of the blob.
	Reader(container, object string) (io.ReadCloser, error)
	// Writer returns a WriteCloser of the blob.
	Writer(container, object string) (io.WriteCloser, error)
	// Exist returns true when the blob is present.
	Exist(container, object string) bool

	// Remove deletes the given blob.
	Remove(container, object string) error
	// RemoveAll deletes a whole container worth of blobs.
	RemoveAll(container string) error
	// Cleanup removes the empty directories left behind by Remove.
	Cleanup() error
}
