// Package kv is the persistence port used by the window manager: a small
// string-keyed byte store with an in-memory and a file-backed implementation.
package kv

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// Store persists opaque values under string keys.
//
// Get returns an error matching errdefs.IsNotFound when the key is absent.
// Delete of a missing key is not an error.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// IsNotFound reports whether err means the key does not exist.
func IsNotFound(err error) bool {
	return errdefs.IsNotFound(err)
}

func notFound(key string) error {
	return fmt.Errorf("key %q: %w", key, errdefs.ErrNotFound)
}

func checkKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty key: %w", errdefs.ErrInvalidArgument)
	}
	return nil
}
