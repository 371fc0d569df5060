package kv

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
)

const (
	lockFileName = ".lock"
	valueExt     = ".kv"
)

// File stores each key in its own file under a directory. Writes go to a
// temporary file that is renamed into place, and every operation holds an
// advisory lock so several processes can share the directory.
type File struct {
	dir  string
	lock *flock.Flock
}

// NewFile opens (creating if needed) a file store rooted at dir.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}
	return &File{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, lockFileName)),
	}, nil
}

// Dir returns the directory backing the store.
func (s *File) Dir() string {
	return s.dir
}

func (s *File) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+valueExt)
}

func (s *File) Get(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if err := s.lock.RLock(); err != nil {
		return nil, fmt.Errorf("locking store: %w", err)
	}
	defer s.lock.Unlock()

	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", key, err)
	}
	return b, nil
}

func (s *File) Set(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("locking store: %w", err)
	}
	defer s.lock.Unlock()

	path := s.path(key)
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %q: %w", key, err)
	}
	return nil
}

func (s *File) Delete(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("locking store: %w", err)
	}
	defer s.lock.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %q: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys in sorted order.
func (s *File) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing store: %w", err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, valueExt) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, valueExt))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Size returns the stored size of key in bytes.
func (s *File) Size(key string) (int64, error) {
	if err := checkKey(key); err != nil {
		return 0, err
	}
	info, err := os.Stat(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, notFound(key)
	}
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
