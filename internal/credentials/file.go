// ABOUTME: YAML file credential backend.
// ABOUTME: Stores tokens under a top-level tokens key and replaces the file atomically with 0600 permissions.
package credentials

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/blogpub/internal/logutil"
	"github.com/2389-research/blogpub/internal/models"
)

// FileStore keeps credentials in a YAML file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store at path. The file is created on first save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("credentials path is required")
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the credential map.
func (s *FileStore) Load(ctx context.Context) models.CredentialMap {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logutil.Warnf("failed to read credentials file %s: %v", s.path, err)
		}
		return models.CredentialMap{}
	}

	var doc configDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		logutil.Warnf("ignoring corrupt credentials file %s: %v", s.path, err)
		return models.CredentialMap{}
	}
	if doc.Tokens == nil {
		return models.CredentialMap{}
	}
	return doc.Tokens
}

// Save writes the whole map back to disk.
func (s *FileStore) Save(ctx context.Context, creds models.CredentialMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(creds)
}

// Update runs fn on the current map and writes it back while holding the store lock.
func (s *FileStore) Update(ctx context.Context, fn func(creds models.CredentialMap)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := s.Load(ctx).Clone()
	fn(creds)
	return s.write(creds)
}

func (s *FileStore) write(creds models.CredentialMap) error {
	doc := configDocument{Tokens: creds.Clone()}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	return atomicWrite(s.path, data)
}

// Close releases any resources held by the store.
func (s *FileStore) Close() error {
	return nil
}

// atomicWrite writes data to a temp file in the target directory and renames it into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
