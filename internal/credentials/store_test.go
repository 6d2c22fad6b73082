// ABOUTME: Tests for the credential stores and token helpers across both backends.
// ABOUTME: Covers round trips, key preservation, idempotence, corrupt storage, and backend selection.
package credentials

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/blogpub/internal/config"
	"github.com/2389-research/blogpub/internal/logutil"
	"github.com/2389-research/blogpub/internal/models"
)

type backend struct {
	name string
	open func(t *testing.T) Store
}

func backends() []backend {
	return []backend{
		{"file", func(t *testing.T) Store {
			s, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "credentials.yaml"))
			require.NoError(t, err)
			return s
		}},
		{"sqlite", func(t *testing.T) Store {
			s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "nested", "credentials.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		}},
	}
}

func TestMain(m *testing.M) {
	logutil.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestLoadEmptyStore(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			creds := store.Load(context.Background())
			require.NotNil(t, creds)
			assert.Empty(t, creds)
		})
	}
}

func TestSetPlatformTokenRoundTrip(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			store := b.open(t)

			require.NoError(t, SetPlatformToken(ctx, store, "devto", "X"))
			assert.Equal(t, models.CredentialMap{"devto": "X"}, store.Load(ctx))

			require.NoError(t, SetPlatformToken(ctx, store, "hashnode", "Y"))
			assert.Equal(t, models.CredentialMap{"devto": "X", "hashnode": "Y"}, store.Load(ctx))
		})
	}
}

func TestSetPlatformTokenIdempotent(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			store := b.open(t)

			require.NoError(t, SetPlatformToken(ctx, store, "devto", "X"))
			once := store.Load(ctx)

			require.NoError(t, SetPlatformToken(ctx, store, "devto", "X"))
			assert.Equal(t, once, store.Load(ctx))
		})
	}
}

func TestSetPlatformTokenOverwritesSameKey(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			store := b.open(t)

			require.NoError(t, SetPlatformToken(ctx, store, "devto", "old"))
			require.NoError(t, SetPlatformToken(ctx, store, "hashnode", "keep"))
			require.NoError(t, SetPlatformToken(ctx, store, "devto", "new"))

			assert.Equal(t, models.CredentialMap{"devto": "new", "hashnode": "keep"}, store.Load(ctx))
		})
	}
}

func TestConcurrentTokenUpdatesKeepEveryKey(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			store := b.open(t)
			require.NoError(t, SetPlatformToken(ctx, store, "keep", "me"))
			require.NoError(t, SetPlatformToken(ctx, store, "drop", "me"))

			const writers = 20
			var wg sync.WaitGroup
			errs := make(chan error, writers+1)
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					errs <- SetPlatformToken(ctx, store, fmt.Sprintf("p%d", i), "tok")
				}(i)
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := RemovePlatformToken(ctx, store, "drop")
				errs <- err
			}()
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			creds := store.Load(ctx)
			assert.Len(t, creds, writers+1, "stored %d of %d tokens", len(creds)-1, writers)
			assert.Equal(t, "me", creds["keep"])
			assert.NotContains(t, creds, "drop")
			for i := 0; i < writers; i++ {
				assert.Equal(t, "tok", creds[fmt.Sprintf("p%d", i)])
			}
		})
	}
}

func TestSetPlatformTokenValidatesArguments(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "c.yaml"))
	require.NoError(t, err)

	assert.Error(t, SetPlatformToken(context.Background(), store, "  ", "tok"))
	assert.Error(t, SetPlatformToken(context.Background(), store, "devto", ""))
	assert.Empty(t, store.Load(context.Background()))
}

func TestSetPlatformTokenAcceptsUnknownPlatform(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "c.yaml"))
	require.NoError(t, err)

	require.NoError(t, SetPlatformToken(context.Background(), store, "medium", "tok"))
	assert.Equal(t, "tok", store.Load(context.Background())["medium"])
}

func TestRemovePlatformToken(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			store := b.open(t)
			require.NoError(t, store.Save(ctx, models.CredentialMap{"devto": "X", "hashnode": "Y"}))

			removed, err := RemovePlatformToken(ctx, store, "devto")
			require.NoError(t, err)
			assert.True(t, removed)
			assert.Equal(t, models.CredentialMap{"hashnode": "Y"}, store.Load(ctx))

			removed, err = RemovePlatformToken(ctx, store, "devto")
			require.NoError(t, err)
			assert.False(t, removed)
		})
	}
}

func TestLoadReturnsIndependentMap(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "c.yaml"))
	require.NoError(t, err)
	require.NoError(t, SetPlatformToken(ctx, store, "devto", "X"))

	creds := store.Load(ctx)
	creds["devto"] = "mutated"

	assert.Equal(t, "X", store.Load(ctx)["devto"])
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tokens: [this is: not a map"), 0600))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	creds := store.Load(context.Background())
	require.NotNil(t, creds)
	assert.Empty(t, creds)
}

func TestFileStoreFormatAndPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, SetPlatformToken(context.Background(), store, "devto", "X"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tokens:")
	assert.Contains(t, string(data), "devto: X")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestSQLiteStoreCorruptValue(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "c.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.db.ExecContext(ctx, "INSERT INTO kv (key, value) VALUES (?, ?)", ConfigKey, "{not json")
	require.NoError(t, err)

	creds := store.Load(ctx)
	require.NotNil(t, creds)
	assert.Empty(t, creds)

	require.NoError(t, SetPlatformToken(ctx, store, "devto", "X"))
	assert.Equal(t, models.CredentialMap{"devto": "X"}, store.Load(ctx))
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "c.db")

	store, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, SetPlatformToken(ctx, store, "hashnode", "Y"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, models.CredentialMap{"hashnode": "Y"}, reopened.Load(ctx))
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fileCfg := &config.Config{Credentials: config.CredentialsConfig{Path: filepath.Join(dir, "c.yaml")}}
	s, err := Open(ctx, fileCfg)
	require.NoError(t, err)
	_, ok := s.(*FileStore)
	assert.True(t, ok, "expected *FileStore, got %T", s)
	_ = s.Close()

	sqlCfg := &config.Config{Credentials: config.CredentialsConfig{Backend: config.BackendSQLite, Path: filepath.Join(dir, "c.db")}}
	s, err = Open(ctx, sqlCfg)
	require.NoError(t, err)
	_, ok = s.(*SQLiteStore)
	assert.True(t, ok, "expected *SQLiteStore, got %T", s)
	_ = s.Close()
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", MaskToken(""))
	assert.Equal(t, "***", MaskToken("abc"))
	assert.Equal(t, "****5678", MaskToken("12345678"))
}
