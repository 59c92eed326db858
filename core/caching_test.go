package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/gitrecap/gitrecap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memEntry struct {
	data    []byte
	version int
	ts      int64
}

// memScanStore is an in-memory CacheStore for exercising the cache path.
type memScanStore struct {
	entries map[string]memEntry
	gets    int
	sets    int
}

func newMemScanStore() *memScanStore {
	return &memScanStore{entries: make(map[string]memEntry)}
}

func (s *memScanStore) Get(key string) ([]byte, int, int64, error) {
	s.gets++
	entry, ok := s.entries[key]
	if !ok {
		return nil, 0, 0, errors.New("cache entry not found")
	}
	return entry.data, entry.version, entry.ts, nil
}

func (s *memScanStore) Set(key string, value []byte, version int, timestamp int64) error {
	s.sets++
	s.entries[key] = memEntry{data: value, version: version, ts: timestamp}
	return nil
}

func (s *memScanStore) GetStatus() (schema.CacheStatus, error) { return schema.CacheStatus{}, nil }

func (s *memScanStore) Close() error { return nil }

const cachedRepoLog = `--c1|2020-05-04T09:30:00+02:00|dev@example.com|Cached change

 1 file changed, 2 insertions(+)
`

func TestCachedCollectActivityMissThenHit(t *testing.T) {
	cfg := &contract.Config{Year: 2020, AuthorEmail: "dev@example.com"}
	store := newMemScanStore()
	mgr := &stubManager{scan: store}

	mockClient := new(contract.MockGitClient)
	mockClient.On("GetRepoHash", mock.Anything, "/tmp/alpha").Return("abc123", nil).Twice()
	mockClient.On("GetYearLog", mock.Anything, "/tmp/alpha", "dev@example.com", 2020).
		Return([]byte(cachedRepoLog), nil).Once()
	mockClient.On("GetYearFileLog", mock.Anything, "/tmp/alpha", "dev@example.com", 2020).
		Return([]byte("main.go\n"), nil).Once()

	ctx := context.Background()

	first, err := cachedCollectActivity(ctx, cfg, mockClient, mgr, "/tmp/alpha")
	require.NoError(t, err)
	require.Len(t, first.Commits, 1)
	assert.Equal(t, 1, store.sets)

	// The second scan must be served from the store, not from git log.
	second, err := cachedCollectActivity(ctx, cfg, mockClient, mgr, "/tmp/alpha")
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
	require.Len(t, second.Commits, 1)
	assert.Equal(t, first.Commits[0].Hash, second.Commits[0].Hash)
	assert.Equal(t, first.FileTypes, second.FileTypes)
	assert.Equal(t, 1, store.sets, "a hit must not rewrite the entry")

	mockClient.AssertExpectations(t)
}

func TestCachedCollectActivityNoCacheFlag(t *testing.T) {
	cfg := &contract.Config{Year: 2020, AuthorEmail: "dev@example.com", NoCache: true}
	store := newMemScanStore()
	mgr := &stubManager{scan: store}

	mockClient := new(contract.MockGitClient)
	mockClient.On("GetYearLog", mock.Anything, "/tmp/alpha", "dev@example.com", 2020).
		Return([]byte(cachedRepoLog), nil)
	mockClient.On("GetYearFileLog", mock.Anything, "/tmp/alpha", "dev@example.com", 2020).
		Return([]byte("main.go\n"), nil)

	_, err := cachedCollectActivity(context.Background(), cfg, mockClient, mgr, "/tmp/alpha")
	require.NoError(t, err)

	assert.Zero(t, store.gets)
	assert.Zero(t, store.sets)
	mockClient.AssertNotCalled(t, "GetRepoHash", mock.Anything, mock.Anything)
}

func TestCheckCacheHit(t *testing.T) {
	activity := &schema.RepoActivity{
		Name:      "alpha",
		Path:      "/tmp/alpha",
		FileTypes: map[string]int{"go": 3},
	}
	data, err := json.Marshal(activity)
	require.NoError(t, err)

	tests := []struct {
		name    string
		version int
		ts      int64
		data    []byte
		wantHit bool
	}{
		{
			name:    "fresh entry",
			version: contract.CacheVersion,
			ts:      time.Now().Unix(),
			data:    data,
			wantHit: true,
		},
		{
			name:    "stale entry",
			version: contract.CacheVersion,
			ts:      time.Now().Add(-contract.CacheMaxAge - time.Hour).Unix(),
			data:    data,
			wantHit: false,
		},
		{
			name:    "version mismatch",
			version: contract.CacheVersion + 1,
			ts:      time.Now().Unix(),
			data:    data,
			wantHit: false,
		},
		{
			name:    "corrupt payload",
			version: contract.CacheVersion,
			ts:      time.Now().Unix(),
			data:    []byte("{not json"),
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemScanStore()
			require.NoError(t, store.Set("k", tt.data, tt.version, tt.ts))

			result := checkCacheHit(store, "k")
			if tt.wantHit {
				require.NotNil(t, result)
				assert.Equal(t, "alpha", result.Name)
			} else {
				assert.Nil(t, result)
			}
		})
	}
}

func TestCheckCacheHitMissingKey(t *testing.T) {
	assert.Nil(t, checkCacheHit(newMemScanStore(), "absent"))
}

func TestGenerateCacheKey(t *testing.T) {
	client := new(contract.MockGitClient)
	client.On("GetRepoHash", mock.Anything, "/tmp/alpha").Return("abc123", nil)

	ctx := context.Background()
	base := &contract.Config{Year: 2020, AuthorEmail: "dev@example.com"}

	key := generateCacheKey(ctx, base, client, "/tmp/alpha")
	assert.Len(t, key, 64)

	// Email casing must not fragment the cache.
	upper := base.Clone()
	upper.AuthorEmail = "DEV@Example.com"
	assert.Equal(t, key, generateCacheKey(ctx, upper, client, "/tmp/alpha"))

	otherYear := base.Clone()
	otherYear.Year = 2021
	assert.NotEqual(t, key, generateCacheKey(ctx, otherYear, client, "/tmp/alpha"))

	// A missing HEAD (empty repository) still yields a usable key.
	headless := new(contract.MockGitClient)
	headless.On("GetRepoHash", mock.Anything, "/tmp/alpha").Return("", assert.AnError)
	assert.Len(t, generateCacheKey(ctx, base, headless, "/tmp/alpha"), 64)
}
