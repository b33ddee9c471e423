package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
	"privacy": {
		"news": {
			"daily_timeline": {
				"2025-07-08": {
					"중분류목록": {"개인정보보호법": {"count": 3}}
				}
			}
		},
		"addsocial": {
			"daily_timeline": {
				"2025-07-08": {"counts": {"찬성": 10, "반대": 5}}
			}
		}
	}
}`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeDataset(t, sampleJSON)

	ds, err := Load(path)
	require.NoError(t, err)

	bucket := ds.Category("privacy")
	entry := bucket.News.Daily["2025-07-08"]
	assert.Equal(t, 3, entry.Mids["개인정보보호법"].Count.Int())
	assert.Equal(t, 10, bucket.Social.Daily["2025-07-08"].Counts.Agree.Int())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read dataset file")
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeDataset(t, "{not json")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode dataset file")
}

func TestStore_ReplaceBumpsVersion(t *testing.T) {
	clock := clockwork.NewFakeClock()
	path := writeDataset(t, sampleJSON)
	ds, err := Load(path)
	require.NoError(t, err)

	store := NewStore(ds, clock)
	assert.Equal(t, 1, store.Version())
	assert.Equal(t, clock.Now(), store.LoadedAt())

	clock.Advance(time.Minute)
	store.Replace(ds)
	assert.Equal(t, 2, store.Version())
	assert.Equal(t, clock.Now(), store.LoadedAt())
}

func TestRefresher_ReloadsOnModTimeChange(t *testing.T) {
	clock := clockwork.NewFakeClock()
	path := writeDataset(t, sampleJSON)
	ds, err := Load(path)
	require.NoError(t, err)
	store := NewStore(ds, clock)

	var reloaded bool
	r := NewRefresher(path, store, 30*time.Second, clock, func() { reloaded = true })

	// Unchanged file: no reload.
	r.poll(context.Background())
	assert.Equal(t, 1, store.Version())
	assert.False(t, reloaded)

	// Touch the file into the future.
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	r.poll(context.Background())
	assert.Equal(t, 2, store.Version())
	assert.True(t, reloaded)

	// Same mtime again: nothing happens.
	reloaded = false
	r.poll(context.Background())
	assert.Equal(t, 2, store.Version())
	assert.False(t, reloaded)
}

func TestRefresher_KeepsPreviousDataOnBadReload(t *testing.T) {
	clock := clockwork.NewFakeClock()
	path := writeDataset(t, sampleJSON)
	ds, err := Load(path)
	require.NoError(t, err)
	store := NewStore(ds, clock)

	r := NewRefresher(path, store, 30*time.Second, clock, nil)

	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	r.poll(context.Background())

	assert.Equal(t, 1, store.Version())
	assert.NotEmpty(t, store.Get().Category("privacy").News.Daily)

	// The failed attempt did not advance lastModTime, so a fixed file on the
	// same mtime still reloads.
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))
	require.NoError(t, os.Chtimes(path, future, future))
	r.poll(context.Background())
	assert.Equal(t, 2, store.Version())
}

func TestRefresher_RunHonorsTicksAndCancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	path := writeDataset(t, sampleJSON)
	ds, err := Load(path)
	require.NoError(t, err)
	store := NewStore(ds, clock)

	r := NewRefresher(path, store, 30*time.Second, clock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	clock.BlockUntil(1)

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))
	clock.Advance(30 * time.Second)

	require.Eventually(t, func() bool {
		return store.Version() == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on context cancel")
	}
}
