package bbolt

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/corey/vacha/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// bbolt Snapshot Store: save/load lexicon rows, read-only query access
// Expectation: rows round-trip in order, a snapshot replaces the previous one
// atomically, readers never see a partial lexicon.
// =============================================================================

// newTestStore creates a temporary bbolt store for testing.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

// makeTestRows creates a small lexicon with alternates, compounds and notes.
func makeTestRows() []ports.Row {
	return []ports.Row{
		{Headword: "fel-dor", Gloss: "fire lord"},
		{Headword: "fel", Gloss: "fire", Notes: "also flame"},
		{Headword: "dor / dorn", Gloss: "lord"},
		{Headword: "nəfel", Gloss: "cold"},
	}
}

func TestStore_SaveLoad_Roundtrip(t *testing.T) {
	store, _ := newTestStore(t)
	rows := makeTestRows()

	require.NoError(t, store.SaveRows("dictionary.xlsx", rows))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, rows, loaded)
}

func TestStore_PreservesOrderPastOneByte(t *testing.T) {
	// Keys are big-endian so row 256 sorts after row 255.
	store, _ := newTestStore(t)
	rows := make([]ports.Row, 300)
	for i := range rows {
		rows[i] = ports.Row{Headword: fmt.Sprintf("w%03d", i), Gloss: fmt.Sprintf("g%d", i)}
	}
	require.NoError(t, store.SaveRows("gen", rows))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 300)
	assert.Equal(t, "w255", loaded[255].Headword)
	assert.Equal(t, "w256", loaded[256].Headword)
}

func TestStore_SaveReplacesSnapshot(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveRows("a.xlsx", makeTestRows()))
	require.NoError(t, store.SaveRows("b.csv", []ports.Row{{Headword: "zor", Gloss: "star"}}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []ports.Row{{Headword: "zor", Gloss: "star"}}, loaded)

	meta, err := store.Meta()
	require.NoError(t, err)
	assert.Equal(t, "b.csv", meta.Origin)
	assert.Equal(t, 1, meta.Rows)
	assert.WithinDuration(t, time.Now(), meta.ConvertedAt, time.Minute)
}

func TestStore_EmptySnapshot(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveRows("empty.csv", nil))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_NoSnapshot(t *testing.T) {
	store, _ := newTestStore(t)

	rows, err := store.Load()
	assert.ErrorIs(t, err, ErrNoLexicon)
	assert.Nil(t, rows)

	_, err = store.Meta()
	assert.ErrorIs(t, err, ErrNoLexicon)
}

func TestStore_Describe(t *testing.T) {
	store, path := newTestStore(t)
	assert.Equal(t, "bbolt:"+path, store.Describe())
}

func TestStore_CrashRecovery(t *testing.T) {
	// Write data, close, reopen. Data from the last committed transaction
	// is intact; bbolt fsyncs on commit.
	dir := t.TempDir()
	path := filepath.Join(dir, "crash.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveRows("dictionary.xlsx", makeTestRows()))
	require.NoError(t, store.Close())

	store2, err := NewStore(path)
	require.NoError(t, err)
	defer store2.Close()

	loaded, err := store2.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, len(makeTestRows()))
}

// =============================================================================
// Read-only access
// =============================================================================

func TestStore_ReadOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ro.db")

	w, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, w.SaveRows("dictionary.xlsx", makeTestRows()))
	require.NoError(t, w.Close())

	r1, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer r1.Close()
	r2, err := OpenReadOnly(path)
	require.NoError(t, err, "shared locks allow several readers")
	defer r2.Close()

	loaded, err := r2.Load()
	require.NoError(t, err)
	assert.Equal(t, makeTestRows(), loaded)

	assert.Error(t, r1.SaveRows("x", nil), "read-only store must refuse writes")
}

func TestStore_ReadOnlyMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.db")
	_, err := OpenReadOnly(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bbolt open")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "read-only open must not create the file")
}

func TestStore_ConcurrentReads(t *testing.T) {
	// bbolt supports concurrent readers, single writer.
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveRows("dictionary.xlsx", makeTestRows()))

	var wg sync.WaitGroup
	errs := make(chan error, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows, err := store.Load()
			if err != nil {
				errs <- err
				return
			}
			if len(rows) != 4 {
				errs <- fmt.Errorf("expected 4 rows, got %d", len(rows))
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent read error: %v", err)
	}
}

func TestStore_LargeLexicon_Performance(t *testing.T) {
	// A 20k-row lexicon must save and load well under a second.
	store, _ := newTestStore(t)

	rows := make([]ports.Row, 20000)
	for i := range rows {
		rows[i] = ports.Row{
			Headword: fmt.Sprintf("root%d/alt%d", i, i),
			Gloss:    fmt.Sprintf("meaning number %d", i),
			Notes:    "generated",
		}
	}

	start := time.Now()
	require.NoError(t, store.SaveRows("gen", rows))
	saveTime := time.Since(start)

	start = time.Now()
	loaded, err := store.Load()
	loadTime := time.Since(start)
	require.NoError(t, err)

	assert.Len(t, loaded, len(rows))
	assert.Less(t, saveTime, 2*time.Second, "save took %v", saveTime) // generous for CI
	assert.Less(t, loadTime, 2*time.Second, "load took %v", loadTime)

	t.Logf("Performance: save=%v load=%v rows=%d", saveTime, loadTime, len(rows))
}

// =============================================================================
// Lock contention tests: verify the 1s timeout prevents hangs
// =============================================================================

func TestStore_OpenTimeout_DoesNotHang(t *testing.T) {
	// When another holder has the exclusive lock, a second open should
	// time out in ~1 second, not hang forever.
	dir := t.TempDir()
	path := filepath.Join(dir, "locked.db")

	store1, err := NewStore(path)
	require.NoError(t, err)
	defer store1.Close()

	start := time.Now()
	store2, err := NewStore(path)
	elapsed := time.Since(start)

	require.Error(t, err, "second open should fail with lock timeout")
	assert.Nil(t, store2, "store should be nil on timeout")
	assert.Contains(t, err.Error(), "bbolt open")
	assert.Contains(t, err.Error(), "timeout")
	assert.Less(t, elapsed, 3*time.Second, "should complete within 3s, not hang")
	assert.GreaterOrEqual(t, elapsed, 900*time.Millisecond, "should wait ~1s for the configured timeout")
}

func TestStore_OpenAfterClose_Succeeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "released.db")

	store1, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store1.SaveRows("dictionary.xlsx", makeTestRows()))
	store1.Close()

	start := time.Now()
	store2, err := OpenReadOnly(path)
	elapsed := time.Since(start)

	require.NoError(t, err, "open after close should succeed")
	defer store2.Close()
	assert.Less(t, elapsed, 500*time.Millisecond, "should open instantly after lock released")

	rows, err := store2.Load()
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

// =============================================================================
// Encoding
// =============================================================================

func TestRowKey_RoundTrip(t *testing.T) {
	for _, i := range []int{0, 1, 255, 256, 1 << 20} {
		idx, err := keyIndex(rowKey(i))
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
	_, err := keyIndex([]byte{1, 2})
	assert.Error(t, err)
}

func TestMeta_DecodeCorrupt(t *testing.T) {
	_, err := decodeMeta([]byte("not gob"))
	assert.Error(t, err)
}
