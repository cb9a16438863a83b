package store

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dgallion1/wordjson/internal/pathstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePathstore is an in-memory stand-in for the pathstore KV API.
type fakePathstore struct {
	mu    sync.Mutex
	nodes map[string]json.RawMessage
}

func newFakePathstore(t *testing.T) *httptest.Server {
	t.Helper()
	f := &fakePathstore{nodes: make(map[string]json.RawMessage)}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return srv
}

func (f *fakePathstore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer test-key" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	key := strings.TrimPrefix(r.URL.Path, "/kv/")

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(key, "/*"):
		prefix := strings.TrimSuffix(key, "*")
		var out struct {
			Nodes []pathstore.Node `json:"nodes"`
		}
		out.Nodes = []pathstore.Node{}
		for k, v := range f.nodes {
			if strings.HasPrefix(k, prefix) {
				out.Nodes = append(out.Nodes, pathstore.Node{Key: k, Value: v})
			}
		}
		json.NewEncoder(w).Encode(out)
	case r.Method == http.MethodGet:
		v, ok := f.nodes[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(pathstore.Node{Key: key, Value: v})
	case r.Method == http.MethodPut:
		var req struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.nodes[key] = req.Value
		w.WriteHeader(http.StatusCreated)
	case r.Method == http.MethodDelete:
		if _, ok := f.nodes[key]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		delete(f.nodes, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqliteStore, err := OpenSQLite(":memory:", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	srv := newFakePathstore(t)
	ps := NewPathstoreStore(pathstore.NewClient(srv.URL, "test-key"), "wordjson/", testLogger())
	t.Cleanup(func() { ps.Close() })

	return map[string]Store{"sqlite": sqliteStore, "pathstore": ps}
}

func record(id string, at time.Time) File {
	return File{
		FileID:     id,
		Filename:   "report.docx",
		FilePath:   "stored_files/" + id + "_report.docx",
		UploadDate: FormatTime(at),
		FileType:   ".docx",
	}
}

func TestStore_InsertGet(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := record("a1", time.Now())
			require.NoError(t, s.Insert(ctx, want))

			got, err := s.Get(ctx, "a1")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, want, *got)
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Get(context.Background(), "nope")
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestStore_ListOrderedByUploadDate(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
			require.NoError(t, s.Insert(ctx, record("late", base.Add(time.Second))))
			require.NoError(t, s.Insert(ctx, record("early", base)))
			require.NoError(t, s.Insert(ctx, record("mid", base.Add(500*time.Millisecond))))

			files, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, files, 3)
			assert.Equal(t, "early", files[0].FileID)
			assert.Equal(t, "mid", files[1].FileID)
			assert.Equal(t, "late", files[2].FileID)
		})
	}
}

func TestStore_ListSameInstantOrderedByID(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
			require.NoError(t, s.Insert(ctx, record("0190c", at)))
			require.NoError(t, s.Insert(ctx, record("0190a", at)))
			require.NoError(t, s.Insert(ctx, record("0190b", at)))

			for range 3 {
				files, err := s.List(ctx)
				require.NoError(t, err)
				require.Len(t, files, 3)
				assert.Equal(t, []string{"0190a", "0190b", "0190c"},
					[]string{files[0].FileID, files[1].FileID, files[2].FileID})
			}
		})
	}
}

func TestStore_ListEmpty(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			files, err := s.List(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, files)
			assert.Empty(t, files)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Insert(ctx, record("gone", time.Now())))

			ok, err := s.Delete(ctx, "gone")
			require.NoError(t, err)
			assert.True(t, ok)

			got, err := s.Get(ctx, "gone")
			require.NoError(t, err)
			assert.Nil(t, got)

			ok, err = s.Delete(ctx, "gone")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSQLiteStore_DuplicateID(t *testing.T) {
	s, err := OpenSQLite(":memory:", testLogger())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, record("dup", time.Now())))
	assert.Error(t, s.Insert(ctx, record("dup", time.Now())))
}

func TestSQLiteStore_PersistsToDisk(t *testing.T) {
	path := t.TempDir() + "/nested/files.db"
	s, err := OpenSQLite(path, testLogger())
	require.NoError(t, err)
	require.NoError(t, s.Insert(context.Background(), record("keep", time.Now())))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path, testLogger())
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(context.Background(), "keep")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestFormatTime_SortsLexically(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := FormatTime(base)
	b := FormatTime(base.Add(500 * time.Millisecond))
	c := FormatTime(base.Add(time.Second))
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}
