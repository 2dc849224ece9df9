package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/eringen/aforo/occupancy"
)

const statsJSON = `[
  {"timestamp": "2024-01-01T10:00Z", "data": [{"IdRecinto": 1, "Ocupacion": 50, "Aforo": 100, "Extra": "x"}]},
  {"timestamp": "2024-01-08T10:00Z", "data": [{"IdRecinto": 1, "Ocupacion": 75, "Aforo": 100}]}
]`

const i18nJSON = `{"es": {"title": "Aforo"}, "en": {"title": "Occupancy"}}`

var wantBatches = []occupancy.Batch{
	{Timestamp: "2024-01-01T10:00Z", Data: []occupancy.Reading{{VenueID: 1, Occupancy: 50, Capacity: 100}}},
	{Timestamp: "2024-01-08T10:00Z", Data: []occupancy.Reading{{VenueID: 1, Occupancy: 75, Capacity: 100}}},
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchesFromFile(t *testing.T) {
	l := NewLoader(time.Second)
	path := writeFile(t, "stats.json", statsJSON)

	for _, loc := range []string{path, "file://" + path} {
		got, err := l.Batches(context.Background(), loc)
		if err != nil {
			t.Fatalf("Batches(%q): %v", loc, err)
		}
		if diff := cmp.Diff(wantBatches, got); diff != "" {
			t.Errorf("Batches(%q) mismatch (-want +got):\n%s", loc, diff)
		}
	}
}

func TestMissingFile(t *testing.T) {
	l := NewLoader(time.Second)
	_, err := l.Batches(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestUnsupportedScheme(t *testing.T) {
	l := NewLoader(time.Second)
	_, err := l.Translations(context.Background(), "ftp://example.com/i18n.json")
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Fatalf("err = %v, want ErrUnsupportedScheme", err)
	}
}

func TestLoadOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stats.json":
			w.Write([]byte(statsJSON))
		case "/i18n.json":
			w.Write([]byte(i18nJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := NewLoader(time.Second)
	ctx := context.Background()

	snaps, err := l.Snapshots(ctx, srv.URL+"/stats.json", time.UTC)
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}
	if len(snaps) != 2 || !snaps[1].Time.Equal(time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("snapshots = %+v", snaps)
	}

	table, err := l.Translations(ctx, srv.URL+"/i18n.json")
	if err != nil {
		t.Fatalf("Translations: %v", err)
	}
	if table.Lookup("en", "title") != "Occupancy" {
		t.Errorf("table = %v", table)
	}

	if _, err := l.Translations(ctx, srv.URL+"/missing.json"); err == nil {
		t.Fatal("expected an error for a 404")
	}
}

func TestSnapshotsBadTimestamp(t *testing.T) {
	l := NewLoader(time.Second)
	path := writeFile(t, "stats.json", `[{"timestamp": "yesterday", "data": []}]`)
	if _, err := l.Snapshots(context.Background(), path, time.UTC); !errors.Is(err, occupancy.ErrBadTimestamp) {
		t.Fatalf("err = %v, want ErrBadTimestamp", err)
	}
}

func TestMalformedJSON(t *testing.T) {
	l := NewLoader(time.Second)
	path := writeFile(t, "stats.json", `{"not": "a list"}`)
	if _, err := l.Batches(context.Background(), path); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestNullSnapshotDocument(t *testing.T) {
	path := writeFile(t, "stats.json", "null")
	_, err := NewLoader(time.Second).Snapshots(context.Background(), path, time.UTC)
	if !errors.Is(err, occupancy.ErrNoBatches) {
		t.Fatalf("err = %v, want ErrNoBatches", err)
	}
}
