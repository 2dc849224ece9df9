package i18n

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = `{
  "es": {"title": "Aforo", "last_30_days": "Últimos 30 días"},
  "en": {"title": "Occupancy"}
}`

func TestDecodeAndLookup(t *testing.T) {
	tab, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := tab.Lookup("es", KeyTitle); got != "Aforo" {
		t.Errorf("Lookup(es, title) = %q", got)
	}
	if got := tab.Lookup("es", WindowKey(30)); got != "Últimos 30 días" {
		t.Errorf("Lookup(es, last_30_days) = %q", got)
	}
	if got := tab.Lookup("en", KeySubtitle); got != "" {
		t.Errorf("missing key should be empty, got %q", got)
	}
	if got := tab.Lookup("fr", KeyTitle); got != "" {
		t.Errorf("missing language should be empty, got %q", got)
	}
	if diff := cmp.Diff([]string{"en", "es"}, tab.Languages()); diff != "" {
		t.Errorf("Languages mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"es": [1, 2]}`)); err == nil {
		t.Fatal("expected an error for a non-object language entry")
	}
}

func TestResolve(t *testing.T) {
	tab := Table{"en": {}, "es": {}}
	tests := []struct {
		lang, fallback, want string
	}{
		{"en", "es", "en"},
		{"fr", "es", "es"},
		{"fr", "de", "en"},
	}
	for _, tt := range tests {
		if got := tab.Resolve(tt.lang, tt.fallback); got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.lang, tt.fallback, got, tt.want)
		}
	}
	if got := (Table{}).Resolve("en", "es"); got != "" {
		t.Errorf("Resolve on empty table = %q", got)
	}
}
