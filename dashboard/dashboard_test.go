package dashboard

import (
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/eringen/aforo/colormap"
	"github.com/eringen/aforo/i18n"
	"github.com/eringen/aforo/occupancy"
)

var testTable = i18n.Table{
	"es": {"title": "Aforo", "last_30_days": "Últimos 30 días", "last_90_days": "Últimos 90 días"},
	"en": {"title": "Occupancy", "notEnoughData": "Too little data"},
}

func TestDefaultState(t *testing.T) {
	s := DefaultState(DefaultOptions())
	if s.Language != "es" || s.VenueID != 4 || s.WindowDays != 30 || !s.Months.All() {
		t.Errorf("DefaultState = %+v", s)
	}
}

func TestParseState(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		name  string
		query string
		want  State
	}{
		{
			name:  "empty",
			query: "",
			want:  State{Language: "es", VenueID: 4, Months: occupancy.AllMonths(), WindowDays: 30},
		},
		{
			name:  "all set",
			query: "lang=en&place=0&months=none&months=0&months=11&range=90",
			want:  State{Language: "en", VenueID: 0, Months: occupancy.MonthsOf(0, 11), WindowDays: 90},
		},
		{
			name:  "no months ticked",
			query: "months=none",
			want:  State{Language: "es", VenueID: 4, Months: occupancy.MonthSet{}, WindowDays: 30},
		},
		{
			name:  "unknown values fall back",
			query: "lang=fr&place=3&months=12&months=x&months=2&range=45",
			want:  State{Language: "es", VenueID: 4, Months: occupancy.MonthsOf(2), WindowDays: 30},
		},
		{
			name:  "malformed numbers",
			query: "place=abc&range=",
			want:  State{Language: "es", VenueID: 4, Months: occupancy.AllMonths(), WindowDays: 30},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			got := ParseState(values, opts, testTable)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseState mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStateQueryRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	states := []State{
		DefaultState(opts),
		{Language: "en", VenueID: 1, Months: occupancy.MonthsOf(3, 4, 5), WindowDays: 365},
		{Language: "es", VenueID: 0, Months: occupancy.MonthSet{}, WindowDays: 180},
	}
	for _, s := range states {
		got := ParseState(s.Query(), opts, testTable)
		if diff := cmp.Diff(s, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
	if q := DefaultState(opts).Query(); q.Has(ParamMonths) {
		t.Errorf("default query should omit months: %s", q.Encode())
	}
}

func TestBuildControls(t *testing.T) {
	s := State{Language: "es", VenueID: 2, Months: occupancy.AllMonths().Without(1), WindowDays: 90}
	c := BuildControls(s, testTable, DefaultOptions())

	wantLangs := []Option{{Value: "en", Label: "EN"}, {Value: "es", Label: "ES", Selected: true}}
	if diff := cmp.Diff(wantLangs, c.Languages); diff != "" {
		t.Errorf("languages mismatch (-want +got):\n%s", diff)
	}
	if len(c.Venues) != len(DefaultVenues) || !c.Venues[2].Selected || c.Venues[2].Label != "Las Rozas Principal" {
		t.Errorf("venues = %+v", c.Venues)
	}
	if len(c.Months) != 12 || c.Months[1].Selected || !c.Months[0].Selected || c.Months[1].Name != "Feb" {
		t.Errorf("months = %+v", c.Months)
	}
	wantWindows := []Option{
		{Value: "30", Label: "Últimos 30 días"},
		{Value: "90", Label: "Últimos 90 días", Selected: true},
		{Value: "180"},
		{Value: "365"},
	}
	if diff := cmp.Diff(wantWindows, c.Windows); diff != "" {
		t.Errorf("windows mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveLabels(t *testing.T) {
	es := ResolveLabels(testTable, "es")
	if es.Title != "Aforo" || es.Subtitle != "" || es.NotEnoughData != "Not enough data" {
		t.Errorf("es labels = %+v", es)
	}
	if en := ResolveLabels(testTable, "en"); en.NotEnoughData != "Too little data" {
		t.Errorf("en placeholder = %q", en.NotEnoughData)
	}
}

func endToEndData(t *testing.T) Data {
	t.Helper()
	batches := []occupancy.Batch{
		{Timestamp: "2024-01-01T10:00Z", Data: []occupancy.Reading{{VenueID: 1, Occupancy: 50, Capacity: 100}}},
		{Timestamp: "2024-01-08T10:00Z", Data: []occupancy.Reading{{VenueID: 1, Occupancy: 75, Capacity: 100}}},
	}
	snaps, err := occupancy.Parse(batches, time.UTC)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return Data{Snapshots: snaps, I18n: testTable}
}

func TestBuildEndToEnd(t *testing.T) {
	data := endToEndData(t)
	s := State{Language: "es", VenueID: 1, Months: occupancy.AllMonths(), WindowDays: 30}
	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	d := Build(data, s, DefaultOptions(), now)
	if d.Total != 0.625 || d.TotalText != "62.5%" {
		t.Errorf("total = %v (%q), want 0.625 (62.5%%)", d.Total, d.TotalText)
	}
	if want := colormap.ForPercentage(62.5).Vibrant(); d.TotalColor != want {
		t.Errorf("total color = %v, want %v", d.TotalColor, want)
	}
	want := []occupancy.Point{
		{Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Value: 0.5},
		{Date: time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), Value: 0.75},
	}
	if diff := cmp.Diff(want, d.Evolution); diff != "" {
		t.Errorf("evolution mismatch (-want +got):\n%s", diff)
	}
	if len(d.Weekday) != 7 || d.Weekday[0] != 0.625 {
		t.Errorf("weekday = %v, want Monday 0.625", d.Weekday)
	}
	if d.Month[0] != 0.625 {
		t.Errorf("january = %v", d.Month[0])
	}
	if d.EvolutionOptions.EmptyText != "Not enough data" {
		t.Errorf("empty text = %q", d.EvolutionOptions.EmptyText)
	}
}

func TestBuildOtherVenueIsEmpty(t *testing.T) {
	data := endToEndData(t)
	s := State{Language: "en", VenueID: 5, Months: occupancy.AllMonths(), WindowDays: 30}
	d := Build(data, s, DefaultOptions(), time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))
	if d.Rows != 0 || d.Total != 0 || d.TotalText != "0.0%" {
		t.Errorf("empty venue = rows %d, total %v (%q)", d.Rows, d.Total, d.TotalText)
	}
	sum := d.Summary()
	if sum.Evolution == nil || len(sum.Evolution) != 0 {
		t.Errorf("summary evolution = %#v, want empty slice", sum.Evolution)
	}
}

func TestSummary(t *testing.T) {
	data := endToEndData(t)
	s := State{Language: "es", VenueID: 1, Months: occupancy.MonthsOf(0), WindowDays: 30}
	sum := Build(data, s, DefaultOptions(), time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)).Summary()
	if diff := cmp.Diff([]int{0}, sum.Months); diff != "" {
		t.Errorf("months mismatch (-want +got):\n%s", diff)
	}
	if len(sum.Weekday) != 7 || sum.Weekday[0] != (Bucket{Label: "Mon", Value: 0.625}) {
		t.Errorf("weekday buckets = %+v", sum.Weekday)
	}
	if len(sum.Month) != 12 || sum.Month[11].Label != "Dec" {
		t.Errorf("month buckets = %+v", sum.Month)
	}
}
