// Package occupancy holds the snapshot data model and the aggregations the
// dashboard draws: overall mean, weekday and month breakdowns and the daily
// evolution series.
//
// Everything here is a pure function of its inputs. The render pass filters
// the loaded snapshots down to Rows once and reuses them for every
// aggregation.
package occupancy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"time"
)

// AllVenues is the venue id that disables the venue filter.
const AllVenues = 0

// ErrBadTimestamp is returned when a batch timestamp cannot be parsed.
var ErrBadTimestamp = errors.New("occupancy: bad timestamp")

// ErrNoBatches is returned when a snapshot document is null instead of a
// batch list.
var ErrNoBatches = errors.New("occupancy: snapshot document is not a list")

// Reading is one venue's occupancy inside a batch, as published upstream.
type Reading struct {
	VenueID   int     `json:"IdRecinto"`
	Occupancy float64 `json:"Ocupacion"`
	Capacity  float64 `json:"Aforo"`
}

// Batch is one collected snapshot as stored in stats.json.
type Batch struct {
	Timestamp string    `json:"timestamp"`
	Data      []Reading `json:"data"`
}

// Snapshot is a Batch with its timestamp parsed into the dashboard location.
type Snapshot struct {
	Time     time.Time
	Readings []Reading
}

// Row is a derived (date, ratio) pair for a single reading.
type Row struct {
	Date time.Time
	Rel  float64
}

// Point is one day of the evolution series.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Decode reads a JSON array of batches. An empty array is valid; null is not.
func Decode(r io.Reader) ([]Batch, error) {
	var batches []Batch
	if err := json.NewDecoder(r).Decode(&batches); err != nil {
		return nil, fmt.Errorf("decode snapshots: %w", err)
	}
	if batches == nil {
		return nil, ErrNoBatches
	}
	return batches, nil
}

// timestamp layouts, tried in order. Offsetless layouts are read in the
// dashboard location.
var (
	zonedLayouts = []string{time.RFC3339, "2006-01-02T15:04Z07:00"}
	localLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02"}
)

// ParseTimestamp parses an ISO 8601 timestamp and converts it to loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
}

// Parse converts batches into snapshots located in loc. A single bad
// timestamp fails the whole list.
func Parse(batches []Batch, loc *time.Location) ([]Snapshot, error) {
	snaps := make([]Snapshot, 0, len(batches))
	for i, b := range batches {
		t, err := ParseTimestamp(b.Timestamp, loc)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", i, err)
		}
		snaps = append(snaps, Snapshot{Time: t, Readings: b.Data})
	}
	return snaps, nil
}

// Relative returns Occupancy / Capacity. A zero capacity yields NaN or +Inf,
// which Average later normalizes.
func Relative(r Reading) float64 {
	return r.Occupancy / r.Capacity
}

// Average is the arithmetic mean of values. It returns 0 for an empty slice
// and for a non-finite mean.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return 0
	}
	return mean
}

// FilterRows flattens snapshots into rows for venueID. AllVenues keeps every
// reading.
func FilterRows(snaps []Snapshot, venueID int) []Row {
	var rows []Row
	for _, s := range snaps {
		for _, r := range s.Readings {
			if venueID != AllVenues && r.VenueID != venueID {
				continue
			}
			rows = append(rows, Row{Date: s.Time, Rel: Relative(r)})
		}
	}
	return rows
}

// AverageAll is the mean ratio over every row.
func AverageAll(rows []Row) float64 {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.Rel
	}
	return Average(values)
}

// WeekdayOrder is the bucket order of AverageByWeekday: Monday first.
var WeekdayOrder = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekdayIndex returns the position of d in WeekdayOrder.
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// AverageByWeekday buckets rows by weekday (see WeekdayOrder), keeping only
// rows whose month is in months.
func AverageByWeekday(rows []Row, months MonthSet) [7]float64 {
	var buckets [7][]float64
	for _, r := range rows {
		if !months.Has(MonthIndex(r.Date.Month())) {
			continue
		}
		i := WeekdayIndex(r.Date.Weekday())
		buckets[i] = append(buckets[i], r.Rel)
	}
	var out [7]float64
	for i, b := range buckets {
		out[i] = Average(b)
	}
	return out
}

// AverageByMonth buckets rows by calendar month, January first. The month
// selection deliberately does not apply here.
func AverageByMonth(rows []Row) [12]float64 {
	var buckets [12][]float64
	for _, r := range rows {
		i := MonthIndex(r.Date.Month())
		buckets[i] = append(buckets[i], r.Rel)
	}
	var out [12]float64
	for i, b := range buckets {
		out[i] = Average(b)
	}
	return out
}

// DailyEvolution keeps rows no older than windowDays before now, averages
// them per calendar day in the rows' location and returns the days in
// ascending order.
func DailyEvolution(rows []Row, windowDays int, now time.Time) []Point {
	cutoff := now.Add(-time.Duration(windowDays) * 24 * time.Hour)

	type day struct {
		year  int
		month time.Month
		day   int
	}
	grouped := make(map[day][]float64)
	starts := make(map[day]time.Time)
	for _, r := range rows {
		if r.Date.Before(cutoff) {
			continue
		}
		y, m, d := r.Date.Date()
		k := day{y, m, d}
		if _, ok := grouped[k]; !ok {
			starts[k] = time.Date(y, m, d, 0, 0, 0, 0, r.Date.Location())
		}
		grouped[k] = append(grouped[k], r.Rel)
	}

	points := make([]Point, 0, len(grouped))
	for k, vals := range grouped {
		points = append(points, Point{Date: starts[k], Value: Average(vals)})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}
