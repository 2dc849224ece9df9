package dashboard

import (
	"fmt"
	"time"

	"github.com/eringen/aforo/charts"
	"github.com/eringen/aforo/colormap"
	"github.com/eringen/aforo/i18n"
	"github.com/eringen/aforo/occupancy"
)

// Data is the loaded, read-only input of every render pass.
type Data struct {
	Snapshots []occupancy.Snapshot
	I18n      i18n.Table
}

// Dashboard is the result of one render pass.
type Dashboard struct {
	State    State
	Labels   Labels
	Controls Controls

	Total      float64
	TotalText  string
	TotalColor colormap.RGB

	WeekdayLabels []string
	Weekday       []float64
	MonthLabels   []string
	Month         []float64

	Evolution        []occupancy.Point
	EvolutionOptions charts.EvolutionOptions

	Rows int
}

// Build runs one render pass: the venue filter is applied once and the
// resulting rows feed the total, both breakdowns and the evolution series.
func Build(data Data, s State, opts Options, now time.Time) Dashboard {
	rows := occupancy.FilterRows(data.Snapshots, s.VenueID)

	total := occupancy.AverageAll(rows)
	weekday := occupancy.AverageByWeekday(rows, s.Months)
	month := occupancy.AverageByMonth(rows)

	labels := ResolveLabels(data.I18n, s.Language)
	evo := charts.DefaultEvolutionOptions()
	if opts.ChartWidth > 0 {
		evo.Width = opts.ChartWidth
	}
	evo.EmptyText = labels.NotEnoughData

	return Dashboard{
		State:            s,
		Labels:           labels,
		Controls:         BuildControls(s, data.I18n, opts),
		Total:            total,
		TotalText:        charts.FormatPercent(total, 1),
		TotalColor:       colormap.ForPercentage(charts.Percent(total)).Vibrant(),
		WeekdayLabels:    WeekdayNames[:],
		Weekday:          weekday[:],
		MonthLabels:      MonthNames[:],
		Month:            month[:],
		Evolution:        occupancy.DailyEvolution(rows, s.WindowDays, now),
		EvolutionOptions: evo,
		Rows:             len(rows),
	}
}

// TotalStyle is the inline style of the headline figure: the vibrant color
// with a layered glow.
func (d Dashboard) TotalStyle() string {
	c := d.TotalColor
	return fmt.Sprintf("color: %s; text-shadow: 0 0 30px %s, 0 0 60px %s, 0 0 90px %s",
		c.CSS(), c.CSSAlpha(0.8), c.CSSAlpha(0.5), c.CSSAlpha(0.3))
}

// Bucket is a labeled aggregate in a Summary.
type Bucket struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Summary is the JSON form of a render pass.
type Summary struct {
	Language   string            `json:"language"`
	VenueID    int               `json:"place"`
	Months     []int             `json:"months"`
	WindowDays int               `json:"range"`
	Rows       int               `json:"rows"`
	Total      float64           `json:"total"`
	Weekday    []Bucket          `json:"weekday"`
	Month      []Bucket          `json:"month"`
	Evolution  []occupancy.Point `json:"evolution"`
}

// Summary converts the render pass for the JSON API.
func (d Dashboard) Summary() Summary {
	months := d.State.Months.Indexes()
	if months == nil {
		months = []int{}
	}
	evolution := d.Evolution
	if evolution == nil {
		evolution = []occupancy.Point{}
	}
	return Summary{
		Language:   d.State.Language,
		VenueID:    d.State.VenueID,
		Months:     months,
		WindowDays: d.State.WindowDays,
		Rows:       d.Rows,
		Total:      d.Total,
		Weekday:    buckets(d.WeekdayLabels, d.Weekday),
		Month:      buckets(d.MonthLabels, d.Month),
		Evolution:  evolution,
	}
}

func buckets(labels []string, values []float64) []Bucket {
	out := make([]Bucket, len(values))
	for i, v := range values {
		out[i] = Bucket{Label: labels[i], Value: v}
	}
	return out
}
