// Package dashboard owns the filter state of the occupancy dashboard and the
// render pass that turns loaded snapshots into chart inputs.
//
// State travels in the request query string. ParseState reads it back with
// every unknown or malformed value falling back to its default, so a stale or
// hand-edited URL always renders something.
package dashboard

import (
	"net/url"
	"sort"
	"strconv"

	"github.com/eringen/aforo/i18n"
	"github.com/eringen/aforo/occupancy"
)

// Query parameter names.
const (
	ParamLanguage = "lang"
	ParamVenue    = "place"
	ParamMonths   = "months"
	ParamWindow   = "range"

	// monthsNone is always sent by the month form so that an empty
	// selection can be told apart from an absent parameter.
	monthsNone = "none"
)

// Venue is a selectable place.
type Venue struct {
	ID   int    `mapstructure:"id" json:"id"`
	Name string `mapstructure:"name" json:"name"`
}

// DefaultVenues is the venue list the dashboard shipped with.
var DefaultVenues = []Venue{
	{ID: occupancy.AllVenues, Name: "Todos"},
	{ID: 1, Name: "Alcobendas Principal"},
	{ID: 2, Name: "Las Rozas Principal"},
	{ID: 4, Name: "Legazpi Principal"},
	{ID: 5, Name: "Chamberí Principal"},
}

// DefaultWindows are the selectable evolution windows, in days.
var DefaultWindows = []int{30, 90, 180, 365}

// Options are the static enumerations the controls are built from.
type Options struct {
	DefaultLanguage string
	DefaultVenue    int
	Venues          []Venue
	Windows         []int
	ChartWidth      int
}

// DefaultOptions returns the stock venue and window set.
func DefaultOptions() Options {
	return Options{
		DefaultLanguage: "es",
		DefaultVenue:    4,
		Venues:          DefaultVenues,
		Windows:         DefaultWindows,
		ChartWidth:      800,
	}
}

// Venue returns the venue with id.
func (o Options) Venue(id int) (Venue, bool) {
	for _, v := range o.Venues {
		if v.ID == id {
			return v, true
		}
	}
	return Venue{}, false
}

// ShortestWindow is the default evolution window.
func (o Options) ShortestWindow() int {
	if len(o.Windows) == 0 {
		return DefaultWindows[0]
	}
	w := append([]int(nil), o.Windows...)
	sort.Ints(w)
	return w[0]
}

func (o Options) hasWindow(days int) bool {
	for _, w := range o.Windows {
		if w == days {
			return true
		}
	}
	return false
}

// State is the user-adjustable filter state.
type State struct {
	Language   string
	VenueID    int
	Months     occupancy.MonthSet
	WindowDays int
}

// DefaultState selects every month, the default venue and language, and the
// shortest evolution window.
func DefaultState(opts Options) State {
	return State{
		Language:   opts.DefaultLanguage,
		VenueID:    opts.DefaultVenue,
		Months:     occupancy.AllMonths(),
		WindowDays: opts.ShortestWindow(),
	}
}

// ParseState reads the filter state from query values. The language is
// resolved against table.
func ParseState(values url.Values, opts Options, table i18n.Table) State {
	s := DefaultState(opts)

	if lang := table.Resolve(values.Get(ParamLanguage), opts.DefaultLanguage); lang != "" {
		s.Language = lang
	}

	if id, err := strconv.Atoi(values.Get(ParamVenue)); err == nil {
		if _, ok := opts.Venue(id); ok {
			s.VenueID = id
		}
	}

	if raw, ok := values[ParamMonths]; ok {
		var idx []int
		for _, v := range raw {
			if v == monthsNone {
				continue
			}
			if i, err := strconv.Atoi(v); err == nil {
				idx = append(idx, i)
			}
		}
		s.Months = occupancy.MonthsOf(idx...)
	}

	if days, err := strconv.Atoi(values.Get(ParamWindow)); err == nil && opts.hasWindow(days) {
		s.WindowDays = days
	}
	return s
}

// Query encodes the state. Months are omitted when all are selected.
func (s State) Query() url.Values {
	q := url.Values{}
	q.Set(ParamLanguage, s.Language)
	q.Set(ParamVenue, strconv.Itoa(s.VenueID))
	if !s.Months.All() {
		q.Add(ParamMonths, monthsNone)
		for _, i := range s.Months.Indexes() {
			q.Add(ParamMonths, strconv.Itoa(i))
		}
	}
	q.Set(ParamWindow, strconv.Itoa(s.WindowDays))
	return q
}
