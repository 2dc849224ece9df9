package dashboard

import (
	"strconv"
	"strings"

	"github.com/eringen/aforo/i18n"
)

// MonthNames label the month toggles and the month chart.
var MonthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// WeekdayNames label the weekday chart, Monday first.
var WeekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Option is one entry of a select control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// MonthToggle is one month checkbox.
type MonthToggle struct {
	Index    int
	Value    string
	Name     string
	Selected bool
}

// Controls are the option lists of every selector, marked with the current
// state.
type Controls struct {
	Languages []Option
	Venues    []Option
	Months    []MonthToggle
	Windows   []Option
}

// Labels are the translated strings of the page.
type Labels struct {
	Title          string
	Subtitle       string
	Language       string
	Place          string
	Total          string
	Weekday        string
	Month          string
	Months         string
	Evolution      string
	TooltipWeekday string
	NotEnoughData  string
}

const defaultNotEnoughData = "Not enough data"

// ResolveLabels looks up every page label in lang. Missing keys are empty,
// except the evolution placeholder which keeps an English default.
func ResolveLabels(table i18n.Table, lang string) Labels {
	l := Labels{
		Title:          table.Lookup(lang, i18n.KeyTitle),
		Subtitle:       table.Lookup(lang, i18n.KeySubtitle),
		Language:       table.Lookup(lang, i18n.KeyLanguage),
		Place:          table.Lookup(lang, i18n.KeyPlace),
		Total:          table.Lookup(lang, i18n.KeyTotal),
		Weekday:        table.Lookup(lang, i18n.KeyWeekday),
		Month:          table.Lookup(lang, i18n.KeyMonth),
		Months:         table.Lookup(lang, i18n.KeyMonths),
		Evolution:      table.Lookup(lang, i18n.KeyEvolution),
		TooltipWeekday: table.Lookup(lang, i18n.KeyTooltipWeekday),
		NotEnoughData:  table.Lookup(lang, i18n.KeyNotEnoughData),
	}
	if l.NotEnoughData == "" {
		l.NotEnoughData = defaultNotEnoughData
	}
	return l
}

// BuildControls lists languages (upper-cased codes, sorted), venues in
// configured order, the twelve month toggles and the evolution windows.
func BuildControls(s State, table i18n.Table, opts Options) Controls {
	var c Controls
	for _, lang := range table.Languages() {
		c.Languages = append(c.Languages, Option{
			Value:    lang,
			Label:    strings.ToUpper(lang),
			Selected: lang == s.Language,
		})
	}
	for _, v := range opts.Venues {
		c.Venues = append(c.Venues, Option{
			Value:    strconv.Itoa(v.ID),
			Label:    v.Name,
			Selected: v.ID == s.VenueID,
		})
	}
	for i, name := range MonthNames {
		c.Months = append(c.Months, MonthToggle{
			Index:    i,
			Value:    strconv.Itoa(i),
			Name:     name,
			Selected: s.Months.Has(i),
		})
	}
	for _, days := range opts.Windows {
		c.Windows = append(c.Windows, Option{
			Value:    strconv.Itoa(days),
			Label:    table.Lookup(s.Language, i18n.WindowKey(days)),
			Selected: days == s.WindowDays,
		})
	}
	return c
}
