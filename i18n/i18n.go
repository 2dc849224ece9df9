// Package i18n is a read-only lookup over the dashboard translation table:
// language code to a flat map of label keys.
package i18n

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Label keys the dashboard reads.
const (
	KeyTitle          = "title"
	KeySubtitle       = "subtitle"
	KeyLanguage       = "language"
	KeyPlace          = "place"
	KeyTotal          = "total"
	KeyWeekday        = "weekday"
	KeyMonth          = "month"
	KeyMonths         = "months"
	KeyEvolution      = "evolution"
	KeyTooltipWeekday = "tooltipWeekday"
	KeyNotEnoughData  = "notEnoughData"
)

// WindowKey is the label key of an evolution window, e.g. last_30_days.
func WindowKey(days int) string {
	return fmt.Sprintf("last_%d_days", days)
}

// Table maps language codes to label dictionaries.
type Table map[string]map[string]string

// Decode reads a translation table from JSON.
func Decode(r io.Reader) (Table, error) {
	var t Table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode i18n: %w", err)
	}
	return t, nil
}

// Languages returns the language codes in sorted order.
func (t Table) Languages() []string {
	langs := make([]string, 0, len(t))
	for l := range t {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Has reports whether lang is present.
func (t Table) Has(lang string) bool {
	_, ok := t[lang]
	return ok
}

// Lookup returns the label for key in lang, or "" when either is missing.
func (t Table) Lookup(lang, key string) string {
	return t[lang][key]
}

// Resolve picks lang when present, then fallback, then the first language
// in sorted order. It returns "" for an empty table.
func (t Table) Resolve(lang, fallback string) string {
	switch {
	case t.Has(lang):
		return lang
	case t.Has(fallback):
		return fallback
	}
	if langs := t.Languages(); len(langs) > 0 {
		return langs[0]
	}
	return ""
}
