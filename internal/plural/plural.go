// Package plural formatuje liczebniki po polsku (1 / 2–4 / 5+).
package plural

import (
	"fmt"

	"go.uber.org/zap"
)

// Forms holds the three Polish word forms of a noun.
type Forms struct {
	Singular    string // 1 sprzęt
	Plural2to4  string // 2–4 sprzęty
	Plural5Plus string // 5+ sprzętów
}

// Patterns — predefiniowane odmiany dla częstych rzeczowników.
var Patterns = map[string]Forms{
	"equipment": {"sprzęt", "sprzęty", "sprzętów"},
	"computer":  {"komputer", "komputery", "komputerów"},
	"monitor":   {"monitor", "monitory", "monitorów"},
	"printer":   {"drukarka", "drukarki", "drukarek"},
	"item":      {"pozycja", "pozycje", "pozycji"},
	"company":   {"firma", "firmy", "firm"},
	"user":      {"użytkownik", "użytkowników", "użytkowników"},
	"category":  {"kategoria", "kategorie", "kategorii"},
	"document":  {"dokument", "dokumenty", "dokumentów"},
	"history":   {"wpis historii", "wpisy historii", "wpisów historii"},
}

var log = zap.NewNop().Sugar()

// SetLogger replaces the package logger (wired from main).
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		log = l
	}
}

// Pluralize picks the word form for count. The rule is deliberately
// simplified: it does not special-case teens (12–14), matching the
// behaviour the UI has always shown.
func Pluralize(count int, singular, plural2to4, plural5plus string) string {
	abs := count
	if abs < 0 {
		abs = -abs
	}
	if abs == 1 {
		return singular
	}
	if abs >= 2 && abs <= 4 {
		return plural2to4
	}
	return plural5plus
}

// Pattern pluralizes one of the predefined nouns. An unknown pattern name
// is logged and rendered verbatim after the count.
func Pattern(count int, name string) string {
	p, ok := Patterns[name]
	if !ok {
		log.Warnw("pluralization pattern not found", "pattern", name)
		return fmt.Sprintf("%d %s", count, name)
	}
	return Pluralize(count, p.Singular, p.Plural2to4, p.Plural5Plus)
}

// FormatCount zwraca licznik wraz z odmienionym słowem, np. "3 sprzęty".
func FormatCount(count int, name string) string {
	return fmt.Sprintf("%d %s", count, Pattern(count, name))
}
