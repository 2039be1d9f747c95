// Package textutil holds the Romanian-aware text helpers shared by catalog
// search and form validation.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips diacritics, so "Timișoara" and "timisoara"
// compare equal. Both comma-below and cedilla forms of ș/ț are handled.
func Fold(s string) string {
	return strings.ToLower(StripDiacritics(s))
}

// StripDiacritics removes combining marks and keeps case.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ContainsFold reports whether needle occurs in haystack ignoring case and diacritics.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// TitleWords capitalises every word using Romanian casing rules.
func TitleWords(s string) string {
	return cases.Title(language.Romanian).String(strings.TrimSpace(s))
}

// Collator orders strings the way a Romanian reader expects (ă after a, ș after s).
// It is not safe for concurrent use.
type Collator struct {
	c *collate.Collator
}

func NewCollator() *Collator {
	return &Collator{c: collate.New(language.Romanian, collate.IgnoreCase)}
}

func (c *Collator) Compare(a, b string) int {
	return c.c.CompareString(a, b)
}

// WordCount counts whitespace separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
