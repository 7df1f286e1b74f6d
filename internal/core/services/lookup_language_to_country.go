package services

import (
	"context"

	"golang.org/x/text/language"
)

// LanguageToCountryLookup maps an Accept-Language header value to a country
// code through an injectable tag→country table. The default table is empty:
// the strategy is an extension point, not a complete feature, and an empty
// table makes every lookup a miss.
type LanguageToCountryLookup struct {
	table map[string]string
}

// NewLanguageToCountryLookup creates the language→country strategy. Table
// keys are BCP 47 tags ("nl", "en-US"); a nil table is treated as empty.
func NewLanguageToCountryLookup(table map[string]string) *LanguageToCountryLookup {
	if table == nil {
		table = map[string]string{}
	}
	return &LanguageToCountryLookup{table: table}
}

// Lookup parses acceptLanguage and returns the mapped country of the first
// tag present in the table, trying the full tag before its base language.
// Malformed headers are a miss, never an error.
func (l *LanguageToCountryLookup) Lookup(_ context.Context, acceptLanguage string) (string, bool) {
	if acceptLanguage == "" || len(l.table) == 0 {
		return "", false
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return "", false
	}

	for _, tag := range tags {
		if country, ok := l.table[tag.String()]; ok {
			return country, true
		}
		if base, conf := tag.Base(); conf != language.No {
			if country, ok := l.table[base.String()]; ok {
				return country, true
			}
		}
	}

	return "", false
}
