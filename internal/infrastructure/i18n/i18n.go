// Package i18n translates the UI strings of the customer screens and
// negotiates the request locale from Accept-Language.
package i18n

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// Bundle holds the supported locales and picks one per request
type Bundle struct {
	fallback  language.Tag
	supported []language.Tag
	matcher   language.Matcher
}

// NewBundle creates a bundle whose fallback is defaultLocale (e.g. "en-GB")
func NewBundle(defaultLocale string) (*Bundle, error) {
	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid default locale %q: %w", defaultLocale, err)
	}
	if _, ok := catalogs[fallback]; !ok {
		return nil, fmt.Errorf("no translations for default locale %q", defaultLocale)
	}

	// The matcher treats the first tag as the default.
	supported := []language.Tag{fallback}
	others := make([]language.Tag, 0, len(catalogs))
	for tag := range catalogs {
		if tag != fallback {
			others = append(others, tag)
		}
	}
	sort.Slice(others, func(i, j int) bool { return others[i].String() < others[j].String() })
	supported = append(supported, others...)

	return &Bundle{
		fallback:  fallback,
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}, nil
}

// Match returns the best supported locale for an Accept-Language header
func (b *Bundle) Match(acceptLanguage string) language.Tag {
	if strings.TrimSpace(acceptLanguage) == "" {
		return b.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.fallback
	}
	_, index, confidence := b.matcher.Match(tags...)
	if confidence == language.No {
		return b.fallback
	}
	return b.supported[index]
}

// Localizer returns a translator for tag. Unsupported tags use the fallback.
func (b *Bundle) Localizer(tag language.Tag) *Localizer {
	if _, ok := catalogs[tag]; !ok {
		tag = b.fallback
	}
	return &Localizer{tag: tag, fallback: b.fallback}
}

// LocalizerFor is Localizer(Match(acceptLanguage))
func (b *Bundle) LocalizerFor(acceptLanguage string) *Localizer {
	return b.Localizer(b.Match(acceptLanguage))
}

// Localizer translates keys for one locale
type Localizer struct {
	tag      language.Tag
	fallback language.Tag
}

// Locale returns the BCP 47 tag of the localizer
func (l *Localizer) Locale() string {
	return l.tag.String()
}

// Choice returns the plural form of key for count. Unknown keys come back as is.
func (l *Localizer) Choice(key string, count int) string {
	if text, ok := lookup(l.tag, key, count); ok {
		return text
	}
	if text, ok := lookup(l.fallback, key, count); ok {
		return text
	}
	return key
}

// Trans returns the singular text of key with :placeholders replaced
func (l *Localizer) Trans(key string, params map[string]string) string {
	text := l.Choice(key, 1)
	if len(params) == 0 {
		return text
	}

	// Longest names first so ":name" does not clobber ":name_full".
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	pairs := make([]string, 0, len(params)*2)
	for _, name := range names {
		pairs = append(pairs, ":"+name, params[name])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func lookup(tag language.Tag, key string, count int) (string, bool) {
	entry, ok := catalogs[tag][key]
	if !ok {
		return "", false
	}
	if count < 0 {
		count = -count
	}
	form := plural.Cardinal.MatchPlural(tag, count, 0, 0, 0, 0)
	if text, ok := entry[form]; ok {
		return text, true
	}
	return entry[plural.Other], true
}
