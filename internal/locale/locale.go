// Package locale resolves the display language and watch-provider region used for catalog requests.
package locale

import (
	"context"
	"fmt"
	"strings"
)

// Language is a display language supported by the catalog client.
type Language int

const (
	// English is the fallback language.
	English Language = iota
	// Portuguese is Brazilian Portuguese.
	Portuguese
)

var languageTags = map[Language]string{
	English:    "en-US",
	Portuguese: "pt-BR",
}

// Languages returns every supported language.
func Languages() []Language {
	return []Language{English, Portuguese}
}

// Tag returns the API language tag, e.g. "pt-BR".
func (l Language) Tag() string {
	if tag, ok := languageTags[l]; ok {
		return tag
	}
	return languageTags[English]
}

func (l Language) String() string {
	switch l {
	case Portuguese:
		return "Portuguese"
	default:
		return "English"
	}
}

// PrimarySubtag returns the language part of the tag ("pt" for "pt-BR").
func (l Language) PrimarySubtag() string {
	tag := l.Tag()
	if idx := strings.IndexByte(tag, '-'); idx >= 0 {
		return tag[:idx]
	}
	return tag
}

// LanguageForTag maps an exact "lang-REGION" tag onto a supported language.
func LanguageForTag(tag string) (Language, bool) {
	for _, lang := range Languages() {
		if strings.EqualFold(lang.Tag(), tag) {
			return lang, true
		}
	}
	return English, false
}

// Location is a supported watch-provider region.
type Location int

const (
	// USA is the default region.
	USA Location = iota
	// Brazil region.
	Brazil
)

// Locations returns every supported location.
func Locations() []Location {
	return []Location{USA, Brazil}
}

// RegionCode returns the ISO 3166-1 code sent as watch_region.
func (l Location) RegionCode() string {
	switch l {
	case Brazil:
		return "BR"
	default:
		return "US"
	}
}

func (l Location) String() string {
	switch l {
	case Brazil:
		return "Brazil"
	default:
		return "USA"
	}
}

// ParseLocation accepts a region code or a location name, case-insensitively.
func ParseLocation(value string) (Location, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, loc := range Locations() {
		if normalized == strings.ToLower(loc.RegionCode()) || normalized == strings.ToLower(loc.String()) {
			return loc, nil
		}
	}
	return USA, fmt.Errorf("unsupported region %q", value)
}

// Locale is the language/region pair a catalog request is made for.
type Locale struct {
	Language Language
	Location Location
}

// Default returns English/USA.
func Default() Locale {
	return Locale{Language: English, Location: USA}
}

// IsOriginalLanguage reports whether code equals the primary subtag of the active language tag.
func (l Locale) IsOriginalLanguage(code string) bool {
	return code == l.Language.PrimarySubtag()
}

func (l Locale) String() string {
	return fmt.Sprintf("%s/%s", l.Language.Tag(), l.Location.RegionCode())
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying loc.
func NewContext(ctx context.Context, loc Locale) context.Context {
	return context.WithValue(ctx, contextKey{}, loc)
}

// FromContext returns the Locale stored by NewContext, if any.
func FromContext(ctx context.Context) (Locale, bool) {
	if ctx == nil {
		return Locale{}, false
	}
	loc, ok := ctx.Value(contextKey{}).(Locale)
	return loc, ok
}
