package locale

import (
	"log/slog"
	"strings"

	golocale "github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
)

// AutoLanguage is the configuration value that asks for the device language.
const AutoLanguage = "auto"

// Resolver derives the display language from the device locale.
type Resolver struct {
	read func() (string, error)
}

// NewResolver creates a Resolver that reads the operating system locale.
func NewResolver() *Resolver {
	return &Resolver{read: golocale.GetLocale}
}

// NewResolverWithReader creates a Resolver backed by a custom locale source.
func NewResolverWithReader(read func() (string, error)) *Resolver {
	return &Resolver{read: read}
}

// Language composes "lang-REGION" from the device locale and maps it onto a supported
// Language. Unreadable or unsupported locales fall back to English.
func (r *Resolver) Language() Language {
	if r == nil || r.read == nil {
		return English
	}
	raw, err := r.read()
	if err != nil {
		slog.Debug("Failed to read device locale, using English", "error", err)
		return English
	}
	lang, ok := LanguageForTag(ComposeTag(raw))
	if !ok {
		slog.Debug("Unsupported device locale, using English", "locale", raw)
	}
	return lang
}

// ResolveLanguage turns a configured value into a Language. "auto" or an empty value defers to
// the device locale; anything else is treated as a locale string.
func (r *Resolver) ResolveLanguage(configured string) Language {
	configured = strings.TrimSpace(configured)
	if configured == "" || strings.EqualFold(configured, AutoLanguage) {
		return r.Language()
	}
	lang, _ := LanguageForTag(ComposeTag(configured))
	return lang
}

// ComposeTag normalizes a POSIX or BCP 47 locale ("pt_BR.UTF-8", "en-us") into "lang-REGION".
// It returns "" when the locale has no explicit region or cannot be parsed.
func ComposeTag(raw string) string {
	raw = strings.TrimSpace(raw)
	if idx := strings.IndexAny(raw, ".@"); idx >= 0 {
		raw = raw[:idx]
	}
	raw = strings.ReplaceAll(raw, "_", "-")
	if raw == "" {
		return ""
	}

	tag, err := language.Parse(raw)
	if err != nil {
		return ""
	}
	base, baseConf := tag.Base()
	region, regionConf := tag.Region()
	if baseConf == language.No || regionConf != language.Exact {
		return ""
	}
	return base.String() + "-" + region.String()
}
