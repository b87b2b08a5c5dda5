package humanfmt

import (
	"os"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

const defaultHostLocale = "en-US"

var hostLocaleEnv = []string{"LC_ALL", "LC_TIME", "LC_NUMERIC", "LANG"}

func localeParentTag(locale string) string {
	if locale == "" {
		return ""
	}

	tag, err := language.Parse(locale)
	if err == nil {
		parent := tag.Parent()
		if parent == language.Und {
			return ""
		}
		value := parent.String()
		if value == "" || value == "und" {
			return ""
		}
		return value
	}

	if idx := strings.LastIndex(locale, "-"); idx > 0 {
		return locale[:idx]
	}

	return ""
}

func localeParentChain(locale string) []string {
	if locale == "" {
		return nil
	}

	var chain []string
	seen := make(map[string]struct{}, 4)

	if tag, err := language.Parse(locale); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			parentValue := parent.String()
			if parentValue == "" || parentValue == "und" {
				break
			}
			if _, exists := seen[parentValue]; exists {
				break
			}
			seen[parentValue] = struct{}{}
			chain = append(chain, parentValue)
		}
	}

	for current := localeParentTag(locale); current != ""; current = localeParentTag(current) {
		if _, exists := seen[current]; exists {
			continue
		}
		seen[current] = struct{}{}
		chain = append(chain, current)
	}

	return chain
}

// localeBase returns the base language subtag, "de" for "de-DE".
func localeBase(locale string) string {
	if locale == "" {
		return ""
	}
	base, _ := language.Make(locale).Base()
	value := base.String()
	if value == "und" {
		if idx := strings.Index(locale, "-"); idx > 0 {
			return strings.ToLower(locale[:idx])
		}
		return ""
	}
	return value
}

// normalizeLocale normalizes a single locale identifier by replacing
// underscores with hyphens and trimming whitespace.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

func normalizeLocales(locales []string) []string {
	if len(locales) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(locales))
	result := make([]string, 0, len(locales))
	for _, locale := range locales {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	sort.Strings(result)
	return result
}

// normalizePOSIXLocale turns "de_DE.UTF-8@euro" into "de-DE". The C and POSIX
// locales carry no language and yield "".
func normalizePOSIXLocale(value string) string {
	value = strings.TrimSpace(value)
	if idx := strings.IndexAny(value, ".@"); idx >= 0 {
		value = value[:idx]
	}
	switch strings.ToUpper(value) {
	case "", "C", "POSIX":
		return ""
	}
	return normalizeLocale(value)
}

// detectHostLocale reads the POSIX locale environment in precedence order.
func detectHostLocale(lookup func(string) (string, bool)) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range hostLocaleEnv {
		value, ok := lookup(key)
		if !ok {
			continue
		}
		if locale := normalizePOSIXLocale(value); locale != "" {
			return locale
		}
	}
	return defaultHostLocale
}

func containsLocale(locales []string, target string) bool {
	for _, locale := range locales {
		if locale == target {
			return true
		}
	}
	return false
}
