package humanfmt

import (
	"fmt"
	"maps"
	"strings"
)

const fallbackRulesLocale = "en"

// formattingRulesData contains hardcoded formatting rules for the locales we
// ship by default. Region variants resolve to these through the parent chain.
var formattingRulesData = map[string]FormattingRules{
	"en": {
		Locale: "en",
		Number: NumberRules{
			DecimalSep:  ".",
			ThousandSep: ",",
			MinusSign:   "-",
			Infinity:    "∞",
		},
		Date: DatePatternRules{
			Pattern:           "{month}/{day}/{year}",
			DateTimeSeparator: ", ",
		},
		Time: TimeFormatRules{
			Separator: ":",
			AM:        "AM",
			PM:        "PM",
			ZoneNames: map[string]string{
				"UTC":  "UTC",
				"EST":  "EST",
				"EDT":  "EDT",
				"CST":  "CST",
				"CDT":  "CDT",
				"MST":  "MST",
				"MDT":  "MDT",
				"PST":  "PST",
				"PDT":  "PDT",
				"AKST": "AKST",
				"AKDT": "AKDT",
				"HST":  "HST",
				"HDT":  "HDT",
			},
		},
	},
	"en-GB": {
		Locale: "en-GB",
		Number: NumberRules{
			DecimalSep:  ".",
			ThousandSep: ",",
			MinusSign:   "-",
			Infinity:    "∞",
		},
		Date: DatePatternRules{
			Pattern:           "{day}/{month}/{year}",
			DateTimeSeparator: ", ",
		},
		Time: TimeFormatRules{
			Separator: ":",
			AM:        "am",
			PM:        "pm",
			ZoneNames: map[string]string{
				"UTC":  "UTC",
				"BST":  "BST",
				"WET":  "WET",
				"WEST": "WEST",
				"CET":  "CET",
				"CEST": "CEST",
				"EET":  "EET",
				"EEST": "EEST",
			},
		},
	},
	"de": {
		Locale: "de",
		Number: NumberRules{
			DecimalSep:  ",",
			ThousandSep: ".",
			MinusSign:   "-",
			Infinity:    "∞",
		},
		Date: DatePatternRules{
			Pattern:           "{day}.{month}.{year}",
			DateTimeSeparator: ", ",
		},
		Time: TimeFormatRules{
			Separator: ":",
			AM:        "AM",
			PM:        "PM",
			ZoneNames: map[string]string{
				"UTC":  "UTC",
				"WET":  "WEZ",
				"WEST": "WESZ",
				"CET":  "MEZ",
				"CEST": "MESZ",
				"EET":  "OEZ",
				"EEST": "OESZ",
			},
		},
	},
}

// FormattingRulesProvider provides formatting rules for locales
type FormattingRulesProvider struct {
	rules    map[string]FormattingRules
	resolver FallbackResolver
}

// NewFormattingRulesProvider layers overrides on top of the built-in rules.
// Partial overrides inherit missing fields from the rules they replace and
// the merged result must still be valid.
func NewFormattingRulesProvider(overrides map[string]FormattingRules, resolver FallbackResolver) (*FormattingRulesProvider, error) {
	rules := maps.Clone(formattingRulesData)

	base := formattingRulesData[fallbackRulesLocale]
	for locale, override := range overrides {
		locale = normalizeLocale(locale)
		if locale == "" {
			continue
		}
		inherit := base
		if existing, ok := rules[locale]; ok {
			inherit = existing
		} else if parent, ok := rules[localeBase(locale)]; ok {
			inherit = parent
		}
		merged := override.withDefaults(inherit)
		merged.Locale = locale
		if err := validateRules(merged); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRules, locale, err)
		}
		rules[locale] = merged
	}

	return &FormattingRulesProvider{
		rules:    rules,
		resolver: resolver,
	}, nil
}

func builtinRulesProvider() *FormattingRulesProvider {
	return &FormattingRulesProvider{rules: maps.Clone(formattingRulesData)}
}

// Get loads formatting rules for a locale
// It tries exact match, resolver candidates, parents, base language, then English
func (p *FormattingRulesProvider) Get(locale string) *FormattingRules {
	if p == nil || p.rules == nil {
		return loadFormattingRules(locale)
	}

	for _, candidate := range p.candidates(locale) {
		if rules, ok := p.rules[candidate]; ok {
			return &rules
		}
	}

	if rules, ok := p.rules[fallbackRulesLocale]; ok {
		return &rules
	}

	rules := formattingRulesData[fallbackRulesLocale]
	return &rules
}

// Locales lists the locales that carry their own rules.
func (p *FormattingRulesProvider) Locales() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.rules))
	for locale := range p.rules {
		out = append(out, locale)
	}
	return normalizeLocales(out)
}

func (p *FormattingRulesProvider) candidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return nil
	}

	chain := []string{locale}
	appendLocale := func(value string) {
		if value == "" || containsLocale(chain, value) {
			return
		}
		chain = append(chain, value)
	}

	if p.resolver != nil {
		for _, fallback := range p.resolver.Resolve(locale) {
			appendLocale(fallback)
		}
	}
	for _, parent := range localeParentChain(locale) {
		appendLocale(parent)
	}
	appendLocale(localeBase(locale))

	return chain
}

// loadFormattingRules resolves against the built-in table only
func loadFormattingRules(locale string) *FormattingRules {
	locale = normalizeLocale(locale)

	if rules, ok := formattingRulesData[locale]; ok {
		return &rules
	}

	for _, parent := range localeParentChain(locale) {
		if rules, ok := formattingRulesData[parent]; ok {
			return &rules
		}
	}

	if rules, ok := formattingRulesData[strings.ToLower(localeBase(locale))]; ok {
		return &rules
	}

	rules := formattingRulesData[fallbackRulesLocale]
	return &rules
}
