package humanfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RulesLoader reads formatting rule overrides from JSON or YAML files.
// Later files win over earlier ones for the same locale.
type RulesLoader struct {
	paths     []string
	overrides map[string]string
}

var _ FormattingDataLoader = &RulesLoader{}

// NewRulesLoader creates a loader
func NewRulesLoader(paths ...string) *RulesLoader {
	return &RulesLoader{
		paths:     append([]string(nil), paths...),
		overrides: make(map[string]string),
	}
}

// AddOverride adds a file whose rules replace only the given locale
func (l *RulesLoader) AddOverride(locale, path string) {
	if l.overrides == nil {
		l.overrides = make(map[string]string)
	}
	l.overrides[locale] = path
}

// Load reads every configured file and merges the rules by locale
func (l *RulesLoader) Load() (map[string]FormattingRules, error) {
	result := make(map[string]FormattingRules)
	if l == nil {
		return result, nil
	}

	for _, path := range l.paths {
		rules, err := readRulesFile(path)
		if err != nil {
			return nil, err
		}
		for locale, entry := range rules {
			result[locale] = entry
		}
	}

	for locale, path := range l.overrides {
		if err := l.loadOverride(result, locale, path); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (l *RulesLoader) loadOverride(base map[string]FormattingRules, locale, path string) error {
	rules, err := readRulesFile(path)
	if err != nil {
		return fmt.Errorf("load rules override for %q: %w", locale, err)
	}

	normalized := normalizeLocale(locale)
	entry, ok := rules[normalized]
	if !ok {
		return fmt.Errorf("%w: %s has no rules for %q", ErrInvalidRules, path, locale)
	}
	base[normalized] = entry
	return nil
}

func readRulesFile(path string) (map[string]FormattingRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("humanfmt: read %s: %w", path, err)
	}

	file, err := decodeRulesFile(path, data)
	if err != nil {
		return nil, fmt.Errorf("humanfmt: decode %s: %w", path, err)
	}

	out := make(map[string]FormattingRules, len(file.FormattingRules))
	for locale, rules := range file.FormattingRules {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			return nil, fmt.Errorf("%w: empty locale in %s", ErrInvalidRules, path)
		}
		if err := validateRules(rules); err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %v", ErrInvalidRules, path, normalized, err)
		}
		rules.Locale = normalized
		out[normalized] = rules
	}
	return out, nil
}

func decodeRulesFile(path string, data []byte) (RulesFile, error) {
	var file RulesFile
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&file); err != nil {
			return RulesFile{}, err
		}
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&file); err != nil {
			return RulesFile{}, err
		}
	default:
		return RulesFile{}, fmt.Errorf("%w: extension %q", ErrUnsupportedRulesFile, ext)
	}

	return file, nil
}

func validateRules(rules FormattingRules) error {
	number := rules.Number
	if number.DecimalSep != "" && number.DecimalSep == number.ThousandSep {
		return fmt.Errorf("decimal and thousand separators are both %q", number.DecimalSep)
	}

	pattern := rules.Date.Pattern
	if pattern == "" {
		return nil
	}
	for _, placeholder := range []string{"{day}", "{month}", "{year}"} {
		if !strings.Contains(pattern, placeholder) {
			return fmt.Errorf("date pattern %q lacks %s", pattern, placeholder)
		}
	}
	return nil
}
