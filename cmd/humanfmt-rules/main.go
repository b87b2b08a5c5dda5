package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-humanfmt"
	cldr "golang.org/x/text/unicode/cldr"
	"gopkg.in/yaml.v3"
)

type generatorConfig struct {
	out      string
	cldrPath string
	locales  []string
}

// symbol matches the element type shared by the CLDR number symbols.
type symbol = struct {
	cldr.Common
	NumberSystem string `xml:"numberSystem,attr"`
}

// shortZoneNames matches the short name element of CLDR zones and metazones.
type shortZoneNames = struct {
	cldr.Common
	Generic  []*cldr.Common `xml:"generic"`
	Standard []*cldr.Common `xml:"standard"`
	Daylight []*cldr.Common `xml:"daylight"`
}

// metazoneAbbreviations maps CLDR metazones to the Go zone abbreviations of
// their standard and daylight variants.
var metazoneAbbreviations = map[string][2]string{
	"GMT":              {"GMT", ""},
	"Europe_Western":   {"WET", "WEST"},
	"Europe_Central":   {"CET", "CEST"},
	"Europe_Eastern":   {"EET", "EEST"},
	"America_Eastern":  {"EST", "EDT"},
	"America_Central":  {"CST", "CDT"},
	"America_Mountain": {"MST", "MDT"},
	"America_Pacific":  {"PST", "PDT"},
	"Alaska":           {"AKST", "AKDT"},
	"Hawaii_Aleutian":  {"HST", "HDT"},
}

var zoneAbbreviations = map[string][2]string{
	"Etc/UTC":       {"UTC", ""},
	"Europe/London": {"GMT", "BST"},
}

// cldrNoName marks a name CLDR deliberately leaves out for a locale.
const cldrNoName = "∅∅∅"

type localeFlag struct {
	items []string
}

func (f *localeFlag) String() string {
	return strings.Join(f.items, ",")
}

func (f *localeFlag) Set(value string) error {
	parts := strings.Split(value, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f.items = append(f.items, part)
	}
	return nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Getenv)
	if err != nil {
		reportError(err)
	}

	if err := run(cfg); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "humanfmt-rules: %v\n", err)
	os.Exit(1)
}

func parseFlags(args []string, getenv func(string) string) (generatorConfig, error) {
	var cfg generatorConfig
	var localeList localeFlag

	fs := flag.NewFlagSet("humanfmt-rules", flag.ContinueOnError)
	fs.StringVar(&cfg.out, "out", "formatting_rules.yaml", "rules file to write, .json, .yaml or .yml")
	fs.StringVar(&cfg.cldrPath, "cldr", "", "path to CLDR core data directory (expects a main/ subdirectory)")
	fs.Var(&localeList, "locale", "locale to generate, e.g. de-CH. Repeat flag or separate with commas to add more.")

	if err := fs.Parse(args); err != nil {
		return generatorConfig{}, err
	}

	if len(localeList.items) == 0 {
		return generatorConfig{}, errors.New("at least one -locale value is required")
	}
	for _, locale := range localeList.items {
		cfg.locales = append(cfg.locales, strings.ReplaceAll(locale, "_", "-"))
	}

	if cfg.cldrPath == "" {
		cfg.cldrPath = getenv("CLDR_CORE_DIR")
	}

	if cfg.cldrPath == "" {
		return generatorConfig{}, errors.New("missing CLDR data directory (set -cldr or CLDR_CORE_DIR)")
	}

	return cfg, nil
}

func run(cfg generatorConfig) error {
	data, err := loadCLDR(cfg.cldrPath)
	if err != nil {
		return err
	}

	file := humanfmt.RulesFile{FormattingRules: make(map[string]humanfmt.FormattingRules, len(cfg.locales))}
	for _, locale := range cfg.locales {
		ldml := findLDML(data, locale)
		if ldml == nil {
			return fmt.Errorf("build rules for %s: missing LDML data", locale)
		}
		file.FormattingRules[locale] = extractRules(ldml)
	}

	source, err := renderRules(cfg.out, file)
	if err != nil {
		return err
	}

	if err := ensureDir(cfg.out); err != nil {
		return err
	}

	if err := os.WriteFile(cfg.out, source, 0o644); err != nil {
		return err
	}

	// reload through the runtime loader to validate the output
	if _, err := humanfmt.NewRulesLoader(cfg.out).Load(); err != nil {
		return fmt.Errorf("generated rules do not load: %w", err)
	}
	return nil
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetDirFilter("main")
	decoder.SetSectionFilter("numbers", "dates")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

// findLDML returns the resolved LDML of the closest available locale.
// Without a root locale inheritance cannot be resolved and raw data is used.
func findLDML(data *cldr.CLDR, locale string) *cldr.LDML {
	if data == nil {
		return nil
	}
	resolvable := data.RawLDML("root") != nil

	candidate := strings.ReplaceAll(locale, "-", "_")
	for candidate != "" {
		if resolvable {
			if ldml, err := data.LDML(candidate); err == nil {
				return ldml
			}
		} else if ldml := data.RawLDML(candidate); ldml != nil {
			return ldml
		}
		idx := strings.LastIndex(candidate, "_")
		if idx < 0 {
			break
		}
		candidate = candidate[:idx]
	}
	return data.RawLDML("root")
}

func extractRules(ldml *cldr.LDML) humanfmt.FormattingRules {
	var rules humanfmt.FormattingRules
	extractNumberSymbols(ldml, &rules)
	extractDayPeriods(ldml, &rules)
	rules.Date.Pattern = datePattern(shortDatePattern(ldml))
	rules.Time.ZoneNames = extractZoneNames(ldml)
	return rules
}

func extractNumberSymbols(ldml *cldr.LDML, rules *humanfmt.FormattingRules) {
	if ldml.Numbers == nil {
		return
	}

	for _, symbols := range ldml.Numbers.Symbols {
		if symbols == nil || (symbols.NumberSystem != "" && symbols.NumberSystem != "latn") {
			continue
		}
		if symbols.Alt != "" {
			continue
		}
		rules.Number.DecimalSep = firstSymbol(symbols.Decimal)
		rules.Number.ThousandSep = firstSymbol(symbols.Group)
		rules.Number.MinusSign = firstSymbol(symbols.MinusSign)
		rules.Number.Infinity = firstSymbol(symbols.Infinity)
		for _, sep := range symbols.TimeSeparator {
			if sep != nil && sep.Alt == "" {
				rules.Time.Separator = sep.Data()
				break
			}
		}
		return
	}
}

func firstSymbol(list []*symbol) string {
	for _, entry := range list {
		if entry == nil || entry.Alt != "" {
			continue
		}
		return entry.Data()
	}
	return ""
}

// extractZoneNames collects short zone names keyed by Go abbreviation.
// Zone entries are applied after metazones so they win.
func extractZoneNames(ldml *cldr.LDML) map[string]string {
	if ldml.Dates == nil || ldml.Dates.TimeZoneNames == nil {
		return nil
	}

	names := make(map[string]string)
	for _, metazone := range ldml.Dates.TimeZoneNames.Metazone {
		if metazone == nil {
			continue
		}
		if abbr, ok := metazoneAbbreviations[metazone.Type]; ok {
			addShortNames(names, abbr, metazone.Short)
		}
	}
	for _, zone := range ldml.Dates.TimeZoneNames.Zone {
		if zone == nil {
			continue
		}
		if abbr, ok := zoneAbbreviations[zone.Type]; ok {
			addShortNames(names, abbr, zone.Short)
		}
	}

	if len(names) == 0 {
		return nil
	}
	return names
}

func addShortNames(names map[string]string, abbr [2]string, short []*shortZoneNames) {
	for _, entry := range short {
		if entry == nil || entry.Alt != "" {
			continue
		}
		if name := firstName(entry.Standard); name != "" && abbr[0] != "" {
			names[abbr[0]] = name
		}
		if name := firstName(entry.Daylight); name != "" && abbr[1] != "" {
			names[abbr[1]] = name
		}
	}
}

func firstName(list []*cldr.Common) string {
	for _, entry := range list {
		if entry == nil || entry.Alt != "" {
			continue
		}
		if name := entry.Data(); name != cldrNoName {
			return name
		}
		return ""
	}
	return ""
}

func gregorian(ldml *cldr.LDML) *cldr.Calendar {
	if ldml.Dates == nil || ldml.Dates.Calendars == nil {
		return nil
	}
	for _, calendar := range ldml.Dates.Calendars.Calendar {
		if calendar != nil && calendar.Type == "gregorian" {
			return calendar
		}
	}
	return nil
}

func extractDayPeriods(ldml *cldr.LDML, rules *humanfmt.FormattingRules) {
	calendar := gregorian(ldml)
	if calendar == nil || calendar.DayPeriods == nil {
		return
	}

	for _, context := range calendar.DayPeriods.DayPeriodContext {
		if context == nil || context.Type != "format" {
			continue
		}
		for _, width := range context.DayPeriodWidth {
			if width == nil || width.Type != "abbreviated" {
				continue
			}
			for _, period := range width.DayPeriod {
				if period == nil || period.Alt != "" {
					continue
				}
				switch period.Type {
				case "am":
					rules.Time.AM = period.Data()
				case "pm":
					rules.Time.PM = period.Data()
				}
			}
		}
	}
}

func shortDatePattern(ldml *cldr.LDML) string {
	calendar := gregorian(ldml)
	if calendar == nil || calendar.DateFormats == nil {
		return ""
	}

	for _, length := range calendar.DateFormats.DateFormatLength {
		if length == nil || length.Type != "short" {
			continue
		}
		for _, format := range length.DateFormat {
			if format == nil {
				continue
			}
			for _, pattern := range format.Pattern {
				if pattern != nil && pattern.Alt == "" {
					return pattern.Data()
				}
			}
		}
	}
	return ""
}

// datePattern rewrites a CLDR date pattern such as "dd.MM.yy" into the
// placeholder form "{day}.{month}.{year}". Patterns missing a field yield "".
func datePattern(cldrPattern string) string {
	var b strings.Builder
	runes := []rune(cldrPattern)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\'':
			end := i + 1
			for end < len(runes) && runes[end] != '\'' {
				end++
			}
			b.WriteString(string(runes[i+1 : end]))
			i = end
		case r == 'd' || r == 'M' || r == 'L' || r == 'y':
			for i+1 < len(runes) && runes[i+1] == r {
				i++
			}
			switch r {
			case 'd':
				b.WriteString("{day}")
			case 'y':
				b.WriteString("{year}")
			default:
				b.WriteString("{month}")
			}
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			// other calendar fields are not rendered
		default:
			b.WriteRune(r)
		}
	}

	pattern := strings.TrimSpace(b.String())
	for _, placeholder := range []string{"{day}", "{month}", "{year}"} {
		if strings.Count(pattern, placeholder) != 1 {
			return ""
		}
	}
	return pattern
}

func renderRules(path string, file humanfmt.RulesFile) ([]byte, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		out, err := json.MarshalIndent(file, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case ".yaml", ".yml":
		var buf bytes.Buffer
		buf.WriteString("# Code generated by humanfmt-rules. DO NOT EDIT.\n")
		buf.WriteString("# locales: " + strings.Join(sortedLocales(file), ", ") + "\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(file); err != nil {
			return nil, err
		}
		if err := encoder.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: extension %q", humanfmt.ErrUnsupportedRulesFile, ext)
	}
}

func sortedLocales(file humanfmt.RulesFile) []string {
	locales := make([]string, 0, len(file.FormattingRules))
	for locale := range file.FormattingRules {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
