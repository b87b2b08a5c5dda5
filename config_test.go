package humanfmt

import (
	"errors"
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.Location != time.Local {
		t.Fatalf("expected local zone, got %v", cfg.Location)
	}
	if _, ok := cfg.Clock.(RealClock); !ok {
		t.Fatalf("expected RealClock, got %T", cfg.Clock)
	}
	if cfg.Resolver == nil || cfg.RulesProvider() == nil {
		t.Fatalf("expected resolver and rules provider")
	}
	if cfg.BuildFormatter() != cfg.BuildFormatter() {
		t.Fatalf("expected BuildFormatter to cache the formatter")
	}
}

func TestConfigBuildFormatter(t *testing.T) {
	cfg, err := NewConfig(
		WithLocationName("UTC"),
		WithClock(FixedClock(fixedNow)),
		WithHostLocale("de_DE.UTF-8"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	f := cfg.BuildFormatter()
	instant := Time(time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC))

	if got := f.FormatDateTime(instant, false, FormatSystem); got != "15.06.2024, 14:30 UTC" {
		t.Fatalf("unexpected datetime %q", got)
	}
	if got := f.TimeAgo(Time(fixedNow.Add(-2 * time.Hour))); got != "2 hours ago" {
		t.Fatalf("unexpected time ago %q", got)
	}
}

func TestConfigOptionErrors(t *testing.T) {
	if _, err := NewConfig(WithLocation(nil)); err == nil {
		t.Fatalf("expected nil location to fail")
	}
	if _, err := NewConfig(WithLocationName("Nowhere/Special")); err == nil {
		t.Fatalf("expected unknown zone to fail")
	}
	if _, err := NewConfig(WithRulesOverride("", FormattingRules{})); !errors.Is(err, ErrInvalidRules) {
		t.Fatalf("expected ErrInvalidRules for empty locale, got %v", err)
	}

	bad := FormattingRules{Number: NumberRules{DecimalSep: ",", ThousandSep: ","}}
	if _, err := NewConfig(WithRulesOverride("fr", bad)); !errors.Is(err, ErrInvalidRules) {
		t.Fatalf("expected ErrInvalidRules, got %v", err)
	}
}

func TestConfigRulesOverride(t *testing.T) {
	cfg, err := NewConfig(
		WithLocation(time.UTC),
		WithHostLocale("fr-FR"),
		WithRulesOverride("fr", FormattingRules{
			Number: NumberRules{DecimalSep: ",", ThousandSep: " "},
			Date:   DatePatternRules{Pattern: "{day}/{month}/{year}", DateTimeSeparator: " "},
		}),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	f := cfg.BuildFormatter()
	if got := f.FormatNumber(Float(1234567.891), FormatSystem); got != "1 234 567,89" {
		t.Fatalf("unexpected number %q", got)
	}

	instant := Time(time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC))
	if got := f.FormatDateTime(instant, true, FormatSystem); got != "15/06/2024 14:30 UTC" {
		t.Fatalf("unexpected datetime %q", got)
	}
}

func TestConfigRulesFilesThenOverrides(t *testing.T) {
	path := writeRulesFile(t, "rules.yaml", `
formatting_rules:
  de:
    number:
      decimal_separator: ","
      thousand_separator: " "
  nl:
    number:
      decimal_separator: ","
      thousand_separator: "."
    date:
      pattern: "{day}-{month}-{year}"
`)

	cfg, err := NewConfig(
		WithLocation(time.UTC),
		WithRulesFiles(path),
		WithRulesOverride("nl", FormattingRules{Date: DatePatternRules{Pattern: "{day}.{month}.{year}"}}),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	f := cfg.BuildFormatter()
	if got := f.FormatNumber(Float(1234567), FormatDeDE); got != "1 234 567" {
		t.Fatalf("expected file rules for de, got %q", got)
	}

	instant := Time(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC))
	if got := f.FormatDate(instant, true, FormatSetting("nl-NL")); got != "15.06.2024" {
		t.Fatalf("expected code override to win, got %q", got)
	}
}

func TestConfigRulesFileForLocale(t *testing.T) {
	path := writeRulesFile(t, "de.json", `{"formatting_rules": {"de": {"number": {"decimal_separator": ".", "thousand_separator": "'"}}}}`)

	cfg, err := NewConfig(WithRulesFile("de", path))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if got := cfg.BuildFormatter().FormatNumber(Float(1234.5), FormatDeDE); got != "1'234.5" {
		t.Fatalf("unexpected number %q", got)
	}

	if _, err := NewConfig(WithRulesFiles(path + ".missing")); err == nil {
		t.Fatalf("expected missing rules file to fail")
	}
}

type staticLoader map[string]FormattingRules

func (l staticLoader) Load() (map[string]FormattingRules, error) { return l, nil }

type failingLoader struct{}

func (failingLoader) Load() (map[string]FormattingRules, error) {
	return nil, errors.New("boom")
}

func TestConfigRulesLoader(t *testing.T) {
	cfg, err := NewConfig(WithRulesLoader(staticLoader{
		"it": {Number: NumberRules{DecimalSep: ",", ThousandSep: "."}},
	}))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if got := cfg.BuildFormatter().FormatNumber(Float(-1234.5), FormatSetting("it-IT")); got != "-1.234,5" {
		t.Fatalf("unexpected number %q", got)
	}

	if _, err := NewConfig(WithRulesLoader(failingLoader{})); err == nil {
		t.Fatalf("expected loader error")
	}
}

func TestConfigFallback(t *testing.T) {
	cfg, err := NewConfig(WithFallback("es-MX", "de"))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if got := cfg.RulesProvider().Get("es-MX").Locale; got != "de" {
		t.Fatalf("expected de fallback, got %q", got)
	}
	if got := cfg.Resolver.Resolve("es-MX"); len(got) != 1 || got[0] != "de" {
		t.Fatalf("unexpected chain %v", got)
	}
}

func TestConfigHooks(t *testing.T) {
	var ops []string
	cfg, err := NewConfig(
		WithLocation(time.UTC),
		WithHooks(nil, FormatHookFuncs{After: func(ctx *FormatHookContext) {
			ops = append(ops, ctx.Operation)
		}}),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	f := cfg.BuildFormatter()
	f.FormatNumber(Float(1), FormatEnUS)
	f.FormatDate(nil, true, FormatEnUS)

	if len(ops) != 2 || ops[0] != OpFormatNumber || ops[1] != OpFormatDate {
		t.Fatalf("unexpected hook calls %v", ops)
	}
}
