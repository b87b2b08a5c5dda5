package humanfmt

// FormattingRules contains all locale-specific formatting patterns
type FormattingRules struct {
	Locale string           `json:"locale" yaml:"locale"`
	Number NumberRules      `json:"number" yaml:"number"`
	Date   DatePatternRules `json:"date" yaml:"date"`
	Time   TimeFormatRules  `json:"time" yaml:"time"`
}

// NumberRules defines digit grouping and symbols
type NumberRules struct {
	DecimalSep  string `json:"decimal_separator" yaml:"decimal_separator"`
	ThousandSep string `json:"thousand_separator" yaml:"thousand_separator"`
	MinusSign   string `json:"minus_sign" yaml:"minus_sign"`
	Infinity    string `json:"infinity" yaml:"infinity"`
}

// DatePatternRules defines how dates are formatted
type DatePatternRules struct {
	// Pattern uses placeholders: {day}, {month}, {year}
	Pattern string `json:"pattern" yaml:"pattern"`
	// DateTimeSeparator joins the date and time portions.
	DateTimeSeparator string `json:"date_time_separator" yaml:"date_time_separator"`
}

// TimeFormatRules defines time formatting
type TimeFormatRules struct {
	Separator string `json:"separator" yaml:"separator"`
	AM        string `json:"am" yaml:"am"`
	PM        string `json:"pm" yaml:"pm"`

	// ZoneNames maps Go zone abbreviations (CEST, EDT, UTC) to the short
	// label shown for this locale. Zones without an entry render as GMT±H.
	ZoneNames map[string]string `json:"zone_names,omitempty" yaml:"zone_names,omitempty"`
}

// RulesFile is the on-disk shape read by RulesLoader, keyed by locale.
type RulesFile struct {
	FormattingRules map[string]FormattingRules `json:"formatting_rules" yaml:"formatting_rules"`
}

// FormattingDataLoader loads formatting rules from an external source
type FormattingDataLoader interface {
	Load() (map[string]FormattingRules, error)
}

// withDefaults fills empty fields from base so partial overrides stay usable.
func (r FormattingRules) withDefaults(base FormattingRules) FormattingRules {
	out := r
	if out.Number.DecimalSep == "" {
		out.Number.DecimalSep = base.Number.DecimalSep
	}
	if out.Number.ThousandSep == "" {
		out.Number.ThousandSep = base.Number.ThousandSep
	}
	if out.Number.MinusSign == "" {
		out.Number.MinusSign = base.Number.MinusSign
	}
	if out.Number.Infinity == "" {
		out.Number.Infinity = base.Number.Infinity
	}
	if out.Date.Pattern == "" {
		out.Date.Pattern = base.Date.Pattern
	}
	if out.Date.DateTimeSeparator == "" {
		out.Date.DateTimeSeparator = base.Date.DateTimeSeparator
	}
	if out.Time.Separator == "" {
		out.Time.Separator = base.Time.Separator
	}
	if out.Time.AM == "" {
		out.Time.AM = base.Time.AM
	}
	if out.Time.PM == "" {
		out.Time.PM = base.Time.PM
	}
	if out.Time.ZoneNames == nil {
		out.Time.ZoneNames = base.Time.ZoneNames
	}
	return out
}
