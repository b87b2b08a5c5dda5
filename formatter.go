package humanfmt

import (
	"math"
	"sync"
	"time"
)

// Formatter renders instants and numbers for display. It holds no mutable
// state after construction and is safe for concurrent use.
type Formatter struct {
	clock      Clock
	location   *time.Location
	rules      *FormattingRulesProvider
	relative   *RelativeTimeFormatter
	hostLocale string
	hooks      []FormatHook
}

type FormatterOption func(*Formatter)

// WithFormatterClock sets the source of "now"
func WithFormatterClock(clock Clock) FormatterOption {
	return func(f *Formatter) {
		f.clock = clock
	}
}

// WithFormatterLocation sets the zone used when UTC rendering is off
func WithFormatterLocation(loc *time.Location) FormatterOption {
	return func(f *Formatter) {
		f.location = loc
	}
}

func WithFormatterRules(provider *FormattingRulesProvider) FormatterOption {
	return func(f *Formatter) {
		f.rules = provider
	}
}

// WithFormatterHostLocale pins the locale used for FormatSystem and
// FormatUnspecified instead of reading the environment.
func WithFormatterHostLocale(locale string) FormatterOption {
	return func(f *Formatter) {
		f.hostLocale = normalizePOSIXLocale(locale)
	}
}

func WithFormatterHooks(hooks ...FormatHook) FormatterOption {
	return func(f *Formatter) {
		f.hooks = append(f.hooks, hooks...)
	}
}

var sharedRelativeTime = sync.OnceValue(NewRelativeTimeFormatter)

// NewFormatter builds a formatter. The host locale is read once here.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(f)
	}

	if f.clock == nil {
		f.clock = RealClock{}
	}
	if f.location == nil {
		f.location = time.Local
	}
	if f.rules == nil {
		f.rules = builtinRulesProvider()
	}
	if f.relative == nil {
		f.relative = sharedRelativeTime()
	}
	if f.hostLocale == "" {
		f.hostLocale = detectHostLocale(nil)
	}
	f.hooks = filterHooks(f.hooks)

	return f
}

// Locale returns the locale identifier a setting renders with.
func (f *Formatter) Locale(setting FormatSetting) string {
	if setting.usesHostLocale() {
		return f.hostLocale
	}
	return normalizeLocale(string(setting))
}

// Now reports the formatter's current time.
func (f *Formatter) Now() time.Time {
	return f.clock.Now()
}

func (f *Formatter) rulesFor(setting FormatSetting) *FormattingRules {
	return f.rules.Get(f.Locale(setting))
}

func (f *Formatter) zone(useUTC bool) *time.Location {
	if useUTC {
		return time.UTC
	}
	return f.location
}

func isUnknownTime(t *time.Time) bool {
	return t == nil || t.IsZero()
}

func isUnknownNumber(value *float64) bool {
	return value == nil || math.IsNaN(*value)
}

var defaultFormatter = sync.OnceValue(func() *Formatter { return NewFormatter() })

// Default returns the process-wide formatter used by the package functions.
func Default() *Formatter {
	return defaultFormatter()
}

func FormatDate(t *time.Time, useUTC bool, setting FormatSetting) string {
	return Default().FormatDate(t, useUTC, setting)
}

func FormatDateTime(t *time.Time, useUTC bool, setting FormatSetting) string {
	return Default().FormatDateTime(t, useUTC, setting)
}

func FormatDateTimeSeconds(t *time.Time, useUTC bool, setting FormatSetting) string {
	return Default().FormatDateTimeSeconds(t, useUTC, setting)
}

func FormatTime(t *time.Time, useUTC bool, setting FormatSetting, opts ...TimeOption) string {
	return Default().FormatTime(t, useUTC, setting, opts...)
}

func FormatTimeSeconds(t *time.Time, useUTC bool, setting FormatSetting, opts ...TimeOption) string {
	return Default().FormatTimeSeconds(t, useUTC, setting, opts...)
}

func IsSameDayAsToday(t *time.Time, useUTC bool) bool {
	return Default().IsSameDayAsToday(t, useUTC)
}

func TimeAgo(t *time.Time) string {
	return Default().TimeAgo(t)
}

func FormatNumber(value *float64, setting FormatSetting, opts ...NumberOption) string {
	return Default().FormatNumber(value, setting, opts...)
}

func FormatByteNumber(bytes *float64, setting FormatSetting, binary bool, opts ...NumberOption) string {
	return Default().FormatByteNumber(bytes, setting, binary, opts...)
}

func FormatLargeNumber(value *float64, setting FormatSetting, opts ...NumberOption) string {
	return Default().FormatLargeNumber(value, setting, opts...)
}

// Float returns a pointer to v, for passing literals to the number formatters.
func Float(v float64) *float64 {
	return &v
}

// Time returns a pointer to t, for passing values to the date formatters.
func Time(t time.Time) *time.Time {
	return &t
}
