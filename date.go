package humanfmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	OpFormatDate            = "format_date"
	OpFormatDateTime        = "format_datetime"
	OpFormatDateTimeSeconds = "format_datetime_seconds"
	OpFormatTime            = "format_time"
	OpFormatTimeSeconds     = "format_time_seconds"
	OpIsSameDayAsToday      = "is_same_day_as_today"
	OpTimeAgo               = "time_ago"
)

type timeOptions struct {
	showTimeZone bool
}

// TimeOption tunes the time-only formatters.
type TimeOption func(*timeOptions)

// WithTimeZone toggles the short zone label suffix.
func WithTimeZone(show bool) TimeOption {
	return func(o *timeOptions) {
		o.showTimeZone = show
	}
}

// WithoutTimeZone drops the short zone label suffix.
func WithoutTimeZone() TimeOption {
	return WithTimeZone(false)
}

func buildTimeOptions(opts []TimeOption) timeOptions {
	o := timeOptions{showTimeZone: true}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	return o
}

// FormatDate renders the calendar date with two-digit day and month.
func (f *Formatter) FormatDate(t *time.Time, useUTC bool, setting FormatSetting) string {
	return f.runHooked(OpFormatDate, setting, []any{t, useUTC}, func(rules *FormattingRules) string {
		if isUnknownTime(t) {
			return Placeholder
		}
		return renderDate(t.In(f.zone(useUTC)), rules.Date)
	})
}

// FormatDateTime renders date, minutes precision time and the zone label.
func (f *Formatter) FormatDateTime(t *time.Time, useUTC bool, setting FormatSetting) string {
	return f.runHooked(OpFormatDateTime, setting, []any{t, useUTC}, func(rules *FormattingRules) string {
		if isUnknownTime(t) {
			return Placeholder
		}
		return f.renderDateTime(t.In(f.zone(useUTC)), rules, setting, false)
	})
}

// FormatDateTimeSeconds is FormatDateTime with seconds.
func (f *Formatter) FormatDateTimeSeconds(t *time.Time, useUTC bool, setting FormatSetting) string {
	return f.runHooked(OpFormatDateTimeSeconds, setting, []any{t, useUTC}, func(rules *FormattingRules) string {
		if isUnknownTime(t) {
			return Placeholder
		}
		return f.renderDateTime(t.In(f.zone(useUTC)), rules, setting, true)
	})
}

// FormatTime renders hours and minutes, followed by the zone label unless
// WithoutTimeZone is passed.
func (f *Formatter) FormatTime(t *time.Time, useUTC bool, setting FormatSetting, opts ...TimeOption) string {
	o := buildTimeOptions(opts)
	return f.runHooked(OpFormatTime, setting, []any{t, useUTC, o.showTimeZone}, func(rules *FormattingRules) string {
		if isUnknownTime(t) {
			return Placeholder
		}
		return renderTime(t.In(f.zone(useUTC)), rules.Time, setting.Uses12HourClock(), false, o.showTimeZone)
	})
}

// FormatTimeSeconds is FormatTime with seconds.
func (f *Formatter) FormatTimeSeconds(t *time.Time, useUTC bool, setting FormatSetting, opts ...TimeOption) string {
	o := buildTimeOptions(opts)
	return f.runHooked(OpFormatTimeSeconds, setting, []any{t, useUTC, o.showTimeZone}, func(rules *FormattingRules) string {
		if isUnknownTime(t) {
			return Placeholder
		}
		return renderTime(t.In(f.zone(useUTC)), rules.Time, setting.Uses12HourClock(), true, o.showTimeZone)
	})
}

// IsSameDayAsToday compares calendar dates, not elapsed time, in the zone
// selected by useUTC. Unknown instants are never today.
func (f *Formatter) IsSameDayAsToday(t *time.Time, useUTC bool) bool {
	if isUnknownTime(t) {
		return false
	}
	loc := f.zone(useUTC)
	y1, m1, d1 := t.In(loc).Date()
	y2, m2, d2 := f.clock.Now().In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// TimeAgo renders the distance to now as "N units ago" or "in N units".
func (f *Formatter) TimeAgo(t *time.Time) string {
	return f.runHooked(OpTimeAgo, FormatEnUS, []any{t}, func(*FormattingRules) string {
		if isUnknownTime(t) {
			return Placeholder
		}
		return f.relative.FormatSeconds(elapsedSeconds(f.clock.Now(), *t))
	})
}

// elapsedSeconds floors (now - t) to whole seconds at millisecond precision.
func elapsedSeconds(now, t time.Time) int64 {
	diff := now.UnixMilli() - t.UnixMilli()
	seconds := diff / 1000
	if diff%1000 != 0 && diff < 0 {
		seconds--
	}
	return seconds
}

func (f *Formatter) renderDateTime(t time.Time, rules *FormattingRules, setting FormatSetting, seconds bool) string {
	return renderDate(t, rules.Date) +
		rules.Date.DateTimeSeparator +
		renderTime(t, rules.Time, setting.Uses12HourClock(), seconds, true)
}

func renderDate(t time.Time, rules DatePatternRules) string {
	replacer := strings.NewReplacer(
		"{day}", twoDigits(t.Day()),
		"{month}", twoDigits(int(t.Month())),
		"{year}", strconv.Itoa(t.Year()),
	)
	return replacer.Replace(rules.Pattern)
}

func renderTime(t time.Time, rules TimeFormatRules, hour12, seconds, zone bool) string {
	hour := t.Hour()
	if hour12 {
		hour %= 12
		if hour == 0 {
			hour = 12
		}
	}

	var b strings.Builder
	b.WriteString(twoDigits(hour))
	b.WriteString(rules.Separator)
	b.WriteString(twoDigits(t.Minute()))
	if seconds {
		b.WriteString(rules.Separator)
		b.WriteString(twoDigits(t.Second()))
	}

	if hour12 {
		b.WriteString(" ")
		if t.Hour() < 12 {
			b.WriteString(rules.AM)
		} else {
			b.WriteString(rules.PM)
		}
	}

	if zone {
		b.WriteString(" ")
		b.WriteString(zoneLabel(t, rules.ZoneNames))
	}

	return b.String()
}

// zoneAbbreviationOffsets pins abbreviations the zone database reuses across
// regions (CST is both US Central and China) to the offset they name.
var zoneAbbreviationOffsets = map[string]int{
	"UTC":  0,
	"GMT":  0,
	"WET":  0,
	"WEST": 1 * 3600,
	"BST":  1 * 3600,
	"CET":  1 * 3600,
	"CEST": 2 * 3600,
	"EET":  2 * 3600,
	"EEST": 3 * 3600,
	"EST":  -5 * 3600,
	"EDT":  -4 * 3600,
	"CST":  -6 * 3600,
	"CDT":  -5 * 3600,
	"MST":  -7 * 3600,
	"MDT":  -6 * 3600,
	"PST":  -8 * 3600,
	"PDT":  -7 * 3600,
	"AKST": -9 * 3600,
	"AKDT": -8 * 3600,
	"HST":  -10 * 3600,
	"HDT":  -9 * 3600,
}

// zoneLabel returns the locale's short name for the zone abbreviation, or a
// GMT offset when the locale has none.
func zoneLabel(t time.Time, names map[string]string) string {
	abbr, offset := t.Zone()
	if label, ok := names[abbr]; ok && label != "" {
		if want, pinned := zoneAbbreviationOffsets[abbr]; !pinned || want == offset {
			return label
		}
	}
	return gmtOffsetLabel(offset)
}

func gmtOffsetLabel(offset int) string {
	if offset == 0 {
		return "GMT"
	}

	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}

	hours := offset / 3600
	minutes := (offset % 3600) / 60
	if minutes == 0 {
		return fmt.Sprintf("GMT%s%d", sign, hours)
	}
	return fmt.Sprintf("GMT%s%d:%02d", sign, hours, minutes)
}

func twoDigits(v int) string {
	if v >= 0 && v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
