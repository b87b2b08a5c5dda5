package humanfmt

import (
	"fmt"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// RelativeTimeUnit is the unit a relative phrase is expressed in.
type RelativeTimeUnit string

const (
	UnitSecond RelativeTimeUnit = "second"
	UnitMinute RelativeTimeUnit = "minute"
	UnitHour   RelativeTimeUnit = "hour"
	UnitDay    RelativeTimeUnit = "day"
	UnitMonth  RelativeTimeUnit = "month"
	UnitYear   RelativeTimeUnit = "year"
)

// Months are 30 days and years 360 days, exactly.
const (
	minuteInSeconds int64 = 60
	hourInSeconds         = minuteInSeconds * 60
	dayInSeconds          = hourInSeconds * 24
	monthInSeconds        = dayInSeconds * 30
	yearInSeconds         = dayInSeconds * 360
)

var relativeTimeUnits = []RelativeTimeUnit{UnitSecond, UnitMinute, UnitHour, UnitDay, UnitMonth, UnitYear}

// RelativeTimeFormatter renders English "N units ago" / "in N units" phrases
// with CLDR plural selection. It is immutable after construction and safe
// for concurrent use.
type RelativeTimeFormatter struct {
	printer *message.Printer
}

// NewRelativeTimeFormatter builds the phrase catalog. It panics only if the
// static catalog is malformed.
func NewRelativeTimeFormatter() *RelativeTimeFormatter {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))

	for _, unit := range relativeTimeUnits {
		name := string(unit)
		past := plural.Selectf(1, "%d",
			plural.One, "%d "+name+" ago",
			plural.Other, "%d "+name+"s ago")
		future := plural.Selectf(1, "%d",
			plural.One, "in %d "+name,
			plural.Other, "in %d "+name+"s")

		if err := builder.Set(language.English, pastKey(unit), past); err != nil {
			panic(fmt.Sprintf("humanfmt: relative time catalog %s: %v", unit, err))
		}
		if err := builder.Set(language.English, futureKey(unit), future); err != nil {
			panic(fmt.Sprintf("humanfmt: relative time catalog %s: %v", unit, err))
		}
	}

	return &RelativeTimeFormatter{
		printer: message.NewPrinter(language.English, message.Catalog(builder)),
	}
}

// Format renders value in unit, as a past phrase when past is true.
func (r *RelativeTimeFormatter) Format(value int, unit RelativeTimeUnit, past bool) string {
	if value < 0 {
		value = -value
	}
	key := futureKey(unit)
	if past {
		key = pastKey(unit)
	}
	return r.printer.Sprintf(key, value)
}

// FormatSeconds renders a signed elapsed duration in whole seconds. Positive
// values lie in the past; zero and negative values read as future.
func (r *RelativeTimeFormatter) FormatSeconds(diff int64) string {
	magnitude := diff
	if magnitude < 0 {
		magnitude = -magnitude
	}
	unit := relativeUnitFor(magnitude)
	return r.Format(int(convertRelativeUnit(magnitude, unit)), unit, diff > 0)
}

func relativeUnitFor(magnitude int64) RelativeTimeUnit {
	switch {
	case magnitude < minuteInSeconds:
		return UnitSecond
	case magnitude < hourInSeconds:
		return UnitMinute
	case magnitude < dayInSeconds:
		return UnitHour
	case magnitude < monthInSeconds:
		return UnitDay
	case magnitude < yearInSeconds:
		return UnitMonth
	default:
		return UnitYear
	}
}

func convertRelativeUnit(magnitude int64, unit RelativeTimeUnit) int64 {
	switch unit {
	case UnitMinute:
		return magnitude / minuteInSeconds
	case UnitHour:
		return magnitude / hourInSeconds
	case UnitDay:
		return magnitude / dayInSeconds
	case UnitMonth:
		return magnitude / monthInSeconds
	case UnitYear:
		return magnitude / yearInSeconds
	default:
		return magnitude
	}
}

func pastKey(unit RelativeTimeUnit) string {
	return "%d " + string(unit) + "(s) ago"
}

func futureKey(unit RelativeTimeUnit) string {
	return "in %d " + string(unit) + "(s)"
}
