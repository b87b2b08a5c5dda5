package humanfmt

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	OpFormatNumber      = "format_number"
	OpFormatByteNumber  = "format_byte_number"
	OpFormatLargeNumber = "format_large_number"
)

// maxFractionDigitsLimit bounds requested precision.
const maxFractionDigitsLimit = 20

var (
	decimalByteUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}
	binaryByteUnits  = []string{"Bytes", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB", "YiB"}
)

type numberOptions struct {
	maxFraction int
	minFraction int
	separator   string
}

// NumberOption tunes a single number formatting call.
type NumberOption func(*numberOptions)

// WithMaxFractionDigits caps the rendered fraction digits.
func WithMaxFractionDigits(n int) NumberOption {
	return func(o *numberOptions) {
		o.maxFraction = n
	}
}

// WithMinFractionDigits pads the fraction with zeros up to n digits.
func WithMinFractionDigits(n int) NumberOption {
	return func(o *numberOptions) {
		o.minFraction = n
	}
}

// WithFractionDigits sets both bounds at once.
func WithFractionDigits(minDigits, maxDigits int) NumberOption {
	return func(o *numberOptions) {
		o.minFraction = minDigits
		o.maxFraction = maxDigits
	}
}

// WithUnitSeparator sets the text between a large number and its k/m suffix.
func WithUnitSeparator(sep string) NumberOption {
	return func(o *numberOptions) {
		o.separator = sep
	}
}

func buildNumberOptions(defaults numberOptions, opts []NumberOption) numberOptions {
	o := defaults
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	return o
}

// FormatNumber renders value with locale grouping, 0 to 2 fraction digits
// unless overridden.
func (f *Formatter) FormatNumber(value *float64, setting FormatSetting, opts ...NumberOption) string {
	o := buildNumberOptions(numberOptions{maxFraction: 2, minFraction: 0}, opts)

	return f.runHooked(OpFormatNumber, setting, []any{value}, func(rules *FormattingRules) string {
		if isUnknownNumber(value) {
			return Placeholder
		}
		return formatDecimal(*value, rules.Number, o.minFraction, o.maxFraction)
	})
}

// FormatByteNumber scales bytes to the largest fitting decimal (1000) or
// binary (1024) unit. Values below one unit step render as whole Bytes.
func (f *Formatter) FormatByteNumber(bytes *float64, setting FormatSetting, binary bool, opts ...NumberOption) string {
	o := buildNumberOptions(numberOptions{maxFraction: 2, minFraction: 2}, opts)

	return f.runHooked(OpFormatByteNumber, setting, []any{bytes, binary}, func(rules *FormattingRules) string {
		if isUnknownNumber(bytes) || *bytes < 0 {
			return Placeholder
		}

		base, units := 1000.0, decimalByteUnits
		if binary {
			base, units = 1024.0, binaryByteUnits
		}

		value := *bytes
		// log(0) is -Inf, which lands in the Bytes branch with sub-base values.
		i := math.Floor(math.Log(value) / math.Log(base))
		if i < 1 {
			return formatDecimal(value, rules.Number, 0, 0) + " " + units[0]
		}

		index := int(math.Min(i, float64(len(units)-1)))
		scaled := value / math.Pow(base, float64(index))
		return formatDecimal(scaled, rules.Number, o.minFraction, o.maxFraction) + " " + units[index]
	})
}

// FormatLargeNumber abbreviates thousands and millions with k and m suffixes
// at one fraction digit. Smaller values and +Inf render like FormatNumber.
func (f *Formatter) FormatLargeNumber(value *float64, setting FormatSetting, opts ...NumberOption) string {
	o := buildNumberOptions(numberOptions{maxFraction: 2, minFraction: 0, separator: " "}, opts)

	return f.runHooked(OpFormatLargeNumber, setting, []any{value}, func(rules *FormattingRules) string {
		if isUnknownNumber(value) {
			return Placeholder
		}

		v := *value
		switch {
		case v < 1_000 || math.IsInf(v, 1):
			return formatDecimal(v, rules.Number, o.minFraction, o.maxFraction)
		case v < 1_000_000:
			return formatDecimal(v/1_000, rules.Number, 1, 1) + o.separator + "k"
		default:
			return formatDecimal(v/1_000_000, rules.Number, 1, 1) + o.separator + "m"
		}
	})
}

// formatDecimal rounds half away from zero at maxFraction digits, trims
// trailing zeros down to minFraction and applies the locale symbols.
func formatDecimal(value float64, rules NumberRules, minFraction, maxFraction int) string {
	minFraction, maxFraction = clampFractionDigits(minFraction, maxFraction)

	if math.IsInf(value, 0) {
		if value < 0 {
			return rules.MinusSign + rules.Infinity
		}
		return rules.Infinity
	}

	rounded := decimal.NewFromFloat(value).Round(int32(maxFraction))
	// the sign survives rounding to zero, as in "-0"
	negative := math.Signbit(value)

	integer, fraction, _ := strings.Cut(rounded.Abs().StringFixed(int32(maxFraction)), ".")
	for len(fraction) > minFraction && strings.HasSuffix(fraction, "0") {
		fraction = fraction[:len(fraction)-1]
	}

	var b strings.Builder
	if negative {
		b.WriteString(rules.MinusSign)
	}
	writeGrouped(&b, integer, rules.ThousandSep)
	if fraction != "" {
		b.WriteString(rules.DecimalSep)
		b.WriteString(fraction)
	}
	return b.String()
}

func clampFractionDigits(minFraction, maxFraction int) (int, int) {
	minFraction = max(0, min(minFraction, maxFractionDigitsLimit))
	maxFraction = max(0, min(maxFraction, maxFractionDigitsLimit))
	if maxFraction < minFraction {
		maxFraction = minFraction
	}
	return minFraction, maxFraction
}

// writeGrouped inserts sep every three digits from the right.
func writeGrouped(b *strings.Builder, digits, sep string) {
	if len(digits) <= 3 || sep == "" {
		b.WriteString(digits)
		return
	}
	for i, digit := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(digit)
	}
}
