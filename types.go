package humanfmt

import "strings"

// Placeholder is rendered for every unknown input: nil, NaN or the zero time.
const Placeholder = "–"

// FormatSetting selects the number and date grammar used for rendering.
type FormatSetting string

const (
	// FormatUnspecified defers to the host locale, same as FormatSystem.
	FormatUnspecified FormatSetting = ""
	FormatSystem      FormatSetting = "system"
	FormatDeDE        FormatSetting = "de-DE"
	FormatEnEN        FormatSetting = "en-EN"
	FormatEnUS        FormatSetting = "en-US"
)

var formatSettings = []FormatSetting{FormatSystem, FormatDeDE, FormatEnEN, FormatEnUS}

// FormatSettings returns the named settings, FormatUnspecified excluded.
func FormatSettings() []FormatSetting {
	out := make([]FormatSetting, len(formatSettings))
	copy(out, formatSettings)
	return out
}

// ParseFormatSetting maps user input onto a setting. Unknown values are kept
// as-is and resolve through the locale fallback chain when rendering.
func ParseFormatSetting(value string) FormatSetting {
	normalized := normalizeLocale(value)
	for _, setting := range formatSettings {
		if strings.EqualFold(normalized, string(setting)) {
			return setting
		}
	}
	return FormatSetting(normalized)
}

func (s FormatSetting) String() string { return string(s) }

// Uses12HourClock reports whether times render with an AM/PM marker.
// Only en-US does; en-EN and host-derived locales use a 24-hour clock.
func (s FormatSetting) Uses12HourClock() bool {
	return s == FormatEnUS
}

// usesHostLocale reports whether the setting defers to the host environment.
func (s FormatSetting) usesHostLocale() bool {
	return s == FormatUnspecified || s == FormatSystem
}
