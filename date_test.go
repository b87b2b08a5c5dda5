package humanfmt

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	instant := Time(time.Date(2024, time.June, 15, 14, 30, 45, 0, time.UTC))

	tests := []struct {
		name string
		host string
		set  FormatSetting
		want string
	}{
		{"en-US", "en-US", FormatEnUS, "06/15/2024"},
		{"de-DE", "en-US", FormatDeDE, "15.06.2024"},
		{"en-EN", "en-US", FormatEnEN, "06/15/2024"},
		{"system en-GB", "en_GB.UTF-8", FormatSystem, "15/06/2024"},
		{"system de", "de_DE.UTF-8", FormatSystem, "15.06.2024"},
		{"unspecified", "de_AT", FormatUnspecified, "15.06.2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFormatter(WithFormatterHostLocale(tt.host))
			if got := f.FormatDate(instant, true, tt.set); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatDateUsesSelectedZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	f := newTestFormatter(WithFormatterLocation(tokyo))
	instant := Time(time.Date(2024, time.June, 15, 20, 0, 0, 0, time.UTC))

	if got := f.FormatDate(instant, true, FormatEnUS); got != "06/15/2024" {
		t.Fatalf("utc: expected 06/15/2024, got %q", got)
	}
	if got := f.FormatDate(instant, false, FormatEnUS); got != "06/16/2024" {
		t.Fatalf("local: expected 06/16/2024, got %q", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	f := newTestFormatter()
	afternoon := Time(time.Date(2024, time.June, 15, 14, 30, 45, 0, time.UTC))
	midnight := Time(time.Date(2024, time.June, 15, 0, 5, 9, 0, time.UTC))

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"en-US", f.FormatDateTime(afternoon, true, FormatEnUS), "06/15/2024, 02:30 PM UTC"},
		{"de-DE", f.FormatDateTime(afternoon, true, FormatDeDE), "15.06.2024, 14:30 UTC"},
		{"en-EN", f.FormatDateTime(afternoon, true, FormatEnEN), "06/15/2024, 14:30 UTC"},
		{"en-US seconds", f.FormatDateTimeSeconds(afternoon, true, FormatEnUS), "06/15/2024, 02:30:45 PM UTC"},
		{"de-DE seconds", f.FormatDateTimeSeconds(afternoon, true, FormatDeDE), "15.06.2024, 14:30:45 UTC"},
		{"en-US midnight", f.FormatDateTime(midnight, true, FormatEnUS), "06/15/2024, 12:05 AM UTC"},
		{"system is 24 hour", f.FormatDateTime(afternoon, true, FormatSystem), "06/15/2024, 14:30 UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, tt.got)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	f := newTestFormatter()
	afternoon := Time(time.Date(2024, time.June, 15, 14, 30, 45, 0, time.UTC))
	noon := Time(time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"en-US", f.FormatTime(afternoon, true, FormatEnUS), "02:30 PM UTC"},
		{"en-US without zone", f.FormatTime(afternoon, true, FormatEnUS, WithoutTimeZone()), "02:30 PM"},
		{"de-DE", f.FormatTime(afternoon, true, FormatDeDE), "14:30 UTC"},
		{"de-DE without zone", f.FormatTime(afternoon, true, FormatDeDE, WithTimeZone(false)), "14:30"},
		{"en-US seconds", f.FormatTimeSeconds(afternoon, true, FormatEnUS), "02:30:45 PM UTC"},
		{"en-EN seconds", f.FormatTimeSeconds(afternoon, true, FormatEnEN, WithoutTimeZone()), "14:30:45"},
		{"noon is PM", f.FormatTime(noon, true, FormatEnUS), "12:00 PM UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, tt.got)
			}
		})
	}
}

func TestFormatTimeWithoutZoneHasNoLabel(t *testing.T) {
	zones := []*time.Location{time.UTC, time.FixedZone("CEST", 2*60*60), time.FixedZone("", -3*60*60)}
	instant := Time(time.Date(2024, time.June, 15, 14, 30, 45, 0, time.UTC))

	for _, zone := range zones {
		f := newTestFormatter(WithFormatterLocation(zone))
		for _, setting := range FormatSettings() {
			got := f.FormatTime(instant, false, setting, WithoutTimeZone())
			if strings.Contains(got, "UTC") || strings.Contains(got, "CEST") || strings.Contains(got, "MESZ") || strings.Contains(got, "GMT") {
				t.Fatalf("%s/%s: unexpected zone label in %q", zone, setting, got)
			}
		}
	}
}

func TestZoneLabels(t *testing.T) {
	instant := Time(time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC))

	tests := []struct {
		name    string
		loc     *time.Location
		setting FormatSetting
		want    string
	}{
		{"utc", time.UTC, FormatDeDE, "14:30 UTC"},
		{"german summer time", time.FixedZone("CEST", 2*60*60), FormatDeDE, "16:30 MESZ"},
		{"german winter time", time.FixedZone("CET", 1*60*60), FormatDeDE, "15:30 MEZ"},
		{"us zone in german", time.FixedZone("EDT", -4*60*60), FormatDeDE, "10:30 GMT-4"},
		{"european zone in english", time.FixedZone("CEST", 2*60*60), FormatEnEN, "16:30 GMT+2"},
		{"us zone in english", time.FixedZone("EDT", -4*60*60), FormatEnUS, "10:30 AM EDT"},
		{"reused abbreviation", time.FixedZone("CST", 8*60*60), FormatEnUS, "10:30 PM GMT+8"},
		{"unnamed offset", time.FixedZone("", 5*60*60+30*60), FormatDeDE, "20:00 GMT+5:30"},
		{"numeric name", time.FixedZone("-03", -3*60*60), FormatDeDE, "11:30 GMT-3"},
		{"unnamed zero offset", time.FixedZone("", 0), FormatDeDE, "14:30 GMT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFormatter(WithFormatterLocation(tt.loc))
			if got := f.FormatTime(instant, false, tt.setting); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestZoneLabelsFollowLocale(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("zone database unavailable: %v", err)
	}
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("zone database unavailable: %v", err)
	}
	instant := Time(time.Date(2024, time.June, 15, 12, 5, 9, 0, time.UTC))

	tests := []struct {
		name    string
		loc     *time.Location
		setting FormatSetting
		host    string
		want    string
	}{
		{"berlin de", berlin, FormatDeDE, "en-US", "14:05 MESZ"},
		{"berlin en-US", berlin, FormatEnUS, "en-US", "02:05 PM GMT+2"},
		{"berlin en-GB host", berlin, FormatSystem, "en_GB.UTF-8", "14:05 CEST"},
		{"new york de", newYork, FormatDeDE, "en-US", "08:05 GMT-4"},
		{"new york en-US", newYork, FormatEnUS, "en-US", "08:05 AM EDT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFormatter(WithFormatterLocation(tt.loc), WithFormatterHostLocale(tt.host))
			if got := f.FormatTime(instant, false, tt.setting); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIsSameDayAsToday(t *testing.T) {
	f := newTestFormatter()

	if !f.IsSameDayAsToday(Time(time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)), true) {
		t.Fatalf("expected 2024-06-15T08:00:00Z to be today")
	}
	if f.IsSameDayAsToday(Time(time.Date(2024, time.June, 14, 8, 0, 0, 0, time.UTC)), true) {
		t.Fatalf("expected 2024-06-14T08:00:00Z not to be today")
	}
	if !f.IsSameDayAsToday(Time(time.Date(2024, time.June, 15, 23, 59, 59, 0, time.UTC)), true) {
		t.Fatalf("expected the end of the day to be today")
	}
}

func TestIsSameDayAsTodayComparesInZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	f := newTestFormatter(WithFormatterLocation(tokyo))
	// 2024-06-15T20:00Z is already June 16 in Tokyo, while "now" is June 15 21:00 there.
	late := Time(time.Date(2024, time.June, 15, 20, 0, 0, 0, time.UTC))

	if !f.IsSameDayAsToday(late, true) {
		t.Fatalf("expected same UTC day")
	}
	if f.IsSameDayAsToday(late, false) {
		t.Fatalf("expected a different local day")
	}
}

func TestElapsedSecondsFloors(t *testing.T) {
	tests := []struct {
		offset time.Duration
		want   int64
	}{
		{0, 0},
		{1500 * time.Millisecond, 1},
		{-1500 * time.Millisecond, -2},
		{-500 * time.Millisecond, -1},
		{500 * time.Millisecond, 0},
	}

	for _, tt := range tests {
		if got := elapsedSeconds(fixedNow, fixedNow.Add(-tt.offset)); got != tt.want {
			t.Fatalf("offset %s: expected %d, got %d", tt.offset, tt.want, got)
		}
	}
}
