package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goliatone/go-humanfmt"
)

var instantLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// isUnknownArg reports whether an argument stands for a missing value.
func isUnknownArg(arg string) bool {
	arg = strings.TrimSpace(arg)
	return arg == "" || arg == "-" || arg == humanfmt.Placeholder
}

// parseInstant accepts RFC3339, local date-times, dates, unix milliseconds
// and "now". Layouts without an offset are read as UTC.
func parseInstant(arg string, now time.Time) (*time.Time, error) {
	if isUnknownArg(arg) {
		return nil, nil
	}

	arg = strings.TrimSpace(arg)
	if strings.EqualFold(arg, "now") {
		return &now, nil
	}

	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, arg); err == nil {
			return &t, nil
		}
	}

	if ms, err := strconv.ParseInt(arg, 10, 64); err == nil {
		t := time.UnixMilli(ms)
		return &t, nil
	}

	return nil, fmt.Errorf("%w: instant %q", humanfmt.ErrInvalidInput, arg)
}

// parseNumber accepts decimal and exponent notation, NaN and Inf.
func parseNumber(arg string) (*float64, error) {
	if isUnknownArg(arg) {
		return nil, nil
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: number %q", humanfmt.ErrInvalidInput, arg)
	}
	return &value, nil
}

// parseBytes accepts plain numbers and sizes such as "1.5 GB" or "512KiB".
func parseBytes(arg string) (*float64, error) {
	if value, err := parseNumber(arg); err == nil {
		return value, nil
	}

	size, err := humanize.ParseBytes(strings.TrimSpace(arg))
	if err != nil {
		return nil, fmt.Errorf("%w: byte size %q: %v", humanfmt.ErrInvalidInput, arg, err)
	}
	value := float64(size)
	return &value, nil
}
