package humanfmt

import (
	"maps"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

// FormatterProvider returns helper overrides for a locale
type FormatterProvider func(locale string) map[string]any

// FormatterRegistry manages template helper functions and locale specific overrides
type FormatterRegistry struct {
	mu        sync.RWMutex
	defaults  map[string]any
	overrides map[string]map[string]any
	providers map[string]FormatterProvider
	globals   map[string]any
	funcCache map[string]map[string]any
	resolver  FallbackResolver
	locales   []string
}

type formatterRegistryConfig struct {
	formatter *Formatter
	resolver  FallbackResolver
	locales   []string
	providers map[string]FormatterProvider
}

type FormatterRegistryOption func(*formatterRegistryConfig)

// WithFormatterRegistryFormatter sets the formatter backing the default helpers
func WithFormatterRegistryFormatter(formatter *Formatter) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.formatter = formatter
	}
}

func WithFormatterRegistryResolver(resolver FallbackResolver) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.resolver = resolver
	}
}

// WithFormatterRegistryLocales sets the known locales; the first one is used
// when FuncMap is called without a locale.
func WithFormatterRegistryLocales(locales ...string) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.locales = append(frc.locales, locales...)
	}
}

func WithFormatterRegistryProvider(locale string, provider FormatterProvider) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		if locale == "" || provider == nil {
			return
		}
		if frc.providers == nil {
			frc.providers = make(map[string]FormatterProvider)
		}
		frc.providers[locale] = provider
	}
}

// NewFormatterRegistry seeds a registry with the template helpers of a formatter
func NewFormatterRegistry(opts ...FormatterRegistryOption) *FormatterRegistry {
	cfg := formatterRegistryConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.formatter == nil {
		cfg.formatter = Default()
	}

	registry := &FormatterRegistry{
		defaults:  templateHelpers(cfg.formatter),
		overrides: make(map[string]map[string]any),
		providers: make(map[string]FormatterProvider),
		resolver:  cfg.resolver,
		locales:   dedupeLocales(cfg.locales),
	}

	for locale, provider := range cfg.providers {
		registry.RegisterProvider(locale, provider)
	}

	return registry
}

// Register sets or replaces a default implementation for <name> helper
func (r *FormatterRegistry) Register(name string, fn any) {
	if name == "" || fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.defaults == nil {
		r.defaults = make(map[string]any)
	}
	r.defaults[name] = fn

	if r.globals == nil {
		r.globals = make(map[string]any)
	}
	r.globals[name] = fn
	r.invalidateFuncCacheLocked()
}

// RegisterLocale registers a locale specific override for the <name> helper
func (r *FormatterRegistry) RegisterLocale(locale, name string, fn any) {
	locale = normalizeLocale(locale)
	if locale == "" || name == "" || fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.overrides == nil {
		r.overrides = make(map[string]map[string]any)
	}

	helpers := r.overrides[locale]
	if helpers == nil {
		helpers = make(map[string]any)
		r.overrides[locale] = helpers
	}
	helpers[name] = fn
	r.invalidateFuncCacheLocked()
}

func (r *FormatterRegistry) RegisterProvider(locale string, provider FormatterProvider) {
	locale = normalizeLocale(locale)
	if locale == "" || provider == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.providers == nil {
		r.providers = make(map[string]FormatterProvider)
	}
	r.providers[locale] = provider
	r.invalidateFuncCacheLocked()
}

// Formatter returns the helper implementation for the given name and locale
func (r *FormatterRegistry) Formatter(name, locale string) (any, bool) {
	if name == "" {
		return nil, false
	}

	if fn, ok := r.funcMapForLocale(locale)[name]; ok && fn != nil {
		return fn, true
	}
	return nil, false
}

// FuncMap returns all helper functions applicable to the locale
func (r *FormatterRegistry) FuncMap(locale string) map[string]any {
	return maps.Clone(r.funcMapForLocale(locale))
}

func (r *FormatterRegistry) funcMapForLocale(locale string) map[string]any {
	key := normalizeLocale(locale)

	r.mu.RLock()
	if cached, ok := r.funcCache[key]; ok {
		r.mu.RUnlock()
		return cached
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcCache == nil {
		r.funcCache = make(map[string]map[string]any)
	} else if cached, ok := r.funcCache[key]; ok {
		return cached
	}

	effective := key
	if effective == "" {
		effective = r.defaultLocale()
	}

	result := make(map[string]any, len(r.defaults))
	maps.Copy(result, r.defaults)

	candidates := r.candidateLocales(effective)
	// least specific first so the target locale wins
	for i := len(candidates) - 1; i >= 0; i-- {
		candidate := candidates[i]

		if provider, ok := r.providers[candidate]; ok && provider != nil {
			if helpers := provider(candidate); helpers != nil {
				maps.Copy(result, helpers)
			}
		}

		if helpers, ok := r.overrides[candidate]; ok {
			maps.Copy(result, helpers)
		}
	}

	if r.globals != nil {
		maps.Copy(result, r.globals)
	}

	r.funcCache[key] = result
	return result
}

func (r *FormatterRegistry) invalidateFuncCacheLocked() {
	r.funcCache = nil
}

func (r *FormatterRegistry) candidateLocales(locale string) []string {
	if locale == "" {
		return nil
	}

	chain := []string{locale}
	if r.resolver != nil {
		for _, parent := range r.resolver.Resolve(locale) {
			if parent == "" || containsLocale(chain, parent) {
				continue
			}
			chain = append(chain, parent)
		}
	}
	for _, parent := range localeParentChain(locale) {
		if containsLocale(chain, parent) {
			continue
		}
		chain = append(chain, parent)
	}

	return chain
}

func (r *FormatterRegistry) defaultLocale() string {
	if len(r.locales) > 0 {
		return r.locales[0]
	}
	return ""
}

// dedupeLocales normalizes while keeping caller order, the first entry is the default.
func dedupeLocales(locales []string) []string {
	out := make([]string, 0, len(locales))
	for _, locale := range locales {
		locale = normalizeLocale(locale)
		if locale == "" || containsLocale(out, locale) {
			continue
		}
		out = append(out, locale)
	}
	return out
}

// templateHelpers adapts the formatter methods to loosely typed template
// arguments: numbers may be any numeric kind, pointers or nil, times may be
// time.Time, *time.Time or nil.
func templateHelpers(f *Formatter) map[string]any {
	return map[string]any{
		OpFormatDate: func(t any, useUTC bool, setting string) string {
			return f.FormatDate(toTime(t), useUTC, ParseFormatSetting(setting))
		},
		OpFormatDateTime: func(t any, useUTC bool, setting string) string {
			return f.FormatDateTime(toTime(t), useUTC, ParseFormatSetting(setting))
		},
		OpFormatDateTimeSeconds: func(t any, useUTC bool, setting string) string {
			return f.FormatDateTimeSeconds(toTime(t), useUTC, ParseFormatSetting(setting))
		},
		OpFormatTime: func(t any, useUTC bool, setting string, showZone ...bool) string {
			return f.FormatTime(toTime(t), useUTC, ParseFormatSetting(setting), zoneOptions(showZone)...)
		},
		OpFormatTimeSeconds: func(t any, useUTC bool, setting string, showZone ...bool) string {
			return f.FormatTimeSeconds(toTime(t), useUTC, ParseFormatSetting(setting), zoneOptions(showZone)...)
		},
		OpIsSameDayAsToday: func(t any, useUTC bool) bool {
			return f.IsSameDayAsToday(toTime(t), useUTC)
		},
		OpTimeAgo: func(t any) string {
			return f.TimeAgo(toTime(t))
		},
		OpFormatNumber: func(value any, setting string, digits ...int) string {
			return f.FormatNumber(toFloat(value), ParseFormatSetting(setting), fractionOptions(digits)...)
		},
		OpFormatByteNumber: func(value any, setting string, binary bool, digits ...int) string {
			return f.FormatByteNumber(toFloat(value), ParseFormatSetting(setting), binary, fractionOptions(digits)...)
		},
		OpFormatLargeNumber: func(value any, setting string, sep ...string) string {
			var opts []NumberOption
			if len(sep) > 0 {
				opts = append(opts, WithUnitSeparator(sep[0]))
			}
			return f.FormatLargeNumber(toFloat(value), ParseFormatSetting(setting), opts...)
		},
	}
}

func zoneOptions(showZone []bool) []TimeOption {
	if len(showZone) == 0 {
		return nil
	}
	return []TimeOption{WithTimeZone(showZone[0])}
}

// fractionOptions maps trailing template ints onto (max, min) fraction digits.
func fractionOptions(digits []int) []NumberOption {
	var opts []NumberOption
	if len(digits) > 0 {
		opts = append(opts, WithMaxFractionDigits(digits[0]))
	}
	if len(digits) > 1 {
		opts = append(opts, WithMinFractionDigits(digits[1]))
	}
	return opts
}

func toTime(value any) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return &v
	case *time.Time:
		return v
	case int64:
		t := time.UnixMilli(v)
		return &t
	default:
		return nil
	}
}

func toFloat(value any) *float64 {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case float64:
		return &v
	case *float64:
		return v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		return &parsed
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	var out float64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out = float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		out = float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		out = rv.Float()
	default:
		return nil
	}
	return &out
}
