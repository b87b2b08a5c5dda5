package humanfmt

import (
	"errors"
	"fmt"
	"time"
)

// Config captures formatter and template helper setup
type Config struct {
	DefaultSetting FormatSetting
	Location       *time.Location
	Clock          Clock
	Resolver       FallbackResolver
	Hooks          []FormatHook

	hostLocale     string
	rulesPaths     []string
	rulesFiles     map[string]string
	rulesOverrides map[string]FormattingRules
	rulesLoader    FormattingDataLoader

	formatterProviders map[string]FormatterProvider

	rulesProvider *FormattingRulesProvider
	formatter     *Formatter
	registry      *FormatterRegistry
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options and loads any rules files
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}

	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}

	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	if err := cfg.loadRules(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithDefaultSetting sets the setting used by template helpers when no
// locale is requested
func WithDefaultSetting(setting FormatSetting) Option {
	return func(c *Config) error {
		c.DefaultSetting = setting
		return nil
	}
}

// WithLocation sets the zone used when rendering without UTC
func WithLocation(loc *time.Location) Option {
	return func(c *Config) error {
		if loc == nil {
			return errors.New("humanfmt: nil location")
		}
		c.Location = loc
		return nil
	}
}

// WithLocationName loads an IANA zone such as "Europe/Berlin"
func WithLocationName(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return nil
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			return fmt.Errorf("humanfmt: load location %q: %w", name, err)
		}
		c.Location = loc
		return nil
	}
}

func WithClock(clock Clock) Option {
	return func(c *Config) error {
		c.Clock = clock
		return nil
	}
}

// WithHostLocale pins the locale behind FormatSystem, e.g. "de_DE.UTF-8"
func WithHostLocale(locale string) Option {
	return func(c *Config) error {
		c.hostLocale = locale
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		if locale == "" {
			return nil
		}
		resolver, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			if c.Resolver != nil {
				return nil
			}
			resolver = NewStaticFallbackResolver()
			c.Resolver = resolver
		}
		resolver.Set(locale, fallbacks...)
		return nil
	}
}

// WithRulesFiles merges JSON or YAML rules files over the built-in rules
func WithRulesFiles(paths ...string) Option {
	return func(c *Config) error {
		c.rulesPaths = append(c.rulesPaths, paths...)
		return nil
	}
}

// WithRulesFile replaces the rules of one locale from a file
func WithRulesFile(locale, path string) Option {
	return func(c *Config) error {
		if locale == "" || path == "" {
			return nil
		}
		if c.rulesFiles == nil {
			c.rulesFiles = make(map[string]string)
		}
		c.rulesFiles[locale] = path
		return nil
	}
}

// WithRulesOverride sets rules for a locale in code. Empty fields inherit
// from the rules being replaced.
func WithRulesOverride(locale string, rules FormattingRules) Option {
	return func(c *Config) error {
		locale = normalizeLocale(locale)
		if locale == "" {
			return fmt.Errorf("%w: empty locale", ErrInvalidRules)
		}
		if err := validateRules(rules); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidRules, locale, err)
		}
		if c.rulesOverrides == nil {
			c.rulesOverrides = make(map[string]FormattingRules)
		}
		c.rulesOverrides[locale] = rules
		return nil
	}
}

// WithRulesLoader replaces the file based rules loader
func WithRulesLoader(loader FormattingDataLoader) Option {
	return func(c *Config) error {
		c.rulesLoader = loader
		return nil
	}
}

func WithHooks(hooks ...FormatHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}

func WithFormatterProvider(locale string, provider FormatterProvider) Option {
	return func(c *Config) error {
		if locale == "" || provider == nil {
			return nil
		}
		if c.formatterProviders == nil {
			c.formatterProviders = make(map[string]FormatterProvider)
		}
		c.formatterProviders[locale] = provider
		c.registry = nil
		return nil
	}
}

// RulesProvider returns the merged rules: built-ins, files, then code overrides
func (cfg *Config) RulesProvider() *FormattingRulesProvider {
	return cfg.rulesProvider
}

// BuildFormatter returns the formatter described by the config. Repeated
// calls return the same instance.
func (cfg *Config) BuildFormatter() *Formatter {
	if cfg.formatter != nil {
		return cfg.formatter
	}

	opts := []FormatterOption{
		WithFormatterClock(cfg.Clock),
		WithFormatterLocation(cfg.Location),
		WithFormatterRules(cfg.rulesProvider),
		WithFormatterHooks(cfg.Hooks...),
	}
	if cfg.hostLocale != "" {
		opts = append(opts, WithFormatterHostLocale(cfg.hostLocale))
	}

	cfg.formatter = NewFormatter(opts...)
	return cfg.formatter
}

// FormatterRegistry returns template helpers bound to BuildFormatter
func (cfg *Config) FormatterRegistry() *FormatterRegistry {
	if cfg.registry != nil {
		return cfg.registry
	}

	opts := []FormatterRegistryOption{
		WithFormatterRegistryFormatter(cfg.BuildFormatter()),
		WithFormatterRegistryResolver(cfg.Resolver),
	}
	if cfg.DefaultSetting != FormatUnspecified {
		opts = append(opts, WithFormatterRegistryLocales(string(cfg.DefaultSetting)))
	}
	for locale, provider := range cfg.formatterProviders {
		opts = append(opts, WithFormatterRegistryProvider(locale, provider))
	}

	cfg.registry = NewFormatterRegistry(opts...)
	return cfg.registry
}

// TemplateHelpers returns the helper func map for the default setting
func (cfg *Config) TemplateHelpers() map[string]any {
	return cfg.FormatterRegistry().FuncMap(string(cfg.DefaultSetting))
}

func (cfg *Config) loadRules() error {
	loader := cfg.rulesLoader
	if loader == nil && (len(cfg.rulesPaths) > 0 || len(cfg.rulesFiles) > 0) {
		fileLoader := NewRulesLoader(cfg.rulesPaths...)
		for locale, path := range cfg.rulesFiles {
			fileLoader.AddOverride(locale, path)
		}
		loader = fileLoader
	}

	merged := make(map[string]FormattingRules)
	if loader != nil {
		loaded, err := loader.Load()
		if err != nil {
			return err
		}
		for locale, rules := range loaded {
			merged[normalizeLocale(locale)] = rules
		}
	}

	for locale, rules := range cfg.rulesOverrides {
		merged[locale] = rules
	}

	provider, err := NewFormattingRulesProvider(merged, cfg.Resolver)
	if err != nil {
		return err
	}
	cfg.rulesProvider = provider
	return nil
}
