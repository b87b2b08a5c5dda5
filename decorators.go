package humanfmt

// FormatHook observes formatter calls. Hooks run in registration order and
// may rewrite ctx.Result in AfterFormat.
type FormatHook interface {
	BeforeFormat(ctx *FormatHookContext)
	AfterFormat(ctx *FormatHookContext)
}

type FormatHookContext struct {
	Operation string
	Setting   FormatSetting
	Args      []any
	Result    string
	Metadata  map[string]any
}

const (
	metadataLocale  = "locale"
	metadataUnknown = "unknown"
)

func (ctx *FormatHookContext) ensureMetadata() {
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
}

func (ctx *FormatHookContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	ctx.ensureMetadata()
	ctx.Metadata[key] = value
}

func (ctx *FormatHookContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

// Locale returns the locale whose rules produced the result.
func (ctx *FormatHookContext) Locale() string {
	value, ok := ctx.MetadataValue(metadataLocale)
	if !ok {
		return ""
	}
	locale, _ := value.(string)
	return locale
}

// Unknown reports whether the input degraded to the placeholder.
func (ctx *FormatHookContext) Unknown() bool {
	value, ok := ctx.MetadataValue(metadataUnknown)
	if !ok {
		return false
	}
	unknown, _ := value.(bool)
	return unknown
}

type FormatHookFuncs struct {
	Before func(ctx *FormatHookContext)
	After  func(ctx *FormatHookContext)
}

func (h FormatHookFuncs) BeforeFormat(ctx *FormatHookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h FormatHookFuncs) AfterFormat(ctx *FormatHookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

func filterHooks(hooks []FormatHook) []FormatHook {
	filtered := make([]FormatHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		filtered = append(filtered, hook)
	}
	return filtered
}

// runHooked wraps a single formatting call with the configured hooks.
func (f *Formatter) runHooked(op string, setting FormatSetting, args []any, fn func(*FormattingRules) string) string {
	rules := f.rulesFor(setting)
	if len(f.hooks) == 0 {
		return fn(rules)
	}

	ctx := &FormatHookContext{
		Operation: op,
		Setting:   setting,
		Args:      args,
	}
	ctx.SetMetadata(metadataLocale, rules.Locale)

	for _, hook := range f.hooks {
		hook.BeforeFormat(ctx)
	}

	ctx.Result = fn(rules)
	ctx.SetMetadata(metadataUnknown, ctx.Result == Placeholder)

	for _, hook := range f.hooks {
		hook.AfterFormat(ctx)
	}

	return ctx.Result
}
