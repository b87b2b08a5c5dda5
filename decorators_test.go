package humanfmt

import (
	"testing"
	"time"
)

type recordingHook struct {
	before []string
	after  []*FormatHookContext
}

func (h *recordingHook) BeforeFormat(ctx *FormatHookContext) {
	h.before = append(h.before, ctx.Operation)
}

func (h *recordingHook) AfterFormat(ctx *FormatHookContext) {
	h.after = append(h.after, ctx)
}

func TestFormatHooksObserveCalls(t *testing.T) {
	hook := &recordingHook{}
	f := newTestFormatter(WithFormatterHooks(hook))

	f.FormatNumber(Float(1234), FormatDeDE)
	f.TimeAgo(nil)
	f.FormatTime(Time(fixedNow), true, FormatEnUS, WithoutTimeZone())

	if len(hook.before) != 3 || len(hook.after) != 3 {
		t.Fatalf("expected 3 calls, got before=%v after=%d", hook.before, len(hook.after))
	}

	number := hook.after[0]
	if number.Operation != OpFormatNumber || number.Result != "1.234" {
		t.Fatalf("unexpected number context %+v", number)
	}
	if number.Locale() != "de" || number.Unknown() {
		t.Fatalf("expected de rules and a known value, got locale=%q unknown=%t", number.Locale(), number.Unknown())
	}

	ago := hook.after[1]
	if ago.Setting != FormatEnUS || !ago.Unknown() || ago.Result != Placeholder {
		t.Fatalf("unexpected time ago context %+v", ago)
	}

	clock := hook.after[2]
	if len(clock.Args) != 3 || clock.Args[2] != false {
		t.Fatalf("expected the zone flag in args, got %v", clock.Args)
	}
}

func TestFormatHooksRewriteResult(t *testing.T) {
	var seen []string
	f := newTestFormatter(WithFormatterHooks(
		FormatHookFuncs{
			Before: func(ctx *FormatHookContext) {
				ctx.SetMetadata("request", "r-1")
			},
			After: func(ctx *FormatHookContext) {
				if ctx.Unknown() {
					ctx.Result = "n/a"
				}
			},
		},
		FormatHookFuncs{
			After: func(ctx *FormatHookContext) {
				value, _ := ctx.MetadataValue("request")
				seen = append(seen, value.(string)+":"+ctx.Result)
			},
		},
	))

	if got := f.FormatDate(nil, true, FormatEnUS); got != "n/a" {
		t.Fatalf("expected rewritten result, got %q", got)
	}
	date := Time(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC))
	if got := f.FormatDate(date, true, FormatEnUS); got != "06/15/2024" {
		t.Fatalf("expected untouched result, got %q", got)
	}

	if len(seen) != 2 || seen[0] != "r-1:n/a" || seen[1] != "r-1:06/15/2024" {
		t.Fatalf("hooks ran out of order: %v", seen)
	}
}

func TestFormatHookContextNil(t *testing.T) {
	var ctx *FormatHookContext
	ctx.SetMetadata("k", "v")
	if _, ok := ctx.MetadataValue("k"); ok {
		t.Fatalf("expected no metadata on nil context")
	}
	if ctx.Locale() != "" || ctx.Unknown() {
		t.Fatalf("expected zero values from nil context")
	}
}
