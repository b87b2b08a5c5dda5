package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/goliatone/go-humanfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	locale   string
	now      string
	rules    []string
	timezone string
	utc      bool
	verbose  bool

	noZone      bool
	binary      bool
	maxFraction int
	minFraction int
	separator   string
}

func (c *Config) validate() error {
	if c.maxFraction < 0 || c.minFraction < 0 {
		return errors.New("fraction digits must not be negative")
	}
	if c.utc && c.timezone != "" {
		return errors.New("--utc and --timezone are mutually exclusive")
	}
	return nil
}

// formatter assembles a humanfmt formatter from the parsed flags.
func (c *Config) formatter() (*humanfmt.Formatter, error) {
	opts := []humanfmt.Option{
		humanfmt.WithRulesFiles(c.rules...),
		humanfmt.WithLocationName(c.timezone),
	}

	if c.now != "" {
		now, err := time.Parse(time.RFC3339Nano, c.now)
		if err != nil {
			return nil, fmt.Errorf("%w: --now %q: %v", humanfmt.ErrInvalidInput, c.now, err)
		}
		opts = append(opts, humanfmt.WithClock(humanfmt.FixedClock(now)))
	}

	if c.verbose {
		opts = append(opts, humanfmt.WithHooks(verboseHook(c)))
	}

	hcfg, err := humanfmt.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return hcfg.BuildFormatter(), nil
}

func (c *Config) setting() humanfmt.FormatSetting {
	return humanfmt.ParseFormatSetting(c.locale)
}

func verboseHook(cfg *Config) humanfmt.FormatHook {
	return humanfmt.FormatHookFuncs{
		After: func(ctx *humanfmt.FormatHookContext) {
			logf(cfg, "%s setting=%q locale=%s unknown=%t result=%q",
				ctx.Operation, ctx.Setting, ctx.Locale(), ctx.Unknown(), ctx.Result)
		},
	}
}

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("HUMANFMT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "humanfmt",
		Short:         "Render dates, times, numbers and byte sizes for display.",
		SilenceErrors: true,
		Version:       releaseVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.validate()
		},
	}

	fs := cmd.PersistentFlags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.locale, "locale", "l", "system", "format setting: system, de-DE, en-EN or en-US (env: HUMANFMT_LOCALE)")
	fs.StringVar(&cfg.now, "now", "", "RFC3339 instant used as the current time (env: HUMANFMT_NOW)")
	fs.StringSliceVar(&cfg.rules, "rules", nil, "JSON or YAML formatting rules files (env: HUMANFMT_RULES)")
	fs.StringVar(&cfg.timezone, "timezone", "", "IANA zone used instead of the host zone (env: HUMANFMT_TIMEZONE)")
	fs.BoolVarP(&cfg.utc, "utc", "u", false, "render clock fields in UTC (env: HUMANFMT_UTC)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log every formatting call (env: HUMANFMT_VERBOSE)")

	bindEnv(v, fs)

	cmd.AddCommand(
		newTimeCmd(cfg, humanfmt.OpFormatDate, "date", "Render the calendar date of an instant"),
		newTimeCmd(cfg, humanfmt.OpFormatDateTime, "datetime", "Render date and time with minutes"),
		newTimeCmd(cfg, humanfmt.OpFormatDateTimeSeconds, "datetime-seconds", "Render date and time with seconds"),
		newTimeCmd(cfg, humanfmt.OpFormatTime, "time", "Render the time of an instant"),
		newTimeCmd(cfg, humanfmt.OpFormatTimeSeconds, "time-seconds", "Render the time of an instant with seconds"),
		newTimeCmd(cfg, humanfmt.OpTimeAgo, "ago", "Render the distance from now, e.g. 5 minutes ago"),
		newTimeCmd(cfg, humanfmt.OpIsSameDayAsToday, "same-day", "Report whether an instant falls on today's date"),
		newNumberCmd(cfg, humanfmt.OpFormatNumber, "number", "Render a number with locale grouping"),
		newNumberCmd(cfg, humanfmt.OpFormatByteNumber, "bytes", "Render a byte count in KB/MB or KiB/MiB"),
		newNumberCmd(cfg, humanfmt.OpFormatLargeNumber, "large", "Abbreviate a number with k/m suffixes"),
	)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("humanfmt v{{.Version}}\n")

	cmd.SilenceUsage = true

	return cmd
}

// bindEnv lets HUMANFMT_* variables fill flags the user did not set.
func bindEnv(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}
