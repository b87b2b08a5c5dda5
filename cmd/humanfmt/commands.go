package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goliatone/go-humanfmt"
	"github.com/spf13/cobra"
)

func newTimeCmd(cfg *Config, op, use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <instant>",
		Short: short,
		Long:  short + ".\n\nThe instant is RFC3339, a YYYY-MM-DD date, unix milliseconds or \"now\". A lone \"-\" renders the unknown placeholder.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cfg.formatter()
			if err != nil {
				return err
			}

			t, err := parseInstant(args[0], f.Now())
			if err != nil {
				return err
			}

			out, err := renderTime(f, cfg, op, t)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	if op == humanfmt.OpFormatTime || op == humanfmt.OpFormatTimeSeconds {
		cmd.Flags().BoolVar(&cfg.noZone, "no-zone", false, "omit the time zone label")
	}

	return cmd
}

func newNumberCmd(cfg *Config, op, use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <value>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cfg.formatter()
			if err != nil {
				return err
			}

			parse := parseNumber
			if op == humanfmt.OpFormatByteNumber {
				parse = parseBytes
			}
			value, err := parse(args[0])
			if err != nil {
				return err
			}

			opts := fractionOptions(cmd, cfg)
			setting := cfg.setting()

			var out string
			switch op {
			case humanfmt.OpFormatByteNumber:
				out = f.FormatByteNumber(value, setting, cfg.binary, opts...)
			case humanfmt.OpFormatLargeNumber:
				out = f.FormatLargeNumber(value, setting, humanfmt.WithUnitSeparator(cfg.separator))
			default:
				out = f.FormatNumber(value, setting, opts...)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	fs := cmd.Flags()
	switch op {
	case humanfmt.OpFormatLargeNumber:
		fs.StringVar(&cfg.separator, "separator", " ", "text between the value and its k/m suffix")
	case humanfmt.OpFormatByteNumber:
		fs.BoolVarP(&cfg.binary, "binary", "b", false, "use 1024 based units (KiB, MiB, ...)")
		fs.IntVar(&cfg.maxFraction, "max-fraction", 2, "maximum fraction digits")
		fs.IntVar(&cfg.minFraction, "min-fraction", 2, "minimum fraction digits")
	default:
		fs.IntVar(&cfg.maxFraction, "max-fraction", 2, "maximum fraction digits")
		fs.IntVar(&cfg.minFraction, "min-fraction", 0, "minimum fraction digits")
	}

	return cmd
}

// fractionOptions forwards only the fraction flags the user set, so each
// formatter keeps its own defaults.
func fractionOptions(cmd *cobra.Command, cfg *Config) []humanfmt.NumberOption {
	var opts []humanfmt.NumberOption
	if cmd.Flags().Changed("max-fraction") {
		opts = append(opts, humanfmt.WithMaxFractionDigits(cfg.maxFraction))
	}
	if cmd.Flags().Changed("min-fraction") {
		opts = append(opts, humanfmt.WithMinFractionDigits(cfg.minFraction))
	}
	return opts
}

func renderTime(f *humanfmt.Formatter, cfg *Config, op string, t *time.Time) (string, error) {
	setting := cfg.setting()
	var zoneOpts []humanfmt.TimeOption
	if cfg.noZone {
		zoneOpts = append(zoneOpts, humanfmt.WithoutTimeZone())
	}

	switch op {
	case humanfmt.OpFormatDate:
		return f.FormatDate(t, cfg.utc, setting), nil
	case humanfmt.OpFormatDateTime:
		return f.FormatDateTime(t, cfg.utc, setting), nil
	case humanfmt.OpFormatDateTimeSeconds:
		return f.FormatDateTimeSeconds(t, cfg.utc, setting), nil
	case humanfmt.OpFormatTime:
		return f.FormatTime(t, cfg.utc, setting, zoneOpts...), nil
	case humanfmt.OpFormatTimeSeconds:
		return f.FormatTimeSeconds(t, cfg.utc, setting, zoneOpts...), nil
	case humanfmt.OpTimeAgo:
		return f.TimeAgo(t), nil
	case humanfmt.OpIsSameDayAsToday:
		return strconv.FormatBool(f.IsSameDayAsToday(t, cfg.utc)), nil
	default:
		return "", fmt.Errorf("unknown operation %q", op)
	}
}
