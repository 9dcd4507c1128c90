// Package main provides the CLI entry point for exdiff.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/ukaji3/exdiff-go/pkg/exdiff"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/engine"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/output"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/parser"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix of environment variables overriding flags.
const EnvPrefix = "EXDIFF"

// errDifferencesFound is returned with --exit-code when the inputs differ.
var errDifferencesFound = errors.New("differences found")

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		if errors.Is(err, errDifferencesFound) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}

type cli struct {
	v      *viper.Viper
	logger *zap.Logger
	stdout io.Writer
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), logger: zap.NewNop(), stdout: stdout}

	rootCmd := &cobra.Command{
		Use:   "exdiff [base.xlsx] [modified.xlsx]",
		Short: "Compare two versions of an Excel sheet",
		Long: `exdiff aligns the rows of two versions of a sheet and reports changed,
inserted and deleted cells together with matched, changed, inserted,
deleted and moved shapes.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(cmd.Flags()); err != nil {
				return err
			}

			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if c.v.GetBool("verbose") {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
		RunE: c.run,
	}
	rootCmd.SetOut(stdout)

	flags := rootCmd.Flags()
	flags.String("sheet-a", "", "Sheet to compare in the base workbook (default: active sheet)")
	flags.String("sheet-b", "", "Sheet to compare in the modified workbook (default: active sheet)")
	flags.Bool("all-sheets", false, "Compare every sheet present in both workbooks")
	flags.Int64("tolerance", engine.DefaultTolerance, "Shape position and size tolerance in EMU")
	flags.Float64("tolerance-mm", 0, "Shape tolerance in millimeters (overrides --tolerance)")
	flags.Bool("formulas", false, "Compare formula text instead of cached values")
	flags.Bool("skip-shapes", false, "Compare cells only")
	flags.StringP("format", "f", formatText, "Output format: json, yaml, text")
	flags.Bool("pretty", false, "Pretty-print JSON output")
	flags.Bool("no-color", false, "Disable colored text output")
	flags.StringP("output", "o", "", "Output file path (default: stdout)")
	flags.String("report", "", "Write an annotated copy of the modified workbook to this path")
	flags.Bool("exit-code", false, "Exit with status 1 when differences are found")
	flags.String("config", "", "Config file (yaml)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	return rootCmd
}

// loadConfig resolves settings with precedence flag > env > config file > default.
func (c *cli) loadConfig(flags *pflag.FlagSet) error {
	c.v.SetEnvPrefix(EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if err := c.v.BindPFlags(flags); err != nil {
		return err
	}

	if path := c.v.GetString("config"); path != "" {
		c.v.SetConfigFile(path)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return nil
}

func (c *cli) options() exdiff.Options {
	opts := exdiff.Options{
		SheetA:     c.v.GetString("sheet-a"),
		SheetB:     c.v.GetString("sheet-b"),
		Tolerance:  c.v.GetInt64("tolerance"),
		Formulas:   c.v.GetBool("formulas"),
		SkipShapes: c.v.GetBool("skip-shapes"),
		Logger:     c.logger,
	}
	if mm := c.v.GetFloat64("tolerance-mm"); mm > 0 {
		opts.Tolerance = parser.MillimetersToEMU(mm)
	}
	return opts
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	basePath, modifiedPath := args[0], args[1]
	opts := c.options()
	c.logger.Debug("comparing",
		zap.String("base", basePath),
		zap.String("modified", modifiedPath),
		zap.Int64("tolerance_emu", opts.EffectiveTolerance()),
		zap.Float64("tolerance_mm", parser.EMUToMillimeters(opts.EffectiveTolerance())))

	format := strings.ToLower(c.v.GetString("format"))
	switch format {
	case formatJSON, formatYAML, formatText:
	default:
		return fmt.Errorf("invalid format: %s (must be json, yaml, or text)", format)
	}

	outputPath := c.v.GetString("output")
	useColor := outputPath == "" && !color.NoColor && !c.v.GetBool("no-color")

	var (
		data    []byte
		differs bool
		err     error
	)

	if c.v.GetBool("all-sheets") {
		if c.v.GetString("report") != "" {
			return errors.New("--report cannot be combined with --all-sheets")
		}
		diff, err := exdiff.CompareWorkbooks(cmd.Context(), basePath, modifiedPath, opts)
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		differs = len(diff.OnlyInA) > 0 || len(diff.OnlyInB) > 0
		for _, s := range diff.Sheets {
			differs = differs || s.Result.HasDifferences()
		}
		data, err = render(format, diff, c.v.GetBool("pretty"), func(w io.Writer) error {
			return output.WriteWorkbookSummary(w, diff, useColor)
		})
		if err != nil {
			return err
		}
	} else {
		result, err := exdiff.CompareFiles(cmd.Context(), basePath, modifiedPath, opts)
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		differs = result.HasDifferences()
		data, err = render(format, result, c.v.GetBool("pretty"), func(w io.Writer) error {
			return output.WriteSummary(w, *result, useColor)
		})
		if err != nil {
			return err
		}

		if reportPath := c.v.GetString("report"); reportPath != "" {
			if err := output.WriteReport(modifiedPath, opts.SheetB, *result, reportPath); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			c.logger.Info("report written", zap.String("path", reportPath))
		}
	}

	if outputPath != "" {
		err = os.WriteFile(outputPath, data, 0644)
	} else {
		_, err = c.stdout.Write(data)
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if differs && c.v.GetBool("exit-code") {
		return errDifferencesFound
	}
	return nil
}

func render(format string, v interface{}, pretty bool, text func(io.Writer) error) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case formatJSON:
		data, err = output.ToJSON(v, pretty)
		data = append(data, '\n')
	case formatYAML:
		data, err = output.ToYAML(v)
	default:
		var sb strings.Builder
		err = text(&sb)
		data = []byte(sb.String())
	}
	if err != nil {
		return nil, fmt.Errorf("serialization failed: %w", err)
	}
	return data, nil
}
