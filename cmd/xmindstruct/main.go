// Package main provides the CLI entry point for xmindstruct-go.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/xmindstruct-go/internal/config"
	"github.com/ukaji3/xmindstruct-go/internal/logging"
	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct"
	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/output"
)

var (
	configPath string
	outputPath string
	format     string
	pretty     bool
	mode       string
	charset    string
	landscape  bool
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xmindstruct [input.xmind]",
		Short: "Count members and agent groups in XMind files",
		Long: `xmindstruct-go counts the members of an XMind mind map, leaving out
departed members (red text), and lists every agent group (green fill)
with its join date, masked agent name, invested amount, level and member count.`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: run,
	}

	rootCmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "Config file path")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&format, "format", "", "Output format: json, csv, xlsx, pdf (default: from output extension)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&mode, "mode", "standard", "Extraction mode: light, standard, verbose")
	rootCmd.Flags().StringVar(&charset, "charset", "utf-8", "CSV output charset")
	rootCmd.Flags().BoolVarP(&landscape, "landscape", "L", false, "Landscape PDF pages")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	return rootCmd
}

// setup loads the config, applies explicitly set flags on top of it and
// builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(configPath); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Path = outputPath
	}
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("pretty") {
		cfg.Output.Pretty = pretty
	}
	if flags.Changed("mode") {
		cfg.Extraction.Mode = mode
	}
	if flags.Changed("charset") {
		cfg.Output.Charset = charset
	}
	if flags.Changed("landscape") {
		cfg.Output.Landscape = landscape
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err = logging.New(cfg.Logging, verbose)
	return err
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Parse mode
	extractMode, ok := xmindstruct.ParseMode(cfg.Extraction.Mode)
	if !ok {
		return fmt.Errorf("invalid mode: %s (must be light, standard, or verbose)", cfg.Extraction.Mode)
	}

	outFormat := output.FormatFromPath(cfg.Output.Path)
	if cfg.Output.Format != "" {
		if outFormat, ok = output.ParseFormat(cfg.Output.Format); !ok {
			return fmt.Errorf("invalid format: %s (must be json, csv, xlsx, or pdf)", cfg.Output.Format)
		}
	}

	opts := xmindstruct.Options{
		Mode:   extractMode,
		Logger: logger,
	}

	// Extract data
	report, err := xmindstruct.Extract(inputPath, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	logger.Debug("Extracted",
		zap.String("format", report.Format),
		zap.Int("total", report.Total),
		zap.Int("groups", len(report.GroupRows)))

	// Serialize
	var buf bytes.Buffer
	if err := output.Write(&buf, report, outFormat, output.Options{
		Pretty:    cfg.Output.Pretty,
		Charset:   cfg.Output.Charset,
		Landscape: cfg.Output.Landscape,
		FontSize:  cfg.Output.FontSize,
	}); err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if err := cmd.Context().Err(); err != nil {
		return err
	}

	// Write output
	if cfg.Output.Path != "" {
		if err := os.WriteFile(cfg.Output.Path, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logger.Info("Report written", zap.String("path", cfg.Output.Path), zap.String("format", string(outFormat)))
		return nil
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}
