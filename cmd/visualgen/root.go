package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaitlab/visualgen/internal/app"
	"github.com/gaitlab/visualgen/internal/audit"
	"github.com/gaitlab/visualgen/internal/config"
	"github.com/gaitlab/visualgen/internal/ocr"
	"github.com/gaitlab/visualgen/pkg/logger"
	"github.com/gaitlab/visualgen/pkg/metrics"
)

type rootFlags struct {
	configPath string
	dataDir    string
	outputDir  string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:   "visualgen",
		Short: "Generate README figures for the markerless biomechanics pipeline",
		Long: `visualgen draws the pipeline flowchart, the GRF comparison figure and the
camera setup diagram, and fills documentation slots with placeholder images.

Without a subcommand it runs "visuals".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerator(cmd, f, (*app.Generator).Visuals)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "YAML config file (default $VISUALGEN_CONFIG)")
	pf.StringVar(&f.dataDir, "data-dir", "", "directory containing grf_estimated.mot and grf_force_plate.mot")
	pf.StringVar(&f.outputDir, "output-dir", "", "root of the generated asset tree")
	pf.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		&cobra.Command{
			Use:   "visuals",
			Short: "Generate the pipeline flowchart, GRF comparison and camera setup figures",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runGenerator(cmd, f, (*app.Generator).Visuals)
			},
		},
		&cobra.Command{
			Use:   "placeholders",
			Short: "Generate placeholder images for every README image slot",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runGenerator(cmd, f, (*app.Generator).Placeholders)
			},
		},
		newInspectCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig layers the command line flags over config.Load.
func loadConfig(cmd *cobra.Command, f *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = f.dataDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGenerator(cmd *cobra.Command, f *rootFlags, step func(*app.Generator, context.Context) error) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	if err := logger.InitWriter(cmd.ErrOrStderr()); err != nil {
		return err
	}
	log := logger.Named("visualgen")
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	rec, err := metrics.New()
	if err != nil {
		return err
	}
	g := app.New(cfg, app.WithLogger(log), app.WithMetrics(rec))
	log.Debug(ctx, "starting", logger.String("run_id", g.RunID()), logger.String("version", Version),
		logger.String("output_dir", cfg.OutputDir), logger.String("data_dir", cfg.DataDir))

	runErr := step(g, ctx)
	if err := g.Finish(ctx); err != nil {
		log.Error(ctx, "failed to write metrics", logger.Error(err))
		runErr = errors.Join(runErr, err)
	}
	if runErr != nil {
		return runErr
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Output directory: %s\n", cfg.OutputDir)
	return nil
}

func newInspectCmd() *cobra.Command {
	var (
		opts   audit.Options
		region string
	)
	cmd := &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Report size, frames, timing, density and dominant colors of images as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := audit.ParseRegion(region)
			if err != nil {
				return err
			}
			opts.Region = r

			var reports []*audit.Report
			var errs []error
			for _, path := range args {
				rep, err := audit.Inspect(path, opts)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				reports = append(reports, rep)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(reports); err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().IntVar(&opts.TopColors, "colors", audit.DefaultTopColors, "number of dominant colors to report")
	cmd.Flags().BoolVar(&opts.OCR, "ocr", false, "read text back with Tesseract (needs a build with -tags ocr)")
	cmd.Flags().StringVar(&opts.Language, "lang", ocr.DefaultLanguage, "Tesseract language code")
	cmd.Flags().StringVar(&region, "region", "", "limit colors and OCR to x1,y1,x2,y2")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 1, "resize the region by this factor before OCR")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "visualgen %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
			if ocr.Available() {
				fmt.Fprintf(out, "  Tesseract: %s\n", ocr.Version())
			}
		},
	}
}
