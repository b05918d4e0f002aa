package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-lensing/internal/config"
	"github.com/askiada/go-lensing/internal/logging"
	"github.com/askiada/go-lensing/pkg/params"
	"github.com/askiada/go-lensing/pkg/pipeline"
	"github.com/askiada/go-lensing/pkg/pipeline/drawer"
	"github.com/askiada/go-lensing/pkg/pipeline/measure"
	"github.com/askiada/go-lensing/pkg/pipeline/model"
)

const pipelineGraphFile = "pipeline.dot"

// runCmd runs the diagnostics of every configured module.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the diagnostics of every pipeline module",
	Long: `Builds the module graph from the config, runs the diagnostics of each
module in dependency order and writes the timed stage graph to
<outdir>/plots/pipeline.dot.`,
	Args: cobra.NoArgs,
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return runModules(ctx, cfg, logger)
}

func runModules(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	runOptions := cfg.RunConfig()

	var opts []model.PipelineOption

	if dir, err := runOptions.String("outdir"); err == nil && dir != "" {
		plots := filepath.Join(dir, "plots")
		if err := os.MkdirAll(plots, 0o755); err != nil {
			return errors.Wrapf(err, "unable to create %s", plots)
		}

		msr := measure.NewDefaultMeasure()
		opts = append(opts,
			measure.PipelineMeasure(msr),
			drawer.PipelineDrawer(drawer.NewDOTDrawer(filepath.Join(plots, pipelineGraphFile)), msr),
		)
	}

	pipe, err := pipeline.New(logger.With(zap.String("run_name", cfg.RunName)), opts...)
	if err != nil {
		return err
	}

	for i, m := range cfg.Modules {
		err := pipe.AddStage(m.Name, nil,
			pipeline.DependsOn(cfg.Parents(i)...),
			pipeline.DiagnosticsConfig(params.Config(m.Diagnostics)),
		)
		if err != nil {
			return err
		}
	}

	return pipe.Run(ctx, runOptions, logging.Printer(logger))
}
