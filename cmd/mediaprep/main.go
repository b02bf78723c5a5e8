package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bioprocesslab/mediaprep/internal/adapters/csvtables"
	"github.com/bioprocesslab/mediaprep/internal/adapters/executor"
	"github.com/bioprocesslab/mediaprep/internal/adapters/planfile"
	"github.com/bioprocesslab/mediaprep/internal/cliconfig"
	"github.com/bioprocesslab/mediaprep/internal/run"
	"github.com/bioprocesslab/mediaprep/internal/watch"
	"github.com/bioprocesslab/mediaprep/pkg/log"
)

const longHelp = `Plan automated liquid-handling runs for media-optimization experiments.

mediaprep reads the stock, standard-recipe, target, and plate-layout CSV
tables, converts target concentrations into per-well transfer volumes, and
expands them into an ordered, pipette-sized picklist with per-source
provisioning totals.

  plan   compute the plan and write the picklist CSV
  run    plan, then play the plan through the logging executor
         (pauses for the fresh culture plate before inoculation)
  watch  re-plan automatically whenever an input CSV changes
`

var exampleUsage = `  mediaprep plan --input-dir csv_inputs --out transfer_plan.csv
  mediaprep run --input-dir csv_inputs --yes
  mediaprep watch --input-dir csv_inputs`

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	zl := cliconfig.Logger(false)

	root := &cobra.Command{
		Use:     "mediaprep",
		Short:   "Plan automated liquid-handling runs for media optimization",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Merge order: defaults < config file < env < explicit flags.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			cmd.Root().PersistentFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			cliconfig.ApplyEnvConfig(&cfg, changed)

			if err := cfg.Validate(); err != nil {
				return err
			}

			zl = cliconfig.Logger(cfg.Debug)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.mediaprep/config.toml)")
	pf.StringVar(&cfg.InputDir, "input-dir", cfg.InputDir, "directory holding the input CSV tables")
	pf.StringVar(&cfg.OutputPath, "out", cfg.OutputPath, "picklist CSV output path")
	pf.StringVar(&cfg.DestPlate, "dest-plate", cfg.DestPlate, "destination plate tag written into the picklist")
	pf.Float64Var(&cfg.Run.WellVolume, "well-volume", cfg.Run.WellVolume, "destination well volume in µL")
	pf.Float64Var(&cfg.Run.MinTransferVolume, "min-volume", cfg.Run.MinTransferVolume, "minimum transfer volume in µL")
	pf.Float64Var(&cfg.Run.CultureRatio, "culture-ratio", cfg.Run.CultureRatio, "culture dilution factor")
	pf.Float64Var(&cfg.Run.DeadVolume, "dead-volume", cfg.Run.DeadVolume, "per-source dead volume in µL")
	pf.Float64Var(&cfg.Run.VolumeTolerance, "tolerance", cfg.Run.VolumeTolerance, "accepted row-sum deviation in µL")
	pf.BoolVar(&cfg.Run.StrictValidation, "strict", cfg.Run.StrictValidation, "abort on volume validation errors instead of continuing degraded")
	pf.IntVar(&cfg.Run.RackCapacity, "rack-capacity", cfg.Run.RackCapacity, "tips per rack")
	pf.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the transfer plan and write the picklist CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.NewZerologAdapterWithLogger(zl)
			_, err := planAndExport(cmd.Context(), cfg, logger)
			return err
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Plan, then play the plan through the logging executor",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.NewZerologAdapterWithLogger(zl)
			report, err := planAndExport(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			var ack executor.AckFunc
			if !cfg.AutoAck {
				ack = promptAck
			}
			exec := executor.NewLogExecutor(logger, ack)
			return run.Execute(cmd.Context(), report.Plan, exec, logger)
		},
	}
	runCmd.Flags().BoolVar(&cfg.AutoAck, "yes", cfg.AutoAck, "acknowledge the culture checkpoint without prompting")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-plan automatically whenever an input CSV changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.NewZerologAdapterWithLogger(zl)
			w := watch.New(cfg.InputDir, cfg.WatchDebounce, func(ctx context.Context) {
				if _, err := planAndExport(ctx, cfg, logger); err != nil {
					logger.Error("replan failed", log.Err(err))
				}
			}, logger)

			err := w.Run(cmd.Context())
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}
	watchCmd.Flags().DurationVar(&cfg.WatchDebounce, "debounce", cfg.WatchDebounce, "quiet period before a replan")

	root.AddCommand(planCmd, runCmd, watchCmd)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := root.ExecuteContext(ctx); err != nil {
		zl.Error().Err(err).Msg("mediaprep")
		os.Exit(1)
	}
}

// planAndExport runs one planning pass over the CSV inputs and writes the
// picklist.
func planAndExport(ctx context.Context, cfg cliconfig.Config, logger log.Logger) (*run.Report, error) {
	src := csvtables.New(cfg.InputDir)
	inputs, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inputs: %w", err)
	}

	report, err := run.Plan(inputs, cfg.Run, logger)
	if err != nil {
		return nil, err
	}

	if err := planfile.WriteFile(cfg.OutputPath, report.Plan, cfg.DestPlate); err != nil {
		return nil, fmt.Errorf("write picklist: %w", err)
	}
	logger.Info("picklist written",
		log.String("run_id", report.RunID),
		log.String("path", cfg.OutputPath))
	return report, nil
}

// promptAck blocks the culture checkpoint on an operator keypress.
func promptAck(ctx context.Context, message string) error {
	fmt.Fprintf(os.Stderr, "\n%s\nPress Enter to resume...", message)
	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(os.Stdin).ReadString('\n')
		done <- err
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
