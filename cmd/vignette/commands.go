package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/config"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an operator session",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runOptions{}
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.dataset, _ = cmd.Flags().GetString("dataset")
			opts.noTUI, _ = cmd.Flags().GetBool("no-tui")
			opts.dryRun, _ = cmd.Flags().GetBool("dry-run")
			opts.seed, _ = cmd.Flags().GetInt64("seed")

			ctx, cancel := signalContext()
			defer cancel()
			registerQuitHandler()

			return executeSession(ctx, opts, os.Stdin, os.Stdout)
		},
	}
	cmd.Flags().String("dataset", "", "vignette spreadsheet (.xlsx or .csv); overrides dataset.path")
	cmd.Flags().Bool("no-tui", false, "line-based prompts instead of the terminal UI")
	cmd.Flags().Bool("dry-run", false, "print receipts as text on stdout instead of the printer")
	cmd.Flags().Int64("seed", 0, "random seed for reproducible draws (0 = use config)")
	return cmd
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold a vignette station (config, sample dataset, .gitignore)",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			created, err := config.ScaffoldProject(dir)
			fmt.Print(formatScaffoldResult(created))
			return err
		},
	}
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Summarise the delivery log and show the latest deliveries",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			last, _ := cmd.Flags().GetInt("last")
			return showHistory(os.Stdout, configPath, last)
		},
	}
	cmd.Flags().IntP("last", "n", 10, "number of recent deliveries to list")
	return cmd
}

func poolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Show how many vignettes the dataset holds per length",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			datasetPath, _ := cmd.Flags().GetString("dataset")
			return showPool(os.Stdout, configPath, datasetPath)
		},
	}
	cmd.Flags().String("dataset", "", "vignette spreadsheet (.xlsx or .csv); overrides dataset.path")
	return cmd
}
