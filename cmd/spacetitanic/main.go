package main

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/MalayAgr/Kaggle-Space-Titanic/config"
	"github.com/MalayAgr/Kaggle-Space-Titanic/models"
	"github.com/MalayAgr/Kaggle-Space-Titanic/models/logreg"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/log"
	"github.com/spf13/cobra"
)

var rootCommand = &cobra.Command{
	Use:   "spacetitanic",
	Short: "Cross-validated hyperparameter search for Spaceship Titanic models.",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.PersistentFlags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if cmd.PersistentFlags().Changed("trials") {
			cfg.Search.Trials, _ = cmd.PersistentFlags().GetInt("trials")
		}

		logger, err := log.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
		if err != nil {
			return err
		}
		log.SetLogger(logger)
		if z, ok := logger.(*log.ZerologLogger); ok {
			z.InstallWarningHandler()
		}

		registry := models.NewRegistry(logger)
		if err := logreg.Register(registry, numericColumns...); err != nil {
			return err
		}

		name, _ := cmd.PersistentFlags().GetString("model")
		rows, _ := cmd.PersistentFlags().GetInt("rows")
		train, test, ids, err := syntheticDatasets(cfg.Columns, rows, rows/4, cfg.Search.Seed)
		if err != nil {
			return err
		}

		logger.Info("load config", "config", configPath, log.NTrialsKey, cfg.Search.Trials)
		cv, err := registry.Build(name, train, test, models.WithConfig(cfg), models.WithLogger(logger))
		if err != nil {
			return err
		}
		res, params, err := cv.SearchAndTrain(cfg.Search.Trials)
		if err != nil {
			return err
		}
		logger.Info("best params", log.HyperParamsKey, params, log.AccuracyKey, res.Accuracy)

		threshold, _ := cmd.PersistentFlags().GetFloat64("threshold")
		preds, err := res.Submission(ids, threshold)
		if err != nil {
			return err
		}
		w := csv.NewWriter(cmd.OutOrStdout())
		if err := w.Write([]string{cfg.Columns.ID, cfg.Columns.Label}); err != nil {
			return err
		}
		for _, p := range preds {
			if err := w.Write([]string{p.PassengerID, strconv.FormatBool(p.Transported)}); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	},
}

func init() {
	rootCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootCommand.PersistentFlags().IntP("trials", "n", 0, "number of search trials (overrides config)")
	rootCommand.PersistentFlags().StringP("model", "m", logreg.Name, "registered model name")
	rootCommand.PersistentFlags().Int("rows", 1000, "number of synthetic training rows")
	rootCommand.PersistentFlags().Float64("threshold", 0.5, "probability threshold of the submission")
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.GetLogger().Error("failed to execute", err)
		os.Exit(1)
	}
}
