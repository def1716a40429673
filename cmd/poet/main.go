package main

import (
	"fmt"
	"github.com/gissleh/poet"
	"github.com/gissleh/poet/adapters/cmudict"
	"github.com/gissleh/poet/adapters/datamuse"
	"github.com/gissleh/poet/internal/config"
	"github.com/gissleh/poet/internal/logging"
	"github.com/gissleh/poet/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"os"
	"time"
)

var (
	flagConfig  string
	flagDict    string
	flagVerbose bool

	rootCmd = &cobra.Command{
		Use:   "poet",
		Short: "Look up English pronunciations and recognize verse forms",
		Long: `Poet reads a CMU Pronouncing Dictionary style lexicon, and uses it to count syllables,
find rhymes and check stanzas against verse forms like the haiku and the Shakespearean sonnet.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}
)

// application holds what every subcommand needs, and is filled in before any of them run.
type application struct {
	cfg    *config.Config
	logger *zap.Logger
	svc    *service.Service
}

var app application

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file (default $POET_CONFIG or ./poet.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDict, "dict", "", "lexicon file, overrides dictionary.cmudict_path")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(queryCmd, analyzeCmd, poemsCmd, serveCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDict != "" {
		cfg.Dictionary.CMUDictPath = flagDict
	}

	logger, err := logging.New(cfg.Log, flagVerbose)
	if err != nil {
		return err
	}

	dict, err := loadDictionary(cfg.Dictionary, logger)
	if err != nil {
		return err
	}

	svc := &service.Service{
		Dictionary:         dict,
		Logger:             logger,
		MaxInterpretations: cfg.Analysis.MaxInterpretations,
	}
	if cfg.Datamuse.Enabled {
		svc.Fallback = datamuse.New(datamuse.Options{
			BaseURL:           cfg.Datamuse.BaseURL,
			Timeout:           cfg.Datamuse.Timeout,
			RequestsPerSecond: cfg.Datamuse.RequestsPerSecond,
			Logger:            logger,
		})
	}

	app = application{cfg: cfg, logger: logger, svc: svc}

	return nil
}

// loadDictionary loads the main lexicon, which must succeed, and then the user dictionary, which
// may be missing or contain bad lines.
func loadDictionary(cfg config.DictionaryConfig, logger *zap.Logger) (*poet.Dictionary, error) {
	dict := poet.NewDictionary()

	startTime := time.Now()
	stats, err := cmudict.LoadFile(cfg.CMUDictPath, dict, cmudict.Options{})
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", cfg.CMUDictPath, err)
	}
	logger.Debug("lexicon loaded",
		zap.String("path", cfg.CMUDictPath),
		zap.Int("entries", stats.ParsedLines),
		zap.Int("words", dict.Words()),
		zap.Duration("duration", time.Since(startTime)),
	)

	if cfg.UserDictPath != "" {
		stats, err := cmudict.LoadFile(cfg.UserDictPath, dict, cmudict.Options{SkipMalformed: true})
		if err != nil {
			logger.Warn("could not load user dictionary", zap.String("path", cfg.UserDictPath), zap.Error(err))
		} else {
			if stats.SkippedLines > 0 {
				logger.Warn("malformed lines in user dictionary",
					zap.String("path", cfg.UserDictPath),
					zap.Int("skipped", stats.SkippedLines),
				)
			}
			logger.Debug("user dictionary loaded", zap.String("path", cfg.UserDictPath), zap.Int("entries", stats.ParsedLines))
		}
	}

	return dict, nil
}
