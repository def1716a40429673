package main

import (
	"errors"
	"github.com/gissleh/poet"
	"github.com/gissleh/poet/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"io"
)

var queryOutput string

var queryCmd = &cobra.Command{
	Use:   "query WORD...",
	Short: "Show the pronunciations of words, and the words that sound most like them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reports := make([]*service.WordReport, 0, len(args))
		for _, word := range args {
			report, err := app.svc.LookupWord(cmd.Context(), word)
			if errors.Is(err, poet.ErrWordNotFound) {
				app.logger.Warn("word not found", zap.String("word", word))
				continue
			} else if err != nil {
				return err
			}

			reports = append(reports, report)
		}

		return writeOutput(cmd.OutOrStdout(), queryOutput, reports, func(w io.Writer) error {
			for _, report := range reports {
				if err := writeWordText(w, report); err != nil {
					return err
				}
			}

			return nil
		})
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryOutput, "output", "o", "text", "output format: text, json or yaml")
}
