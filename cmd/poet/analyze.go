package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"io"
	"os"
)

var (
	analyzeForms  []string
	analyzeLimit  int
	analyzeOutput string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [FILE]",
	Short: "Check every stanza of a poem against the verse forms",
	Long: `Analyze reads a poem from FILE, or from standard input if FILE is missing or "-". Stanzas
are separated by blank lines, a single line before a stanza is its title, and lines starting
with # are ignored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("limit") {
			app.svc.MaxInterpretations = analyzeLimit
		}

		analysis, err := app.svc.Analyze(cmd.Context(), text, analyzeForms)
		if err != nil {
			return err
		}

		return writeOutput(cmd.OutOrStdout(), analyzeOutput, analysis, func(w io.Writer) error {
			return writeAnalysisText(w, analysis)
		})
	},
}

func init() {
	analyzeCmd.Flags().StringSliceVarP(&analyzeForms, "form", "f", nil, "verse forms to check (default all)")
	analyzeCmd.Flags().IntVarP(&analyzeLimit, "limit", "l", 0, "readings to check per stanza and form, 0 for no limit (default from config)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "text", "output format: text, json or yaml")
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("could not read poem: %w", err)
	}

	return string(data), nil
}
