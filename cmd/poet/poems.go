package main

import (
	"github.com/spf13/cobra"
	"io"
)

var (
	poemsAuthor string
	poemsForm   string
	poemsOutput string
)

var poemsCmd = &cobra.Command{
	Use:   "poems",
	Short: "List the poems in the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		closeStorage, err := attachStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStorage()

		poems, err := app.svc.ListPoems(cmd.Context(), poemsAuthor, poemsForm)
		if err != nil {
			return err
		}

		return writeOutput(cmd.OutOrStdout(), poemsOutput, poems, func(w io.Writer) error {
			return writePoemsText(w, poems)
		})
	},
}

func init() {
	poemsCmd.Flags().StringVar(&poemsAuthor, "author", "", "only list poems by this author")
	poemsCmd.Flags().StringVar(&poemsForm, "form", "", "only list poems with a stanza in this verse form")
	poemsCmd.Flags().StringVarP(&poemsOutput, "output", "o", "text", "output format: text, json or yaml")
}
