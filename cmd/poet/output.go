package main

import (
	"encoding/json"
	"fmt"
	"github.com/gissleh/poet"
	"github.com/gissleh/poet/service"
	"gopkg.in/yaml.v3"
	"io"
	"strings"
)

var outputFormats = []string{"text", "json", "yaml"}

// writeOutput writes the value as JSON or YAML, or calls text for the human readable form.
func writeOutput(w io.Writer, format string, value any, text func(w io.Writer) error) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return text(w)
	default:
		return fmt.Errorf("unknown output format %q, expected one of %s", format, strings.Join(outputFormats, ", "))
	}
}

func writeWordText(w io.Writer, report *service.WordReport) error {
	sb := strings.Builder{}
	sb.WriteString(report.Word)
	if report.Remote {
		sb.WriteString(" (remote)")
	}
	sb.WriteByte('\n')

	for _, entry := range report.Entries {
		sb.WriteString(fmt.Sprintf("  %-16s %-24s %-16s %d\n", entry.DictKey, entry.Phonemes, entry.IPA, entry.Syllables))
	}

	if len(report.Similar) > 0 {
		words := make([]string, 0, len(report.Similar))
		for _, similar := range report.Similar {
			words = append(words, fmt.Sprintf("%s(%d)", similar.Word, similar.Score))
		}

		sb.WriteString("  similar: ")
		sb.WriteString(strings.Join(words, " "))
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeAnalysisText(w io.Writer, analysis *service.Analysis) error {
	sb := strings.Builder{}

	for i, stanza := range analysis.Stanzas {
		if i > 0 {
			sb.WriteByte('\n')
		}

		title := stanza.Title
		if title == "" {
			title = fmt.Sprintf("Stanza %d", i+1)
		}
		sb.WriteString(fmt.Sprintf("%s (%d readings, %d unpruned)\n", title, stanza.Interpretations, stanza.Unpruned))

		for _, form := range stanza.Forms {
			sb.WriteString("  ")
			sb.WriteString(form.Form)
			if form.Valid {
				sb.WriteString(": yes\n")
			} else {
				sb.WriteString(": no\n")
			}

			for j, line := range stanza.Lines {
				syllables := 0
				if j < len(form.Syllables) {
					syllables = form.Syllables[j]
				}

				sb.WriteString(fmt.Sprintf("    %3d %2d  %s\n", line.Number, syllables, line.Text))
				for _, message := range form.ErrorsForLine(j) {
					sb.WriteString("           ! " + message + "\n")
				}
			}
			for _, message := range form.StanzaErrors() {
				sb.WriteString("    ! " + message + "\n")
			}
			if form.Truncated {
				sb.WriteString(fmt.Sprintf("    (stopped after %d of %d readings)\n", form.Examined, form.Total))
			}
		}
	}

	if len(analysis.Unknown) > 0 {
		sb.WriteString("\nunknown: " + strings.Join(analysis.Unknown, ", ") + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writePoemsText(w io.Writer, poems []poet.Poem) error {
	sb := strings.Builder{}
	for _, poem := range poems {
		sb.WriteString(fmt.Sprintf("%s\t%s\t%s\t%s\n", poem.ID, poem.Author, poem.Title, strings.Join(poem.Forms, ",")))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
