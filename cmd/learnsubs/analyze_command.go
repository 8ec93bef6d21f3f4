package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"learnsubs/internal/analysis"
	"learnsubs/internal/vocab"
)

type wordView struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
	Tier  string  `json:"tier"`
}

type resultView struct {
	Path       string         `json:"path"`
	Language   string         `json:"language"`
	RunID      string         `json:"run_id"`
	FilmLevel  float64        `json:"film_level"`
	Repaired   bool           `json:"repaired"`
	RepairPath string         `json:"repair_path,omitempty"`
	Counts     map[string]int `json:"counts"`
	Words      []wordView     `json:"words"`
}

func newResultView(result *analysis.Result, tier vocab.Tier) resultView {
	counts := make(map[string]int, len(vocab.Tiers))
	for t, n := range result.Dictionary.Counts() {
		counts[string(t)] = n
	}
	words := make([]wordView, 0, result.Dictionary.Len())
	for _, e := range result.Dictionary.Entries() {
		if tier != "" && e.Tier != tier {
			continue
		}
		words = append(words, wordView{Word: e.Word, Score: e.Score, Tier: string(e.Tier)})
	}
	return resultView{
		Path:       result.Path,
		Language:   result.Language,
		RunID:      result.RunID,
		FilmLevel:  result.FilmLevel,
		Repaired:   result.Repaired,
		RepairPath: result.RepairPath,
		Counts:     counts,
		Words:      words,
	}
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var langFlag string
	var levelFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "analyze <file.srt>",
		Short: "Rate the vocabulary of one subtitle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tier vocab.Tier
			if levelFlag != "" {
				parsed, err := vocab.ParseTier(levelFlag)
				if err != nil {
					return err
				}
				tier = parsed
			}
			lang, err := ctx.resolveLanguage(langFlag)
			if err != nil {
				return err
			}
			analyzer, _, err := ctx.newAnalyzer(cmd)
			if err != nil {
				return err
			}

			result, err := analyzer.Analyze(cmd.Context(), args[0], lang)
			if err != nil {
				return err
			}

			view := newResultView(result, tier)
			if jsonOutput {
				return writeJSON(cmd, view)
			}
			printResult(cmd, view, tier)
			return nil
		},
	}

	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "Subtitle language code (e.g. de, en, pt)")
	cmd.Flags().StringVar(&levelFlag, "level", "", "Only list words of this tier: easy, intermediate or advanced")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printResult(cmd *cobra.Command, view resultView, tier vocab.Tier) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fprintf(out, "File:        %s\n", view.Path)
	fprintf(out, "Language:    %s\n", languageLabel(view.Language))
	fprintf(out, "Film level:  %s\n", formatScore(view.FilmLevel))
	total := view.Counts[string(vocab.Easy)] + view.Counts[string(vocab.Intermediate)] + view.Counts[string(vocab.Advanced)]
	fprintf(out, "Words:       %d (easy %d, intermediate %d, advanced %d)\n",
		total,
		view.Counts[string(vocab.Easy)],
		view.Counts[string(vocab.Intermediate)],
		view.Counts[string(vocab.Advanced)],
	)
	if view.Repaired {
		fprintf(out, "Repaired:    yes (%s)\n", view.RepairPath)
	}

	if len(view.Words) == 0 {
		if tier != "" {
			fprintf(out, "\nNo %s words.\n", tier)
		}
		return
	}

	rows := make([][]string, 0, len(view.Words))
	for _, w := range view.Words {
		rows = append(rows, []string{w.Word, formatScore(w.Score), paintTier(vocab.Tier(w.Tier), colorize)})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(
		[]string{"Word", "Zipf", "Tier"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	))
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
