package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"learnsubs/internal/analysis"
	"learnsubs/internal/vocab"
)

type batchItemView struct {
	Path      string  `json:"path"`
	FilmLevel float64 `json:"film_level"`
	Words     int     `json:"words,omitempty"`
	Error     string  `json:"error,omitempty"`
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var langFlag string
	var workers int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Rate every .srt file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			lang, err := ctx.resolveLanguage(langFlag)
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = cfg.Batch.Workers
			}

			paths, err := analysis.ListSubtitles(args[0])
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no .srt files in %s", args[0])
			}

			analyzer, _, err := ctx.newAnalyzer(cmd)
			if err != nil {
				return err
			}
			items := analyzer.Batch(cmd.Context(), paths, lang, workers)

			views := make([]batchItemView, len(items))
			failed := 0
			for i, item := range items {
				views[i].Path = item.Path
				if item.Err != nil {
					views[i].Error = item.Err.Error()
					failed++
					continue
				}
				views[i].FilmLevel = item.Result.FilmLevel
				views[i].Words = item.Result.Dictionary.Len()
			}

			if jsonOutput {
				if err := writeJSON(cmd, views); err != nil {
					return err
				}
			} else {
				printBatch(cmd, views, vocab.Thresholds{
					EasyMin:         cfg.Difficulty.EasyMin,
					IntermediateMin: cfg.Difficulty.IntermediateMin,
				})
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(items))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "Subtitle language code (e.g. de, en, pt)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent analyses (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printBatch(cmd *cobra.Command, views []batchItemView, thresholds vocab.Thresholds) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	rows := make([][]string, 0, len(views))
	for _, v := range views {
		if v.Error != "" {
			rows = append(rows, []string{filepath.Base(v.Path), "-", "-", "error: " + v.Error})
			continue
		}
		rows = append(rows, []string{
			filepath.Base(v.Path),
			formatScore(v.FilmLevel),
			strconv.Itoa(v.Words),
			paintTier(thresholds.TierFor(v.FilmLevel), colorize),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"File", "Film level", "Words", "Overall"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
	))
}
