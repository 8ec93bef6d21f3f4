package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"learnsubs/internal/vocab"
)

func newFrequencyCommand(ctx *commandContext) *cobra.Command {
	freqCmd := &cobra.Command{
		Use:   "frequency",
		Short: "Manage the word frequency database",
	}

	freqCmd.AddCommand(newFrequencyImportCommand(ctx))
	freqCmd.AddCommand(newFrequencyLookupCommand(ctx))
	freqCmd.AddCommand(newFrequencyStatsCommand(ctx))

	return freqCmd
}

func newFrequencyImportCommand(ctx *commandContext) *cobra.Command {
	var langFlag string

	cmd := &cobra.Command{
		Use:   "import <word-list>",
		Short: "Import a word<TAB>zipf list into the frequency database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			corpus, err := corpusFor(cfg, langFlag)
			if err != nil {
				return err
			}
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}
			store, err := ctx.frequencyStore(cmd.Context(), logger)
			if err != nil {
				return err
			}
			n, err := store.ImportFile(cmd.Context(), corpus, args[0])
			if err != nil {
				return err
			}
			fprintf(cmd.OutOrStdout(), "Imported %d words into corpus %s (%s)\n", n, corpus, store.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "Language or corpus code")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}

func newFrequencyLookupCommand(ctx *commandContext) *cobra.Command {
	var langFlag string

	cmd := &cobra.Command{
		Use:   "lookup <word>...",
		Short: "Show the Zipf frequency and tier of words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			lang, err := ctx.resolveLanguage(langFlag)
			if err != nil {
				return err
			}
			corpus, err := corpusFor(cfg, lang)
			if err != nil {
				return err
			}
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}
			store, err := ctx.frequencyStore(cmd.Context(), logger)
			if err != nil {
				return err
			}

			thresholds := vocab.Thresholds{EasyMin: cfg.Difficulty.EasyMin, IntermediateMin: cfg.Difficulty.IntermediateMin}
			colorize := shouldColorize(cmd.OutOrStdout())
			rows := make([][]string, 0, len(args))
			for _, word := range args {
				zipf, err := store.Zipf(cmd.Context(), word, corpus)
				if err != nil {
					return err
				}
				rows = append(rows, []string{word, formatScore(zipf), paintTier(thresholds.TierFor(zipf), colorize)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Word", "Zipf", "Tier"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "Language code")
	return cmd
}

func newFrequencyStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show word counts per corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}
			store, err := ctx.frequencyStore(cmd.Context(), logger)
			if err != nil {
				return err
			}
			counts, err := store.Counts(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fprintf(out, "Database: %s\n", store.Path())
			if len(counts) == 0 {
				fprintf(out, "No words imported yet. Run `learnsubs frequency import <file> --lang <code>`.\n")
				return nil
			}
			langs := make([]string, 0, len(counts))
			for lang := range counts {
				langs = append(langs, lang)
			}
			sort.Strings(langs)
			rows := make([][]string, 0, len(langs))
			for _, lang := range langs {
				rows = append(rows, []string{languageLabel(lang), strconv.Itoa(counts[lang])})
			}
			fmt.Fprintln(out, renderTable([]string{"Corpus", "Words"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
}
