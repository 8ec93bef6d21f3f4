package main

import (
	"sort"

	"github.com/spf13/cobra"

	"learnsubs/internal/language"
	"learnsubs/internal/nlp"
)

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List configured languages and their models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			builtin := make(map[string]bool)
			for _, id := range nlp.BuiltinModelIDs() {
				builtin[id] = true
			}

			codes := make([]string, 0, len(cfg.Languages))
			for code := range cfg.Languages {
				codes = append(codes, code)
			}
			sort.Strings(codes)

			rows := make([][]string, 0, len(codes))
			for _, code := range codes {
				lang := cfg.Languages[code]
				model := lang.Model
				if builtin[model] {
					model += " (built-in)"
				}
				rows = append(rows, []string{
					code,
					language.DisplayName(code),
					model,
					lang.Corpus,
					yesNo(lang.Enabled),
				})
			}
			fprintf(cmd.OutOrStdout(), "%s\n", renderTable(
				[]string{"Code", "Language", "Model", "Corpus", "Enabled"},
				rows,
				nil,
			))
			return nil
		},
	}
}
