package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"learnsubs/internal/logging"
	"learnsubs/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var langFlag string
	var workers int

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Rate subtitle files as they are added to a directory",
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
			analyzer, logger, err := ctx.newAnalyzer(cmd)
			if err != nil {
				return err
			}

			handler := func(runCtx context.Context, path string) error {
				result, err := analyzer.Analyze(runCtx, path, lang)
				if err != nil {
					return err
				}
				fprintf(cmd.OutOrStdout(), "%s\t%s\n", formatScore(result.FilmLevel), path)
				return nil
			}

			w, err := watch.New(args[0], handler, watch.Options{
				MaxConcurrent: workers,
				SettleDelay:   watch.DefaultSettleDelay,
			}, logger)
			if err != nil {
				return err
			}
			defer w.Close()

			err = w.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				logger.Info("watch stopped", logging.String("dir", args[0]))
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "Subtitle language code (e.g. de, en, pt)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent analyses (default from config)")
	return cmd
}
