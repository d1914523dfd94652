package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tomasbasham/formjson"
	"github.com/tomasbasham/formjson/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Submit the form every time the page changes",
		Long: `Bind to the form in the page, then deliver a submission whenever the file
is written. The form is looked up again for every submission, so edits to
the page between submissions are reflected in the output. A submission that
cannot find the form is logged and watching continues.

Examples:
  formjson watch new_show.html
  formjson watch --log-level debug new_show.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := a.bind(ctx, formjson.FileDocument(args[0]), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			w, err := watch.New(args[0], a.cfg.Watch.Debounce, a.logger)
			if err != nil {
				return err
			}
			defer w.Close()

			a.logger.InfoContext(ctx, "watching page", slog.String("path", args[0]))
			return w.Run(ctx, func(ctx context.Context) error {
				_, err := h.HandleSubmit(ctx, &formjson.SubmitEvent{})
				if errors.Is(err, formjson.ErrFormNotFound) || errors.Is(err, formjson.ErrNotForm) {
					return nil
				}
				return err
			})
		},
	}
}
