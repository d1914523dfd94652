package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tomasbasham/formjson"
	"github.com/tomasbasham/formjson/internal/prompt"
)

func newFillCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fill <file>",
		Short: "Fill in the form interactively, then print the serialized result",
		Long: `Prompt for the value of every control in the form, starting from the
values in the page, then serialize the filled controls to stdout.

Examples:
  formjson fill new_venue.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := formjson.FileDocument(args[0]).Document(ctx)
			if err != nil {
				return err
			}
			form, err := doc.FirstByClass(a.cfg.Class)
			if err != nil {
				return err
			}

			controls, err := prompt.Fill(ctx, a.driver(), form.Controls())
			if err != nil {
				return err
			}

			enc, err := a.encoder(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			h := formjson.NewHandler(
				formjson.LocatorFunc(func(context.Context) (formjson.ControlSource, error) {
					return filled(controls), nil
				}),
				formjson.WithLogger(a.logger),
				formjson.WithEncoder(enc),
			)
			_, err = h.HandleSubmit(ctx, &formjson.SubmitEvent{})
			return err
		},
	}
}

// filled is a fixed list of controls produced by the prompts.
type filled []formjson.Control

func (f filled) Controls() []formjson.Control { return f }
