package main

import (
	"github.com/spf13/cobra"

	"github.com/tomasbasham/formjson"
)

func newSubmitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "submit [file]",
		Short: "Submit the form once and print the serialized result",
		Long: `Parse the page, locate the form and deliver a single submission. The
serialized form is written to stdout. With no file, or when file is "-",
the page is read from stdin.

Examples:
  formjson submit new_artist.html
  formjson submit --format yaml < new_venue.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := pageSource(cmd, args)
			if err != nil {
				return err
			}
			h, err := a.bind(cmd.Context(), src, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = h.HandleSubmit(cmd.Context(), &formjson.SubmitEvent{})
			return err
		},
	}
}

// pageSource returns the document named by args, reading stdin once when no
// file is given.
func pageSource(cmd *cobra.Command, args []string) (formjson.DocumentSource, error) {
	if len(args) == 1 && args[0] != "-" {
		return formjson.FileDocument(args[0]), nil
	}
	doc, err := formjson.Parse(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	return formjson.StaticDocument(doc), nil
}
