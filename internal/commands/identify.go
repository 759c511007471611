package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newIdentifyCommand(root *rootOptions) *cobra.Command {
	var institution string

	cmd := &cobra.Command{
		Use:   "identify <files...>",
		Short: "Show the institution, account and archive name of each statement",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			return runIdentify(cmd.Context(), cmd.OutOrStdout(), s, args, institution)
		},
	}

	cmd.Flags().StringVarP(&institution, "institution", "i", "", "skip detection and use this importer")

	return cmd
}

func runIdentify(ctx context.Context, out io.Writer, s *session, files []string, institution string) error {
	var errs []error
	for _, path := range files {
		doc, err := s.load(ctx, path, loadOptions{institution: institution})
		if err != nil {
			s.logger.Error("identify failed", "file", path, "err", err)
			errs = append(errs, err)
			continue
		}

		fmt.Fprintln(out, path)
		fmt.Fprintf(out, "  institution:  %s\n", doc.imp.Name())
		fmt.Fprintf(out, "  account:      %s\n", orDash(doc.sc.Account))
		date := "-"
		if doc.sc.HasDate() {
			date = doc.sc.Date.Format("2006-01-02")
		}
		fmt.Fprintf(out, "  date:         %s\n", date)
		name, err := doc.archiveName()
		if err != nil {
			name = "- (" + err.Error() + ")"
		}
		fmt.Fprintf(out, "  file as:      %s\n", name)
		fmt.Fprintf(out, "  transactions: %d\n", len(doc.txns))
	}
	return errors.Join(errs...)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
