package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/hkstmt/internal/pdftotext"
)

func newDoctorCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that pdftotext is installed and show the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			return runDoctor(cmd.Context(), cmd.OutOrStdout(), s)
		},
	}
}

func runDoctor(ctx context.Context, out io.Writer, s *session) error {
	fmt.Fprintf(out, "importers:  %s\n", strings.Join(s.registry.Names(), ", "))
	fmt.Fprintf(out, "output:     %s (%s)\n", s.cfg.Output.Directory, s.cfg.Output.Format)
	fmt.Fprintf(out, "archive:    %s\n", s.cfg.Archive.Directory)

	conv, err := pdftotext.Probe(ctx, pdftotext.Options{
		Path:    s.cfg.Converter.Path,
		Timeout: s.cfg.Converter.Timeout,
		Logger:  s.logger,
	})
	if err != nil {
		fmt.Fprintln(out, "pdftotext:  not found")
		return fmt.Errorf("pdftotext is needed for PDF statements (install poppler-utils): %w", err)
	}
	fmt.Fprintf(out, "pdftotext:  %s (%s)\n", conv.Path(), conv.Version())
	return nil
}
