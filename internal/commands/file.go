package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/hkstmt/internal/filing"
	"github.com/cleared-dev/hkstmt/internal/gitops"
	"github.com/cleared-dev/hkstmt/internal/processlog"
)

type fileOptions struct {
	archive     string
	institution string
	inbox       string
	commit      bool
	dryRun      bool
}

func newFileCommand(root *rootOptions) *cobra.Command {
	var opts fileOptions

	cmd := &cobra.Command{
		Use:   "file [files...]",
		Short: "Rename statements by institution, account and date and move them into the archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			return runFile(cmd.Context(), cmd.OutOrStdout(), s, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.archive, "archive", "", "archive directory (default from config)")
	cmd.Flags().StringVarP(&opts.institution, "institution", "i", "", "skip detection and use this importer")
	cmd.Flags().StringVar(&opts.inbox, "inbox", "", "also file every statement in this directory")
	cmd.Flags().BoolVar(&opts.commit, "commit", false, "commit the filed statements to git (default from config)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the archive names without moving anything")

	return cmd
}

func runFile(ctx context.Context, out io.Writer, s *session, args []string, opts fileOptions) error {
	files, err := inputs(args, opts.inbox)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no statements to file")
	}

	dir := opts.archive
	if dir == "" {
		dir = s.cfg.Archive.Directory
	}
	seen, err := processlog.Read(dir)
	if err != nil {
		return err
	}

	var (
		filed []processlog.Entry
		errs  []error
	)
	for _, path := range files {
		doc, err := s.load(ctx, path, loadOptions{institution: opts.institution})
		if err != nil {
			s.logger.Error("file failed", "file", path, "err", err)
			errs = append(errs, err)
			continue
		}
		name, err := doc.archiveName()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}

		if processlog.Archived(seen, name) {
			fmt.Fprintf(out, "Already filed: %s as %s\n", path, name)
			continue
		}
		if opts.dryRun {
			fmt.Fprintf(out, "Would file %s as %s\n", path, name)
			continue
		}

		dst, err := filing.Move(path, dir, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entry := processlog.Entry{
			Timestamp:     processlog.Stamp{Time: time.Now().UTC()},
			Institution:   doc.imp.Name(),
			Account:       doc.sc.Account,
			StatementDate: processlog.Day{Time: doc.sc.Date},
			Source:        filepath.Base(path),
			ArchivedAs:    name,
			Transactions:  len(doc.txns),
		}
		filed = append(filed, entry)
		seen = append(seen, entry)
		fmt.Fprintf(out, "Filed %s as %s\n", path, dst)
	}

	if len(filed) > 0 {
		if err := processlog.Append(dir, filed); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if opts.commit || s.cfg.Archive.Git.AutoCommit {
			if err := commitFiled(ctx, out, s, dir, filed); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func commitFiled(ctx context.Context, out io.Writer, s *session, dir string, filed []processlog.Entry) error {
	if !gitops.IsRepo(ctx, dir) {
		s.logger.Warn("archive is not in a git repository, skipping commit", "dir", dir)
		return nil
	}

	paths := []string{processlog.LogFile}
	for _, e := range filed {
		paths = append(paths, e.ArchivedAs)
	}
	msg := fmt.Sprintf("file: %d statement(s)", len(filed))
	if len(filed) == 1 {
		msg = "file: " + filed[0].ArchivedAs
	}

	author := gitops.Author{Name: s.cfg.Archive.Git.AuthorName, Email: s.cfg.Archive.Git.AuthorEmail}
	hash, err := gitops.CommitPaths(ctx, dir, msg, author, paths...)
	if err != nil {
		return fmt.Errorf("committing archive: %w", err)
	}
	fmt.Fprintf(out, "Committed %s\n", hash)
	return nil
}
