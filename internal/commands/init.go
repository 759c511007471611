package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/hkstmt/internal/config"
	"github.com/cleared-dev/hkstmt/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var git bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a statements workspace with a default hkstmt.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), cmd.OutOrStdout(), absDir, git)
		},
	}

	cmd.Flags().BoolVar(&git, "git", false, "make the archive a git repository and commit filed statements")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, dir string, git bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	cfg.Output.Directory = "exports"
	cfg.Archive.Git.AutoCommit = git

	for _, d := range []string{"inbox", cfg.Output.Directory, cfg.Archive.Directory} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	if git {
		if err := gitops.Init(ctx, filepath.Join(dir, cfg.Archive.Directory)); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
	}

	fmt.Fprintf(out, "Initialized statements workspace at %s\n", dir)
	return nil
}
