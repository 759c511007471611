// Package gitops commits filed statements when the archive lives in a git work tree.
package gitops

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Author is the commit author.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// IsRepo reports whether dir is inside a git work tree.
func IsRepo(ctx context.Context, dir string) bool {
	out, err := git(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Init creates a git repository in dir. Re-running it in an existing
// repository is harmless.
func Init(ctx context.Context, dir string) error {
	_, err := git(ctx, dir, "init")
	return err
}

// CommitPaths stages paths (relative to dir or absolute) and commits them.
// Returns the short commit hash.
func CommitPaths(ctx context.Context, dir, message string, author Author, paths ...string) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("git commit: no paths to commit")
	}

	add := append([]string{"add", "--"}, paths...)
	if _, err := git(ctx, dir, add...); err != nil {
		return "", err
	}
	commit := append([]string{"commit", "-m", message, "--author", author.String(), "--"}, paths...)
	if _, err := git(ctx, dir, commit...); err != nil {
		return "", err
	}
	return git(ctx, dir, "rev-parse", "--short", "HEAD")
}

func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}
