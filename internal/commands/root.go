package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/hkstmt/internal/buildinfo"
	"github.com/cleared-dev/hkstmt/internal/config"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	verbose    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "hkstmt",
		Short:   "Extract transactions from Hong Kong bank and card statements",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log each parsing stage")

	rootCmd.AddCommand(
		newInitCommand(),
		newConvertCommand(opts),
		newIdentifyCommand(opts),
		newFileCommand(opts),
		newDoctorCommand(opts),
	)

	return rootCmd
}
