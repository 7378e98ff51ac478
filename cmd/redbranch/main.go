// Command redbranch creates a git branch for a Redmine ticket.
//
// It fetches the ticket, derives the team-convention branch name
// (rd-<id>-<trigram>-<major.minor>-<subject>), picks the base branch
// (maintenance wab-<version> branch, the parent ticket's branch, or
// master) and creates and checks out the new branch.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	clierrors "github.com/randalmurphal/redbranch/errors"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	flagTicket  int
	flagAPIKey  string
	flagURL     string
	flagRemote  string
	flagDryRun  bool
	flagVerbose bool
	flagNoInput bool
)

var rootCmd = &cobra.Command{
	Use:   "redbranch",
	Short: "Create a git branch for a Redmine ticket",
	Long: `redbranch - branch names the team way.

Fetches a Redmine ticket and creates a branch named
rd-<id>-<trigram>-<major.minor>-<subject> from the right base:
the wab-<version> maintenance branch when one exists, the parent
ticket's branch if you pick it, or master.

Examples:
  redbranch -t 26968               # branch for ticket 26968
  redbranch -t 26968 --dry-run     # show what would happen
  redbranch config set url https://redmine.example.com
  redbranch auth login             # store the API key in the keyring`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate()
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage redbranch settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one setting, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := ""
		if len(args) == 1 {
			key = args[0]
		}
		return runConfigGet(key)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write a setting to the global config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(args[0], args[1])
	},
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Redmine API key",
}

var authLoginCmd = &cobra.Command{
	Use:   "login [api-key]",
	Short: "Store the API key in the system keyring",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := ""
		if len(args) == 1 {
			key = args[0]
		}
		return runAuthLogin(key)
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the API key from the system keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthLogout()
	},
}

func init() {
	rootCmd.Flags().IntVarP(&flagTicket, "ticket", "t", 0, "Redmine ticket number")
	rootCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "Redmine API key (overrides keyring and config)")
	rootCmd.Flags().StringVar(&flagURL, "url", "", "Redmine base URL")
	rootCmd.Flags().StringVar(&flagRemote, "remote", "", "git remote to branch from")
	rootCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "show what would happen without creating anything")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "print extra diagnostics")
	rootCmd.Flags().BoolVar(&flagNoInput, "no-input", false, "never prompt; take the default choice")
	_ = rootCmd.MarkFlagRequired("ticket")

	configCmd.AddCommand(configGetCmd, configSetCmd)
	authCmd.AddCommand(authLoginCmd, authLogoutCmd)
	rootCmd.AddCommand(configCmd, authCmd)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n%s\n", err, cmd.UsageString())
		return err
	})
}

// fail prints a described error and returns it so Execute exits 1.
func fail(err error, serverURL string) error {
	err = clierrors.Describe(err, serverURL)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}
