package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/advanced-http/internal/app"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	cookiesCmd = &cobra.Command{
		Use:   "cookies",
		Short: "Cookie jar management commands",
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	cookiesListCmd = &cobra.Command{
		Use:   "list",
		Short: "Print the stored cookies per origin",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteCookiesListCommand(cmd.Context(), appConfig)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	cookiesClearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored cookie",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteCookiesClearCommand(cmd.Context(), appConfig)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	headersCmd = &cobra.Command{
		Use:   "headers",
		Short: "Session header management commands",
		Long: `Manage the headers sent with every request.

Headers are stored in the configuration file. A header given on the command line
with -H replaces the session header of the same name for that request only.`,
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	headersSetCmd = &cobra.Command{
		Use:   "set NAME [VALUE]",
		Short: "Set a session header, or remove it when VALUE is omitted",
		Args:  cobra.RangeArgs(1, 2), //nolint:mnd // Name and optional value.
		Run: func(cmd *cobra.Command, args []string) {
			var value string
			if len(args) > 1 {
				value = args[1]
			}

			app.ExecuteHeadersSetCommand(cmd.Context(), appConfig, args[0], value)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	headersListCmd = &cobra.Command{
		Use:   "list",
		Short: "Print the session headers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteHeadersListCommand(cmd.Context(), appConfig)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Authentication management commands",
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	authBasicCmd = &cobra.Command{
		Use:   "basic USERNAME PASSWORD",
		Short: "Store a Basic Authorization header in the configuration file",
		Long: `Store a Basic Authorization header built from USERNAME and PASSWORD.

Credentials are encoded as UTF-8, so non-ASCII user names and passwords are safe.
Every later request carries the header unless it sets its own Authorization header.`,
		Args: cobra.ExactArgs(2), //nolint:mnd // User name and password.
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecuteAuthBasicCommand(cmd.Context(), appConfig, args[0], args[1])
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version) //nolint:errcheck // Nothing to do if stdout is gone.
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	cookiesCmd.AddCommand(cookiesListCmd, cookiesClearCmd)
	headersCmd.AddCommand(headersSetCmd, headersListCmd)
	authCmd.AddCommand(authBasicCmd)

	rootCmd.AddCommand(cookiesCmd, headersCmd, authCmd, versionCmd)
}
