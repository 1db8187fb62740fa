package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/advanced-http/internal/config"
	"github.com/oshokin/advanced-http/internal/logger"
	"github.com/oshokin/advanced-http/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "advanced-http",
		Short: "Send HTTP requests that share headers, cookies and body encoding between runs.",
		Long: `Advanced HTTP is a CLI HTTP client that keeps a session between runs:
- Session headers from the configuration file are sent with every request
- Cookies set by a server are stored per origin and sent back on later requests
- POST bodies are encoded as urlencoded forms or JSON
- Server certificates can be pinned, or checks relaxed for testing

Example:
advanced-http get https://httpbin.org/get -p page=2 -H "Accept: application/json"`,
		Version:           version.Full(),
		PersistentPreRun:  initConfig,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	addConfigFlags(rootCmd.PersistentFlags())
}

// addConfigFlags defines the flags overriding configuration file values.
func addConfigFlags(flags *pflag.FlagSet) {
	flags.Bool(
		"insecure",
		false,
		"accept any server certificate.")

	flags.Bool(
		"pin",
		false,
		"accept only servers whose certificate is stored in the certificates folder.")

	flags.Bool(
		"skip-hostname-check",
		false,
		"verify the certificate chain but not the host name.")

	flags.StringP(
		"log-level",
		"l",
		"",
		"log level: debug, info, warn, error.")

	flags.StringP(
		"timeout",
		"t",
		"",
		"request timeout, for example: 10s, 1m.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if err = bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("insecure"); flag != nil && flag.Changed {
		cfg.AcceptAllCerts, _ = flags.GetBool("insecure")
	}

	if flag := flags.Lookup("pin"); flag != nil && flag.Changed {
		cfg.SSLPinning, _ = flags.GetBool("pin")
	}

	if flag := flags.Lookup("skip-hostname-check"); flag != nil && flag.Changed {
		skip, _ := flags.GetBool("skip-hostname-check")
		cfg.ValidateDomainName = !skip
	}

	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if flag := flags.Lookup("timeout"); flag != nil && flag.Changed {
		cfg.Timeout, _ = flags.GetString("timeout")
	}

	return config.ValidateConfig(cfg)
}
