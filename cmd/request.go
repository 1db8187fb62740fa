package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/advanced-http/internal/app"
	"github.com/oshokin/advanced-http/internal/client"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	getCmd = &cobra.Command{
		Use:   "get URL",
		Short: "Send a GET request and print the response body",
		Args:  cobra.ExactArgs(1),
		Run:   runRequest(client.ActionGet),
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	headCmd = &cobra.Command{
		Use:   "head URL",
		Short: "Send a HEAD request and print the response headers",
		Args:  cobra.ExactArgs(1),
		Run:   runRequest(client.ActionHead),
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	postCmd = &cobra.Command{
		Use:   "post URL",
		Short: "Send a POST request with an encoded body and print the response body",
		Long: `Send a POST request. Body fields given with -d are encoded with the
configured serializer (urlencoded or json), or the one given with --serializer.

Example:
advanced-http post https://httpbin.org/post -d name=ann -d tag=a -d tag=b --serializer json`,
		Args: cobra.ExactArgs(1),
		Run:  runRequest(client.ActionPost),
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	uploadCmd = &cobra.Command{
		Use:   "upload URL FILE",
		Short: "Upload a file as multipart/form-data",
		Args:  cobra.ExactArgs(2), //nolint:mnd // URL and file.
		Run:   runRequest(client.ActionUploadFile),
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	downloadCmd = &cobra.Command{
		Use:   "download URL PATH",
		Short: "Download a response body to a file",
		Long: `Download a response body to PATH. When PATH ends with a separator or names
an existing folder, the file is named after the last segment of the URL.`,
		Args: cobra.ExactArgs(2), //nolint:mnd // URL and path.
		Run:  runRequest(client.ActionDownloadFile),
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	addRequestFlags(getCmd)
	addRequestFlags(headCmd)
	addRequestFlags(postCmd)
	addRequestFlags(uploadCmd)
	addRequestFlags(downloadCmd)

	rootCmd.AddCommand(getCmd, headCmd, postCmd, uploadCmd, downloadCmd)
}

// addRequestFlags defines the flags of a request command.
func addRequestFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringArrayP("header", "H", nil, `request header as "Name: value", may be repeated.`)

	switch cmd.Name() {
	case "post":
		flags.StringArrayP("data", "d", nil, "body field as key=value, may be repeated.")
		flags.StringP("serializer", "s", "", "body encoding: urlencoded or json.")
	case "upload":
		flags.StringArrayP("param", "p", nil, "form field as key=value, may be repeated.")
		flags.StringP("name", "n", "file", "multipart field name of the file.")
	default:
		flags.StringArrayP("param", "p", nil, "query parameter as key=value, may be repeated.")
	}
}

func runRequest(action client.Action) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		app.ExecuteRequestCommand(cmd.Context(), appConfig, requestOptionsFromFlags(action, cmd.Flags(), args))
	}
}

func requestOptionsFromFlags(action client.Action, flags *pflag.FlagSet, args []string) app.RequestOptions {
	opts := app.RequestOptions{
		Action: action,
		URL:    args[0],
	}

	opts.Headers, _ = flags.GetStringArray("header")
	opts.Params, _ = flags.GetStringArray("param")
	opts.Data, _ = flags.GetStringArray("data")
	opts.Serializer, _ = flags.GetString("serializer")
	opts.Name, _ = flags.GetString("name")

	if len(args) > 1 {
		opts.FilePath = args[1]
	}

	return opts
}
