package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/studiowebux/curlfmt/internal/cli"
	"github.com/studiowebux/curlfmt/internal/config"
	"github.com/studiowebux/curlfmt/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "curlfmt [curl command...]",
	Short: "Run a cURL command and print a readable request/response report",
	Long: `curlfmt executes a cURL command and prints the request URL, method and
payload together with the response status and body. JSON payloads and
responses are pretty-printed.

The command is taken from the arguments, from piped stdin, or from the
clipboard when neither is given.

Examples:
  curlfmt curl 'https://httpbin.org/get'
  curlfmt curl 'https://httpbin.org/post' -X POST --data-raw '{"a":1}'
  curlfmt "curl 'https://httpbin.org/get' -H 'Accept: */*'"
  pbpaste | curlfmt -o json
  curlfmt paste --copy                 # format the clipboard, copy the report back
  curlfmt ui                           # interactive launcher
  curlfmt history                      # past reports
  curlfmt query save ids 'items[].id'  # then: curlfmt -q @ids curl ...`,
	Version:           version.Version,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFormat(cmd, args, false)
	},
}

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Format the cURL command held in the clipboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFormat(cmd, nil, true)
	},
}

var uiCmd = &cobra.Command{
	Use:   "ui [query]",
	Short: "Open the interactive launcher",
	Long: `Open the interactive launcher. With no query the clipboard is checked
for a cURL command. Enter runs the query, tab moves to the results and
enter on a result copies the report to the clipboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) > 0 {
			query = strings.Join(args, " ")
		}
		return cli.RunUI(cmd.Context(), cli.UIOptions{
			Query:      query,
			ConfigPath: flagConfig,
			LogLevel:   flagLogLevel,
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryList(cmd)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past reports, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryList(cmd)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := cli.ClearHistory(config.DatabasePath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d history entries\n", count)
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Manage saved response queries, used as -q @name",
}

var querySaveCmd = &cobra.Command{
	Use:   "save <name> <expression>",
	Short: "Save a JMESPath expression or $(command) under a name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.SaveBookmark(cmd.OutOrStdout(), config.DatabasePath, args[0], args[1])
	},
}

var queryListCmd = &cobra.Command{
	Use:   "list [search]",
	Short: "List saved queries",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := ""
		if len(args) > 0 {
			term = args[0]
		}
		return cli.PrintBookmarks(cmd.OutOrStdout(), config.DatabasePath, term, queryOutput)
	},
}

var queryDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.DeleteBookmark(cmd.OutOrStdout(), config.DatabasePath, args[0])
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, optionally checking for a newer release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "curlfmt version %s\n", version.Version)
		if !flagCheck {
			return nil
		}

		info, err := version.CheckForUpdate(cmd.Context(), version.Version)
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}
		if info.Available {
			fmt.Fprintf(out, "A newer version is available: %s\n%s\n", info.Latest, info.URL)
		} else {
			fmt.Fprintln(out, "You are running the latest version")
		}
		return nil
	},
}

// Global flags
var (
	flagConfig   string
	flagLogLevel string
	flagNoColor  bool
)

// Flags for root/paste
var (
	flagOutput    string
	flagCopy      bool
	flagQuery     string
	flagNoHistory bool
)

// Flags for history
var (
	historyLimit  int
	historyOutput string
)

// Flags for query list
var queryOutput string

// Flags for version
var flagCheck bool

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.curlfmt/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (error/warn/info/debug)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	// cURL flags after the first argument belong to the command, not to curlfmt
	rootCmd.Flags().SetInterspersed(false)

	// Root command flags
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (text/json/yaml/body)")
	rootCmd.Flags().BoolVarP(&flagCopy, "copy", "c", false, "Copy the report to the clipboard")
	rootCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query or $(command) applied to the response body")
	rootCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not save the report to history")

	// Paste command flags (same as root)
	pasteCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (text/json/yaml/body)")
	pasteCmd.Flags().BoolVarP(&flagCopy, "copy", "c", false, "Copy the report to the clipboard")
	pasteCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query or $(command) applied to the response body")
	pasteCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not save the report to history")

	// History flags
	historyCmd.PersistentFlags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of entries (0 for all)")
	historyCmd.PersistentFlags().StringVarP(&historyOutput, "output", "o", "text", "Output format (text/json/yaml)")

	queryListCmd.Flags().StringVarP(&queryOutput, "output", "o", "text", "Output format (text/json)")

	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Check GitHub for a newer release")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)

	queryCmd.AddCommand(querySaveCmd)
	queryCmd.AddCommand(queryListCmd)
	queryCmd.AddCommand(queryDeleteCmd)

	rootCmd.AddCommand(pasteCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig creates the config directory and default settings file
func initConfig(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	return nil
}

// runFormat formats one command in CLI mode
func runFormat(cmd *cobra.Command, args []string, fromClipboard bool) error {
	opts := cli.RunOptions{
		Args:          args,
		FromClipboard: fromClipboard,
		ConfigPath:    flagConfig,
		LogLevel:      flagLogLevel,
		OutputFormat:  flagOutput,
		Query:         flagQuery,
		Copy:          flagCopy,
		NoColor:       flagNoColor,
		NoHistory:     flagNoHistory,
	}

	if !fromClipboard && len(args) == 0 && stdinPiped() {
		opts.Stdin = os.Stdin
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return cli.Run(ctx, opts)
}

func runHistoryList(cmd *cobra.Command) error {
	return cli.PrintHistory(cli.HistoryOptions{
		DBPath:       config.DatabasePath,
		Limit:        historyLimit,
		OutputFormat: historyOutput,
		Stdout:       cmd.OutOrStdout(),
	})
}

// stdinPiped reports whether data is being piped in
func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
