package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"newsum/internal/config"
)

var version = "0.1.0-dev"

// errReported marks an error whose message was already shown to the user.
var errReported = errors.New("already reported")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "newsum",
		Short: "News summary client - 100/200/300 character summaries of an article",
		Long: `newsum sends a news article URL to the summarization API and shows the
returned summary, wrapped to a fixed width, at one of three lengths.

Run 'newsum serve' for the single-page web client.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "config.json", "Path to config file (optional)")
	rootCmd.PersistentFlags().String("api", "", "Summarization API origin, e.g. http://localhost:8000")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSummarizeCmd(),
		newReflowCmd(),
		newServeCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "newsum version %s\n", version)
			}
		},
	}
}

// loadConfig reads --config (a missing file means defaults) and applies --api.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfigOrDefault(path)
	if err != nil {
		return nil, err
	}
	if apiURL, _ := cmd.Flags().GetString("api"); apiURL != "" {
		cfg.API.BaseURL = apiURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
