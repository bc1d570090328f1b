// Package cmd implements the travel-search CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/travel-search/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "travel-search",
		Short: "Search flights, hotels and activities through Amadeus",
		Long: "travel-search runs an API server in front of the Amadeus self-service\n" +
			"APIs and doubles as its command-line client. Search commands call the\n" +
			"server, or run in-process with --direct.",
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "CLI config file (default $HOME/.travel-search.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		Bool("direct", false, "search in-process with AMADEUS_* credentials instead of calling the server")
	rootCmd.PersistentFlags().
		String("server-config", "", "server YAML config used by serve and --direct (default: environment only)")

	for _, name := range []string{"server", "output", "direct", "server-config"} {
		cobra.CheckErr(viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(flightsCmd())
	rootCmd.AddCommand(hotelsCmd())
	rootCmd.AddCommand(activitiesCmd())
	rootCmd.AddCommand(quotaCmd())
	rootCmd.AddCommand(warmupCmd())
	rootCmd.AddCommand(versionCmd())
}

func initConfig() {
	// Credentials usually live in a local .env file.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Ignoring .env:", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".travel-search")
	}

	viper.SetEnvPrefix("TRAVEL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"), apiclient.WithUserAgent("travel-search-cli/"+Version))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
