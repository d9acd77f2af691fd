package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"kgsite/internal/structures"
)

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:   "kgsite",
	Short: "KenetG site backend",
	Long: `kgsite serves the KenetG site API: mock analytics series and the
geolocation consent flow. The analytics and geo subcommands drive the same
components against the configured storage.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flags.DebugMode, "debug", false, "mirror logs to the console and lower the level")

	rootCmd.AddCommand(serveCmd, analyticsCmd, geoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
