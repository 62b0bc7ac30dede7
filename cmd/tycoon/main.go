package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile  string
	catalogPath string
	dbPath      string
	profileKey  string
	remoteURL   string
	logLevel    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tycoon",
		Short: "Idle tycoon economy engine",
		Long: `Run, inspect and simulate an idle tycoon game: tiers of production
units, operators, upgrades, prestige and offline progress, with local and
cloud saves.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "Path to YAML config file")
	pf.StringVar(&catalogPath, "catalog", "", "Path to catalog file (default: embedded catalog)")
	pf.StringVar(&dbPath, "db", "", "Path to save database")
	pf.StringVarP(&profileKey, "profile", "p", "", "Save profile key")
	pf.StringVar(&remoteURL, "remote", "", "Cloud save server URL")
	pf.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newCatalogCmd(),
		newSimulateCmd(),
		newStatusCmd(),
		newPrestigeCmd(),
		newRegisterCmd(),
		newPlayCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
