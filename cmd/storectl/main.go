// Package main provides storectl, a command line tool for inspecting and
// loading the storefront's key-value storage.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts storageOptions

	rootCmd := &cobra.Command{
		Use:   "storectl",
		Short: "Inspect and load the library storage",
		Long: `storectl opens the same key-value storage as the library server.

Stop the server first when using the badger driver, which allows a
single process at a time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.driver, "storage-driver", "", "Storage backend (badger, sqlite)")
	rootCmd.PersistentFlags().StringVar(&opts.dataPath, "data-path", "", "Base path for persisted state")

	rootCmd.AddCommand(
		keysCmd(&opts),
		getCmd(&opts),
		catalogCmd(&opts),
		importCmd(&opts),
		exportCmd(&opts),
	)

	return rootCmd
}
