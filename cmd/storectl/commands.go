package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sutapaslibrary/library-server/internal/kv"
	"github.com/sutapaslibrary/library-server/internal/store"
)

func keysCmd(opts *storageOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keys [prefix]",
		Short: "List stored keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := opts.open()
			if err != nil {
				return err
			}
			defer storage.Close()

			var prefix string
			if len(args) == 1 {
				prefix = args[0]
			}

			keys, err := storage.Keys(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
}

func getCmd(opts *storageOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := opts.open()
			if err != nil {
				return err
			}
			defer storage.Close()

			value, err := storage.Get(cmd.Context(), args[0])
			if errors.Is(err, kv.ErrKeyNotFound) {
				return fmt.Errorf("no value stored under %q", args[0])
			}
			if err != nil {
				return err
			}

			var doc any
			if err := json.Unmarshal(value, &doc); err != nil {
				_, err = cmd.OutOrStdout().Write(append(value, '\n'))
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
}

func catalogCmd(opts *storageOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List built-in and custom books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			storage, err := opts.open()
			if err != nil {
				return err
			}
			defer storage.Close()

			st := store.New(storage, store.Options{})
			books, err := st.Catalog.ListAll(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tTITLE\tAUTHOR\tCHAPTERS\tPRICE\tSOURCE")
			for _, b := range books {
				source := "custom (" + b.AddedBy + ")"
				if st.Catalog.IsBuiltIn(b.Slug) {
					source = "built-in"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%s\n", b.Slug, b.Title, b.Author, b.TotalChapters, b.Price, source)
			}
			return w.Flush()
		},
	}
}

func importCmd(opts *storageOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <localStorage.json>",
		Short: "Load a browser local storage dump",
		Long: `Load a JSON object of key/value pairs exported from the browser
storefront's local storage. Existing values under the same keys are
replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var dump kv.Dump
			if err := json.Unmarshal(data, &dump); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			storage, err := opts.open()
			if err != nil {
				return err
			}
			defer storage.Close()

			keys, err := kv.Import(cmd.Context(), storage, dump)
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", key)
			}
			return nil
		},
	}
}

func exportCmd(opts *storageOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [prefix]",
		Short: "Write stored keys as a JSON object",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := opts.open()
			if err != nil {
				return err
			}
			defer storage.Close()

			var prefix string
			if len(args) == 1 {
				prefix = args[0]
			}

			dump, err := kv.Export(cmd.Context(), storage, prefix)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dump)
		},
	}
}
