// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/internal/dataload"
)

var dataDir string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Replace application data with CSV fixtures",
	Long: `Replace application data with the CSV fixtures in a directory.

Recognised files: users.csv, category.csv, genre.csv, titles.csv,
genre_title.csv, review.csv and comments.csv. Missing files load as empty.
Existing rows are deleted first; superusers are kept.

Examples:
  yamdbctl load --dir static/data`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataset, err := dataload.Read(os.DirFS(dataDir))
		if err != nil {
			return err
		}

		return withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
			counts, err := dataload.NewLoader(pool, log).Load(cmd.Context(), dataset)
			if err != nil {
				return err
			}
			return printCounts(cmd, counts)
		})
	},
}

var unloadCmd = &cobra.Command{
	Use:   "unload",
	Short: "Delete application data, keeping superusers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
			return dataload.NewLoader(pool, log).Unload(cmd.Context())
		})
	},
}

func init() {
	loadCmd.Flags().StringVar(&dataDir, "dir", "static/data", "Directory containing the CSV fixtures")
}

func printCounts(cmd *cobra.Command, counts dataload.Counts) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tROWS")
	fmt.Fprintf(w, "users\t%d\n", counts.Users)
	fmt.Fprintf(w, "categories\t%d\n", counts.Categories)
	fmt.Fprintf(w, "genres\t%d\n", counts.Genres)
	fmt.Fprintf(w, "titles\t%d\n", counts.Titles)
	fmt.Fprintf(w, "genre_title\t%d\n", counts.GenreTitle)
	fmt.Fprintf(w, "reviews\t%d\n", counts.Reviews)
	fmt.Fprintf(w, "comments\t%d\n", counts.Comments)
	return w.Flush()
}
