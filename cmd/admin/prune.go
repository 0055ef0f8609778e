package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"resumeBuilder/internal/config"
	"resumeBuilder/internal/database"
	"resumeBuilder/internal/storage"
)

var pruneOlderThan time.Duration

var pruneSnapshotsCmd = &cobra.Command{
	Use:   "prune-snapshots",
	Short: "Delete snapshots created before now minus --older-than",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if pruneOlderThan <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}
		db, err := openDatabase()
		if err != nil {
			return err
		}
		n, err := database.NewSnapshotRepository(db).DeleteOlderThan(cmd.Context(), time.Now().Add(-pruneOlderThan))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d snapshots\n", n)
		return nil
	},
}

// prune-exports 需要完整配置，因为要同时删除 MinIO 中的 PDF。
var pruneExportsCmd = &cobra.Command{
	Use:   "prune-exports",
	Short: "Delete PDF exports and their objects created before now minus --older-than",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if pruneOlderThan <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		db, err := openDatabase()
		if err != nil {
			return err
		}
		store, err := storage.NewClient(cmd.Context(), cfg.MinIO)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		exports := database.NewExportRepository(db)
		old, err := exports.OlderThan(ctx, time.Now().Add(-pruneOlderThan))
		if err != nil {
			return err
		}
		deleted := 0
		for _, exp := range old {
			if err := store.DeleteObject(ctx, exp.ObjectKey); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "skip export %s: %v\n", exp.ExportID, err)
				continue
			}
			if err := exports.Delete(ctx, exp.ExportID); err != nil {
				return err
			}
			deleted++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d of %d exports\n", deleted, len(old))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{pruneSnapshotsCmd, pruneExportsCmd} {
		c.Flags().DurationVar(&pruneOlderThan, "older-than", 30*24*time.Hour, "retention window, e.g. 720h")
		rootCmd.AddCommand(c)
	}
}
