package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"darwin/internal/driver"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the token cache",
		Long:  "Remove every cached token stream from the user cache directory.",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}
}

func runClean(cmd *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("darwin")
	if err != nil {
		return fmt.Errorf("failed to open token cache: %w", err)
	}
	n, err := cache.Len()
	if err != nil {
		return fmt.Errorf("failed to inspect %q: %w", cache.Dir(), err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", cache.Dir(), err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %d cached files from %s\n", n, cache.Dir())
	return err
}
