package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/labeldrop/internal/inspect"
	"github.com/example/labeldrop/pkg/ui"
	"github.com/example/labeldrop/pkg/utils"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously decoded labels",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openHistory()
		if store == nil {
			return fmt.Errorf("history is unavailable")
		}

		entries := store.List()
		if historyLimit > 0 && len(entries) > historyLimit {
			entries = entries[:historyLimit]
		}
		if len(entries) == 0 {
			ui.Info("No labels decoded yet")
			return nil
		}
		for _, e := range entries {
			ui.Info("%s  %s  %s", e.Timestamp, e.FileName, inspect.ByteCount(e.Size))
			ui.Detail("id %s", e.ID)
			if e.SavedTo != "" {
				ui.Detail("saved to %s", e.SavedTo)
			}
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Write an archived label from the history to --out",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openHistory()
		if store == nil {
			return fmt.Errorf("history is unavailable")
		}

		entry, data, err := store.Load(args[0])
		if err != nil {
			return err
		}
		path, err := utils.WriteFile(outDir, entry.FileName, data)
		if err != nil {
			return err
		}
		ui.Success("Restored %s", path)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "show at most this many entries (0 for all)")
	restoreCmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write the label to")
	historyCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(historyCmd)
}
