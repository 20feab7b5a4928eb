package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/labeldrop/internal/history"
	"github.com/example/labeldrop/internal/payload"
	localUI "github.com/example/labeldrop/internal/ui"
	"github.com/example/labeldrop/pkg/ui"
	"github.com/example/labeldrop/pkg/utils"
)

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Paste base64 labels interactively and save each one",
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.PrintBanner()

		model := localUI.NewPasteModel(pasteSaver(outDir, openHistory()))
		finalModel, err := tea.NewProgram(model).Run()
		if err != nil {
			ui.Error("Error running TUI: %v", err)
			return err
		}

		if m, ok := finalModel.(localUI.Model); ok && m.Saved() > 0 {
			ui.Success("Saved %d label(s) to %s", m.Saved(), outDir)
		}
		return nil
	},
}

// pasteSaver decodes each pasted payload into dir and records it in store
// when store is non-nil.
func pasteSaver(dir string, store *history.Store) localUI.SaveFunc {
	return func(input string) (payload.Result, string, error) {
		res, err := pipeline.DecodeBase64(input)
		if err != nil {
			return payload.Result{}, "", err
		}
		path, err := utils.WriteFile(dir, res.FileName, res.Data)
		if err != nil {
			return payload.Result{}, "", err
		}
		if store != nil {
			if _, err := store.Add(res, path); err != nil {
				logger.Warn("failed to record history", zap.String("path", path), zap.Error(err))
			}
		}
		return res, path, nil
	}
}

func init() {
	pasteCmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write decoded labels to")
	pasteCmd.Flags().BoolVar(&noRecord, "no-history", false, "do not record decoded labels in the history")
	rootCmd.AddCommand(pasteCmd)
}
