package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/labeldrop/internal/history"
	"github.com/example/labeldrop/internal/inspect"
	"github.com/example/labeldrop/internal/payload"
	"github.com/example/labeldrop/pkg/ui"
	"github.com/example/labeldrop/pkg/utils"
)

var (
	outDir   string
	toStdout bool
	noRecord bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file ...]",
	Short: "Decode base64 labels from files or stdin and save them",
	Long: `Decode reads base64 label data from each file (or stdin when no file or "-"
is given), detects the label format and writes the raw bytes to --out under a
timestamped name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if toStdout {
			ui.Output = cmd.ErrOrStderr()
			if len(args) > 1 {
				return fmt.Errorf("--stdout accepts a single input")
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			res, err := decodeFrom(cmd, path)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(res.Data); err != nil {
				return err
			}
			ui.Info("%s label, %s", res.Format, inspect.ByteCount(int64(res.Size())))
			return nil
		}

		if len(args) == 0 {
			args = []string{"-"}
		}

		store := openHistory()

		var bar *progressbar.ProgressBar
		if len(args) > 1 {
			bar = progressbar.Default(int64(len(args)), "decoding")
		}

		var failed int
		for _, path := range args {
			saved, res, err := decodeAndWrite(cmd, path, store)
			if bar != nil {
				_ = bar.Add(1)
			}
			if err != nil {
				failed++
				ui.Error("%s: %v", sourceName(path), err)
				continue
			}
			ui.Success("%s → %s (%s, %s)", sourceName(path), saved, res.Format, inspect.ByteCount(int64(res.Size())))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d inputs failed", failed, len(args))
		}
		return nil
	},
}

func decodeAndWrite(cmd *cobra.Command, path string, store *history.Store) (string, payload.Result, error) {
	res, err := decodeFrom(cmd, path)
	if err != nil {
		return "", payload.Result{}, err
	}

	saved, err := utils.WriteFile(outDir, res.FileName, res.Data)
	if err != nil {
		return "", payload.Result{}, err
	}

	if store != nil {
		if _, err := store.Add(res, saved); err != nil {
			logger.Warn("failed to record history", zap.Error(err))
		}
	}
	return saved, res, nil
}

// openHistory returns nil when history is disabled or unavailable.
func openHistory() *history.Store {
	if noRecord {
		return nil
	}
	dir, err := utils.ConfigDir()
	if err != nil {
		return nil
	}
	store, err := history.Open(filepath.Join(dir, "history"), history.DefaultLimit)
	if err != nil {
		logger.Warn("history unavailable", zap.Error(err))
		return nil
	}
	return store
}

func init() {
	decodeCmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write decoded labels to")
	decodeCmd.Flags().BoolVar(&toStdout, "stdout", false, "write the decoded bytes to stdout instead of a file")
	decodeCmd.Flags().BoolVar(&noRecord, "no-history", false, "do not record decoded labels in the history")
	rootCmd.AddCommand(decodeCmd)
}
