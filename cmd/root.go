package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/labeldrop/internal/logging"
	"github.com/example/labeldrop/internal/payload"
	"github.com/example/labeldrop/pkg/utils"
)

var (
	debug  bool
	logger = logging.Nop()

	pipeline = payload.NewPipeline()
)

var rootCmd = &cobra.Command{
	Use:   "labeldrop",
	Short: "LabelDrop decodes base64 shipping labels into PDF, PNG, ZPLII or EPL2 files",
	Long: `LabelDrop turns the base64 label blobs returned by carrier shipping APIs into files.

Input may carry a data URI prefix, JSON quoting or line wrapping. The label
format is detected from the decoded bytes and the file is named after the
current UTC time, e.g. 20240506-07-08-09.zpl.

Run without arguments to open the desktop app.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, err := utils.ConfigDir()
		if err != nil {
			return nil
		}
		l, err := logging.New(dir, debug)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level to stderr")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readInput returns the contents of path, or stdin when path is "" or "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

func decodeFrom(cmd *cobra.Command, path string) (payload.Result, error) {
	input, err := readInput(cmd, path)
	if err != nil {
		return payload.Result{}, err
	}
	if strings.TrimSpace(input) == "" {
		return payload.Result{}, payload.ErrEmptyInput
	}

	res, err := pipeline.DecodeBase64(input)
	if err != nil {
		logger.Warn("decode failed", zap.String("source", sourceName(path)), zap.Error(err))
		return payload.Result{}, err
	}
	logger.Info("decoded",
		zap.String("source", sourceName(path)),
		zap.String("extension", res.Extension),
		zap.Int("size", res.Size()),
	)
	return res, nil
}

func sourceName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
