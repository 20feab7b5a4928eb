package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/example/labeldrop/internal/inspect"
	"github.com/example/labeldrop/pkg/ui"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show the detected format of a base64 label without saving it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		res, err := decodeFrom(cmd, path)
		if err != nil {
			return err
		}
		details := inspect.Describe(res)

		if inspectJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(details)
		}

		ui.Info("%s", sourceName(path))
		for _, line := range details.Summary() {
			ui.Detail("%s", line)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print details as JSON")
	rootCmd.AddCommand(inspectCmd)
}
