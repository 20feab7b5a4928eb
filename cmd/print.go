package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/example/labeldrop/internal/printer"
	"github.com/example/labeldrop/pkg/ui"
)

var (
	printerAddr  string
	printTimeout time.Duration
	scanTimeout  time.Duration
)

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Decode a ZPLII or EPL2 label and send it to a network printer",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if printerAddr == "" {
			return fmt.Errorf("--printer is required (run 'labeldrop printers' to find one)")
		}

		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		res, err := decodeFrom(cmd, path)
		if err != nil {
			return err
		}
		if !printer.Printable(res.Format) {
			return fmt.Errorf("%s: %w", res.Format, printer.ErrNotPrintable)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), printTimeout)
		defer cancel()

		addr := printer.NormalizeAddress(printerAddr)
		ui.Info("Sending %s label to %s...", res.Format, addr)
		bar := progressbar.DefaultBytes(int64(res.Size()), "sending")
		if err := printer.Send(ctx, addr, res, bar); err != nil {
			return err
		}
		ui.Success("Label sent to %s", addr)
		return nil
	},
}

var printersCmd = &cobra.Command{
	Use:   "printers",
	Short: "Find raw-socket label printers on the local network",
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.Info("Scanning for printers (%s)...", scanTimeout)

		ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
		defer cancel()

		found, err := printer.Scan(ctx)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			ui.Info("No printers found")
			return nil
		}
		for _, p := range found {
			ui.Success("%s", p.Name)
			ui.Detail("%s", p.Address())
		}
		return nil
	},
}

func init() {
	printCmd.Flags().StringVarP(&printerAddr, "printer", "p", "", "printer address, host[:port] (default port 9100)")
	printCmd.Flags().DurationVar(&printTimeout, "timeout", 30*time.Second, "give up sending after this long")
	printersCmd.Flags().DurationVar(&scanTimeout, "timeout", 3*time.Second, "how long to browse for printers")
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(printersCmd)
}
