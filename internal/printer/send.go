// Package printer finds raw-socket label printers and streams ZPL II or EPL2
// payloads to them.
package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/example/labeldrop/internal/payload"
)

// DefaultPort is the raw print (JetDirect) port.
const DefaultPort = 9100

var ErrNotPrintable = errors.New("only ZPLII and EPL2 labels can be sent to a printer")

// Printable reports whether f is a printer command language.
func Printable(f payload.Format) bool {
	return f == payload.FormatZPL || f == payload.FormatEPL2
}

// NormalizeAddress appends DefaultPort when address has no port.
func NormalizeAddress(address string) string {
	if _, _, err := net.SplitHostPort(address); err == nil {
		return address
	}
	return net.JoinHostPort(address, strconv.Itoa(DefaultPort))
}

// Send writes res to the printer at address. progress, when non-nil, receives
// a copy of every byte written.
func Send(ctx context.Context, address string, res payload.Result, progress io.Writer) error {
	if !Printable(res.Format) {
		return ErrNotPrintable
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", NormalizeAddress(address))
	if err != nil {
		return fmt.Errorf("failed to connect to printer: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	} else {
		_ = conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
	}

	var src io.Reader = bytes.NewReader(res.Data)
	if progress != nil {
		src = io.TeeReader(src, progress)
	}
	if _, err := io.Copy(conn, src); err != nil {
		return fmt.Errorf("failed to send label: %w", err)
	}
	return nil
}
