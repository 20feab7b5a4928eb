package gui

import (
	"context"
	"encoding/base64"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/example/labeldrop/internal/payload"
)

type fakeShell struct {
	savePath string
	saveOpts wailsRuntime.SaveDialogOptions
	events   []string
}

func (f *fakeShell) SaveFileDialog(_ context.Context, opts wailsRuntime.SaveDialogOptions) (string, error) {
	f.saveOpts = opts
	return f.savePath, nil
}

func (f *fakeShell) OpenDirectoryDialog(context.Context, wailsRuntime.OpenDialogOptions) (string, error) {
	return "/chosen", nil
}

func (f *fakeShell) EventsEmit(_ context.Context, event string, _ ...interface{}) {
	f.events = append(f.events, event)
}

func newTestApp(t *testing.T, sh *fakeShell) *App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	now := time.Date(2024, time.May, 6, 7, 8, 9, 0, time.UTC)
	return newApp(t.TempDir(), sh, &payload.Pipeline{Now: func() time.Time { return now }})
}

func zplInput() string {
	return `"data:text/plain;base64,` + base64.StdEncoding.EncodeToString([]byte("^XA^FDHello^FS^XZ")) + `"`
}

func TestDecode(t *testing.T) {
	a := newTestApp(t, &fakeShell{})

	res, err := a.Decode(zplInput())
	require.NoError(t, err)
	assert.Equal(t, "20240506-07-08-09.zpl", res.FileName)
	assert.Equal(t, "zpl", res.Extension)
	assert.Equal(t, 1, res.Details.Labels)
}

func TestDecodeBlankInput(t *testing.T) {
	a := newTestApp(t, &fakeShell{})

	_, err := a.Decode("   ")
	assert.ErrorIs(t, err, ErrBlankInput)
}

func TestDecodeAndSaveDialog(t *testing.T) {
	target := filepath.Join(t.TempDir(), "label.zpl")
	sh := &fakeShell{savePath: target}
	a := newTestApp(t, sh)

	out, err := a.DecodeAndSave(zplInput())
	require.NoError(t, err)
	assert.Equal(t, target, out.Path)
	assert.Equal(t, "20240506-07-08-09.zpl", sh.saveOpts.DefaultFilename)
	assert.Equal(t, "*.zpl", sh.saveOpts.Filters[0].Pattern)
	assert.Equal(t, "ZPL", sh.saveOpts.Filters[0].DisplayName)
	assert.Contains(t, sh.events, "decode:saved")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "^XA^FDHello^FS^XZ", string(data))

	entries := a.GetHistory()
	require.Len(t, entries, 1)
	assert.Equal(t, target, entries[0].SavedTo)
}

func TestDecodeAndSaveCancelled(t *testing.T) {
	sh := &fakeShell{}
	a := newTestApp(t, sh)

	_, err := a.DecodeAndSave(zplInput())
	assert.ErrorIs(t, err, ErrSaveCancelled)
	assert.Empty(t, a.GetHistory())
	assert.Equal(t, []string{"decode:error"}, sh.events)
}

func TestDecodeAndSaveWriteFailure(t *testing.T) {
	sh := &fakeShell{savePath: filepath.Join(t.TempDir(), "missing", "label.zpl")}
	a := newTestApp(t, sh)

	_, err := a.DecodeAndSave(zplInput())
	assert.ErrorContains(t, err, "failed to write file")
	assert.Equal(t, []string{"decode:error"}, sh.events)
}

func TestDecodeAndSaveError(t *testing.T) {
	sh := &fakeShell{}
	a := newTestApp(t, sh)

	_, err := a.DecodeAndSave(base64.StdEncoding.EncodeToString([]byte{0x00}))
	assert.ErrorIs(t, err, payload.ErrUnrecognizedFormat)
	assert.Equal(t, []string{"decode:error"}, sh.events)
}

func TestDecodeAndSaveWithoutDialog(t *testing.T) {
	a := newTestApp(t, &fakeShell{})
	s := a.GetSettings()
	s.AskBeforeSave = false
	s.DownloadDir = filepath.Join(t.TempDir(), "labels")
	require.NoError(t, a.SaveSettings(s))

	first, err := a.DecodeAndSave(zplInput())
	require.NoError(t, err)
	second, err := a.DecodeAndSave(zplInput())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(s.DownloadDir, "20240506-07-08-09.zpl"), first.Path)
	assert.Equal(t, filepath.Join(s.DownloadDir, "20240506-07-08-09-1.zpl"), second.Path)
}

func TestResaveHistoryEntry(t *testing.T) {
	target := filepath.Join(t.TempDir(), "first.zpl")
	sh := &fakeShell{savePath: target}
	a := newTestApp(t, sh)

	_, err := a.DecodeAndSave(zplInput())
	require.NoError(t, err)
	entry := a.GetHistory()[0]

	sh.savePath = filepath.Join(t.TempDir(), "again.zpl")
	out, err := a.ResaveHistoryEntry(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, sh.savePath, out.Path)
	assert.Len(t, a.GetHistory(), 1)

	data, err := os.ReadFile(sh.savePath)
	require.NoError(t, err)
	assert.Equal(t, "^XA^FDHello^FS^XZ", string(data))

	require.NoError(t, a.ClearHistory())
	assert.Empty(t, a.GetHistory())
}

func TestPrintPayloadWithoutPrinter(t *testing.T) {
	a := newTestApp(t, &fakeShell{})
	assert.ErrorIs(t, a.PrintPayload(zplInput(), ""), ErrNoPrinterTarget)
}

func TestPrintPayloadRemembersPrinter(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 2)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			data, _ := io.ReadAll(conn)
			conn.Close()
			received <- data
		}
	}()

	sh := &fakeShell{}
	a := newTestApp(t, sh)
	require.Empty(t, a.GetSettings().PrinterAddress)

	require.NoError(t, a.PrintPayload(zplInput(), ln.Addr().String()))
	assert.Equal(t, ln.Addr().String(), a.GetSettings().PrinterAddress)
	assert.Contains(t, sh.events, "print:sent")

	// Later prints with no explicit target go to the remembered printer.
	require.NoError(t, a.PrintPayload(zplInput(), ""))

	for i := 0; i < 2; i++ {
		select {
		case got := <-received:
			assert.Equal(t, "^XA^FDHello^FS^XZ", string(got))
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for printer to receive label")
		}
	}

	loaded, err := loadSettings(a.configDir)
	require.NoError(t, err)
	assert.Equal(t, ln.Addr().String(), loaded.PrinterAddress)
}

func TestSettingsRoundTrip(t *testing.T) {
	a := newTestApp(t, &fakeShell{})

	s := a.GetSettings()
	assert.True(t, s.AskBeforeSave)
	assert.True(t, s.KeepHistory)

	s.PrinterAddress = "192.168.1.40:9100"
	s.HistoryLimit = 0
	require.NoError(t, a.SaveSettings(s))

	loaded, err := loadSettings(a.configDir)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.40:9100", loaded.PrinterAddress)
	assert.Equal(t, 100, loaded.HistoryLimit)
}

func TestSettingsEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LABELDROP_PRINTER_ADDRESS", "zebra.local")

	s, err := loadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, "zebra.local", s.PrinterAddress)
}

func TestSelectDownloadDir(t *testing.T) {
	a := newTestApp(t, &fakeShell{})
	assert.Equal(t, "/chosen", a.SelectDownloadDir())
}
