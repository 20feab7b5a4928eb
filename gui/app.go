package gui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"

	"github.com/example/labeldrop/internal/history"
	"github.com/example/labeldrop/internal/inspect"
	"github.com/example/labeldrop/internal/logging"
	"github.com/example/labeldrop/internal/payload"
	"github.com/example/labeldrop/internal/printer"
	"github.com/example/labeldrop/pkg/utils"
)

var (
	ErrBlankInput      = errors.New("Please enter a base64 string")
	ErrSaveCancelled   = errors.New("Save dialog was cancelled")
	ErrNoPrinterTarget = errors.New("no printer address configured")
)

// shell is the part of the Wails runtime the App depends on.
type shell interface {
	SaveFileDialog(ctx context.Context, opts wailsRuntime.SaveDialogOptions) (string, error)
	OpenDirectoryDialog(ctx context.Context, opts wailsRuntime.OpenDialogOptions) (string, error)
	EventsEmit(ctx context.Context, event string, data ...interface{})
}

type wailsShell struct{}

func (wailsShell) SaveFileDialog(ctx context.Context, opts wailsRuntime.SaveDialogOptions) (string, error) {
	return wailsRuntime.SaveFileDialog(ctx, opts)
}

func (wailsShell) OpenDirectoryDialog(ctx context.Context, opts wailsRuntime.OpenDialogOptions) (string, error) {
	return wailsRuntime.OpenDirectoryDialog(ctx, opts)
}

func (wailsShell) EventsEmit(ctx context.Context, event string, data ...interface{}) {
	wailsRuntime.EventsEmit(ctx, event, data...)
}

// App struct is the main GUI application
type App struct {
	ctx       context.Context
	shell     shell
	pipeline  *payload.Pipeline
	configDir string
	logger    *zap.Logger
	history   *history.Store

	mu       sync.RWMutex
	settings Settings
}

// NewApp creates a new App instance rooted at the user's config directory.
func NewApp() *App {
	dir, err := utils.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return newApp(dir, wailsShell{}, payload.NewPipeline())
}

func newApp(dir string, sh shell, p *payload.Pipeline) *App {
	a := &App{
		ctx:       context.Background(),
		shell:     sh,
		pipeline:  p,
		configDir: dir,
		logger:    logging.Nop(),
	}

	s, err := loadSettings(dir)
	a.settings = s

	if logger, lerr := logging.New(dir, s.Debug); lerr == nil {
		a.logger = logger
	}
	if err != nil {
		a.logger.Warn("using default settings", zap.Error(err))
	}

	if store, herr := history.Open(filepath.Join(dir, "history"), s.HistoryLimit); herr == nil {
		a.history = store
	} else {
		a.logger.Warn("history unavailable", zap.Error(herr))
	}
	return a
}

// Startup is called when the Wails app starts
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	a.logger.Info("startup", zap.String("config_dir", a.configDir))
}

// Shutdown is called when the Wails app exits
func (a *App) Shutdown(ctx context.Context) {
	_ = a.logger.Sync()
}

// DecodeResult describes a decoded label without its bytes.
type DecodeResult struct {
	FileName  string          `json:"file_name"`
	Extension string          `json:"extension"`
	Size      int             `json:"size"`
	Details   inspect.Details `json:"details"`
}

// SaveResult is returned after a label has been written to disk.
type SaveResult struct {
	Path      string `json:"path"`
	FileName  string `json:"file_name"`
	Extension string `json:"extension"`
	Size      int    `json:"size"`
}

// Decode decodes input and reports what it is without saving.
func (a *App) Decode(input string) (DecodeResult, error) {
	res, err := a.decode(input)
	if err != nil {
		return DecodeResult{}, err
	}
	return DecodeResult{
		FileName:  res.FileName,
		Extension: res.Extension,
		Size:      res.Size(),
		Details:   inspect.Describe(res),
	}, nil
}

// DecodeAndSave decodes input and writes it where the user chooses.
func (a *App) DecodeAndSave(input string) (SaveResult, error) {
	res, err := a.decode(input)
	if err != nil {
		a.shell.EventsEmit(a.ctx, "decode:error", err.Error())
		return SaveResult{}, err
	}
	return a.save(res, true)
}

func (a *App) decode(input string) (payload.Result, error) {
	if strings.TrimSpace(input) == "" {
		return payload.Result{}, ErrBlankInput
	}

	res, err := a.pipeline.DecodeBase64(input)
	if err != nil {
		a.logger.Warn("decode failed", zap.Int("input_len", len(input)), zap.Error(err))
		return payload.Result{}, err
	}

	a.logger.Info("decoded",
		zap.String("extension", res.Extension),
		zap.String("file_name", res.FileName),
		zap.Int("size", res.Size()),
	)
	return res, nil
}

func (a *App) save(res payload.Result, record bool) (SaveResult, error) {
	path, err := a.writeLabel(res)
	if err != nil {
		a.logger.Warn("save failed", zap.String("file_name", res.FileName), zap.Error(err))
		a.shell.EventsEmit(a.ctx, "decode:error", err.Error())
		return SaveResult{}, err
	}

	if record {
		a.record(res, path)
	}

	out := SaveResult{
		Path:      path,
		FileName:  filepath.Base(path),
		Extension: res.Extension,
		Size:      res.Size(),
	}
	a.logger.Info("saved", zap.String("path", path), zap.Int("size", out.Size))
	a.shell.EventsEmit(a.ctx, "decode:saved", out)
	return out, nil
}

// writeLabel asks for a destination when configured to, otherwise writes into
// the download directory.
func (a *App) writeLabel(res payload.Result) (string, error) {
	settings := a.GetSettings()
	if !settings.AskBeforeSave {
		return utils.WriteFile(settings.DownloadDir, res.FileName, res.Data)
	}

	chosen, err := a.shell.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:            "Save Label",
		DefaultDirectory: settings.DownloadDir,
		DefaultFilename:  res.FileName,
		Filters: []wailsRuntime.FileFilter{{
			DisplayName: strings.ToUpper(res.Extension),
			Pattern:     "*." + res.Extension,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to open save dialog: %w", err)
	}
	if chosen == "" {
		return "", ErrSaveCancelled
	}
	if err := os.WriteFile(chosen, res.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return chosen, nil
}

// ScanPrinters browses the network for raw-socket label printers.
func (a *App) ScanPrinters() []printer.Printer {
	ctx, cancel := context.WithTimeout(a.ctx, 3*time.Second)
	defer cancel()

	printers, err := printer.Scan(ctx)
	if err != nil {
		a.logger.Warn("printer scan failed", zap.Error(err))
	}
	return printers
}

// PrintPayload decodes input and sends it to the printer at address, or to
// the configured printer when address is empty. The first printer used
// successfully becomes the configured one.
func (a *App) PrintPayload(input string, address string) error {
	settings := a.GetSettings()
	if address == "" {
		address = settings.PrinterAddress
	}
	if address == "" {
		return ErrNoPrinterTarget
	}

	res, err := a.decode(input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(a.ctx, 30*time.Second)
	defer cancel()
	if err := printer.Send(ctx, address, res, nil); err != nil {
		a.logger.Warn("print failed", zap.String("printer", address), zap.Error(err))
		return err
	}

	if settings.PrinterAddress == "" {
		settings.PrinterAddress = address
		if err := a.SaveSettings(settings); err != nil {
			a.logger.Warn("failed to remember printer", zap.String("printer", address), zap.Error(err))
		}
	}

	a.record(res, "")
	a.shell.EventsEmit(a.ctx, "print:sent", map[string]interface{}{
		"printer":   address,
		"extension": res.Extension,
		"size":      res.Size(),
	})
	return nil
}

// GetSettings returns current settings
func (a *App) GetSettings() Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings
}

// SaveSettings saves settings
func (a *App) SaveSettings(s Settings) error {
	if s.HistoryLimit <= 0 {
		s.HistoryLimit = history.DefaultLimit
	}
	if err := saveSettings(a.configDir, s); err != nil {
		return err
	}
	a.mu.Lock()
	a.settings = s
	a.mu.Unlock()
	return nil
}

// SelectDownloadDir opens a folder dialog for download directory
func (a *App) SelectDownloadDir() string {
	dir, err := a.shell.OpenDirectoryDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title:            "Select Download Directory",
		DefaultDirectory: a.GetSettings().DownloadDir,
	})
	if err != nil {
		return ""
	}
	return dir
}
