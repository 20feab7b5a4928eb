package gui

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/example/labeldrop/internal/history"
	"github.com/example/labeldrop/internal/payload"
)

// GetHistory returns previously decoded labels, newest first.
func (a *App) GetHistory() []history.Entry {
	if a.history == nil {
		return nil
	}
	return a.history.List()
}

// ResaveHistoryEntry restores an archived label and saves it again.
func (a *App) ResaveHistoryEntry(id string) (SaveResult, error) {
	if a.history == nil {
		return SaveResult{}, fmt.Errorf("history is disabled")
	}

	entry, data, err := a.history.Load(id)
	if err != nil {
		a.logger.Warn("history restore failed", zap.String("id", id), zap.Error(err))
		return SaveResult{}, err
	}

	res := payload.Result{
		Data:      data,
		FileName:  entry.FileName,
		Extension: entry.Extension,
		Format:    payload.Format(entry.Extension),
	}
	return a.save(res, false)
}

// ClearHistory deletes every history entry and archived label.
func (a *App) ClearHistory() error {
	if a.history == nil {
		return nil
	}
	return a.history.Clear()
}

func (a *App) record(res payload.Result, path string) {
	if a.history == nil || !a.GetSettings().KeepHistory {
		return
	}
	if _, err := a.history.Add(res, path); err != nil {
		a.logger.Warn("failed to record history", zap.String("file_name", res.FileName), zap.Error(err))
	}
}
