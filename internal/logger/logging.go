// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordlook/internal/utils"
)

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(w io.Writer, prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// RedirectToFile points the global charm logger at an append-only file,
// keeping the terminal free for the lookup screen.
// The returned closer must be called on exit.
func RedirectToFile(path string) (io.Closer, error) {
	if err := utils.EnsureParentDir(path); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	log.SetFormatter(log.LogfmtFormatter)
	log.SetReportTimestamp(true)
	return file, nil
}
