package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kpauljoseph/neurocards/pkg/logger"
	"github.com/kpauljoseph/neurocards/pkg/utils"
)

// setupLogging sends UI session logs to a timestamped file so they do not
// draw over the terminal UI.
func setupLogging(dir string, level logger.LogLevel) (*logger.Logger, string, func(), error) {
	if dir == "" {
		dir = utils.GetDefaultLogDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, "", nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFileName := filepath.Join(dir, fmt.Sprintf("neurocards_%s.log", timestamp))

	absLogPath, err := filepath.Abs(logFileName)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	logFile, err := os.Create(absLogPath)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to create log file: %w", err)
	}

	log := logger.New(
		logger.WithPrefix("[neurocards] "),
		logger.WithOutput(logFile),
		logger.WithLevel(level),
	)

	return log, absLogPath, func() { logFile.Close() }, nil
}
