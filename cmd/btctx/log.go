package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitfsorg/libbtctx-go/helper"
	"github.com/bitfsorg/libbtctx-go/network"
	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// logWriter tees log output to stderr and, once initLogRotator has run, to
// the rotating log file.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stderr.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

// Loggers per subsystem. All of them write through backendLog.
var (
	backendLog = btclog.NewBackend(logWriter{})

	// logRotator is nil until initLogRotator is called with a log file.
	logRotator *rotator.Rotator

	log     = backendLog.Logger("BTCX")
	rpccLog = backendLog.Logger("RPCC")
	hlprLog = backendLog.Logger("HLPR")
)

func init() {
	network.UseLogger(rpccLog)
	helper.UseLogger(hlprLog)
}

// subsystemLoggers maps each subsystem identifier to its logger.
var subsystemLoggers = map[string]btclog.Logger{
	"BTCX": log,
	"RPCC": rpccLog,
	"HLPR": hlprLog,
}

// initLogRotator opens logFile for appending, rolling it over at 10 MiB and
// keeping three old copies.
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("create file rotator: %w", err)
	}
	logRotator = r
	return nil
}

// setLogLevels sets every subsystem to level. Unknown levels fall back to info.
func setLogLevels(level string) {
	lvl, ok := btclog.LevelFromString(level)
	if !ok {
		lvl = btclog.LevelInfo
	}
	for _, logger := range subsystemLoggers {
		logger.SetLevel(lvl)
	}
}

func closeLogRotator() {
	if logRotator != nil {
		logRotator.Close()
	}
}
