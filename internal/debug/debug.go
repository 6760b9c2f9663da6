package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvVar names the environment variable holding the debug log path.
const EnvVar = "VISIBILITY_DEBUG"

var (
	mu      sync.Mutex
	logger  *zap.Logger
	logFile *os.File
)

// Logger returns the process-wide debug logger, initializing it from
// VISIBILITY_DEBUG on first use.
func Logger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		return logger
	}
	path := os.Getenv(EnvVar)
	if path == "" {
		logger = zap.NewNop()
		return logger
	}
	if err := initLocked(path); err != nil {
		logger = zap.NewNop()
	}
	return logger
}

// Init points the debug logger at path, replacing any previous logger.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	return initLocked(path)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string) error {
	if path == "" {
		path = "debug.log"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), zapcore.DebugLevel)

	logFile = f
	logger = zap.New(core)
	return nil
}

// Close flushes and closes the debug log file. Later calls to Logger
// re-read VISIBILITY_DEBUG.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	if logger != nil {
		_ = logger.Sync()
		logger = nil
	}
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}
