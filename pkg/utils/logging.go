package utils

import (
    "os"
    "path/filepath"
    "strings"
    "sync"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

var (
    logger     *zap.Logger
    loggerOnce sync.Once
)

// Logger returns the process-wide logger. LOG_LEVEL picks the level, LOG_FILE adds a JSON file sink next to stdout.
func Logger() *zap.Logger {
    loggerOnce.Do(func() { logger = newLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FILE")) })
    return logger
}

func newLogger(level, logFile string) *zap.Logger {
    lvl := parseLevel(level)
    encCfg := zap.NewProductionEncoderConfig()
    encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
    enc := zapcore.NewJSONEncoder(encCfg)

    cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.Lock(os.Stdout), lvl)}
    if logFile != "" {
        _ = os.MkdirAll(filepath.Dir(logFile), 0o755)
        if f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
            cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(f), lvl))
        }
    }
    return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

func parseLevel(s string) zapcore.Level {
    var lvl zapcore.Level
    if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil || s == "" {
        return zapcore.InfoLevel
    }
    return lvl
}
