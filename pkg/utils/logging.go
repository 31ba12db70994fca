package utils

import (
    "os"
    "path/filepath"
    "sync"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

var (
    logger     *zap.Logger
    loggerOnce sync.Once
)

// Logger devolve o logger do processo, configurado por BARTWALK_LOG_FILE e BARTWALK_LOG_LEVEL.
func Logger() *zap.Logger {
    loggerOnce.Do(func() {
        l, err := NewLogger(os.Getenv("BARTWALK_LOG_LEVEL"), os.Getenv("BARTWALK_LOG_FILE"))
        if err != nil {
            l, _ = zap.NewProduction()
            l.Warn("Falha ao configurar logger, usando padrão", zap.Error(err))
        }
        logger = l
    })
    return logger
}

// NewLogger grava JSON no stdout e, se logFile não for vazio, também no arquivo.
func NewLogger(level, logFile string) (*zap.Logger, error) {
    lvl := zapcore.InfoLevel
    if level != "" {
        parsed, err := zapcore.ParseLevel(level)
        if err != nil { return nil, err }
        lvl = parsed
    }
    enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
    consoleCore := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl)
    if logFile == "" { return zap.New(consoleCore), nil }

    if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil { return nil, err }
    f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil { return nil, err }
    fileCore := zapcore.NewCore(enc, zapcore.AddSync(f), lvl)
    return zap.New(zapcore.NewTee(fileCore, consoleCore)), nil
}
