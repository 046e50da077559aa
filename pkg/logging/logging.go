// Package logging builds the process-wide zap logger.
package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	filePattern = "aurora.%Y%m%d.log"
	linkName    = "aurora.log"
	retention   = 7 * 24 * time.Hour
)

type Config struct {
	Level string
	Dev   bool
	// Path is the directory for rotated log files. Empty disables the file.
	Path string
}

func LevelFromString(l string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func encoder(dev bool) zapcore.Encoder {
	if dev {
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// Init returns a logger writing to stdout and, when cfg.Path is set, to a
// daily rotated file in that directory.
func Init(cfg Config) (*zap.Logger, error) {
	lvl := zap.NewAtomicLevelAt(LevelFromString(cfg.Level))
	enc := encoder(cfg.Dev)
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.Lock(os.Stdout), lvl)}

	if cfg.Path != "" {
		w, err := rotatingWriter(cfg.Path)
		if err != nil {
			return nil, err
		}
		fileEnc := encoder(false)
		cores = append(cores, zapcore.NewCore(fileEnc, zapcore.AddSync(w), lvl))
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.Dev {
		opts = append(opts, zap.Development())
	}
	return zap.New(zapcore.NewTee(cores...), opts...), nil
}

func rotatingWriter(dir string) (*rotatelogs.RotateLogs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return rotatelogs.New(
		filepath.Join(dir, filePattern),
		rotatelogs.WithLinkName(filepath.Join(dir, linkName)),
		rotatelogs.WithMaxAge(retention),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
}
