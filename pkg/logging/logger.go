// Package logging 提供统一的结构化日志（slog）封装，支持按文件切割输出。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config 定义日志配置
type Config struct {
	Service    string `yaml:"service" json:"service"`
	Module     string `yaml:"module" json:"module"`
	Level      string `yaml:"level" json:"level" validate:"omitempty,oneof=debug info warn error"`
	Format     string `yaml:"format" json:"format" validate:"omitempty,oneof=json text"`
	File       string `yaml:"file" json:"file"`               // 日志文件路径，为空则只输出到 stdout
	MaxSize    int    `yaml:"max_size" json:"max_size"`       // 每个日志文件最大尺寸 (MB)
	MaxBackups int    `yaml:"max_backups" json:"max_backups"` // 保留旧日志文件的最大个数
	MaxAge     int    `yaml:"max_age" json:"max_age"`         // 保留旧日志文件的最大天数
	Compress   bool   `yaml:"compress" json:"compress"`       // 是否压缩旧日志
}

// ParseLevel 把配置字符串转换为 slog.Level，未知值回退为 info。
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New 根据配置创建 Logger；配置了 File 时使用 lumberjack 做日志切割。
func New(cfg Config) *slog.Logger {
	var w io.Writer = os.Stdout
	if cfg.File != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
	}
	return NewWithWriter(cfg, w)
}

// NewWithWriter 输出到指定 writer（测试中常用 bytes.Buffer）。
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With(slog.String("service", cfg.Service))
	}
	if cfg.Module != "" {
		logger = logger.With(slog.String("module", cfg.Module))
	}
	return logger
}

// Discard 返回丢弃所有输出的 Logger。
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
