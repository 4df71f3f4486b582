package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"instagram_content_ai/pkg/config"
	"instagram_content_ai/pkg/version"

	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogFile = "instagram_content_ai.log"
const (
	maxLogSizeMB  = 5
	maxLogBackups = 5
	maxLogAgeDays = 14
)

const redacted = "[redacted]"

// Init configures slog to write structured logs to a rotating file next to
// the config file. The terminal belongs to the form, so nothing is logged to
// stdout or stderr. Credential values never reach the file.
func Init(cfg config.Config) (*slog.Logger, error) {
	handlerOptions := &slog.HandlerOptions{
		Level:       parseLogLevel(cfg.LogLevel),
		ReplaceAttr: secretRedactor(cfg.Providers.Google.APIKey, cfg.Providers.OpenAI.APIKey),
	}

	logPath := strings.TrimSpace(cfg.LogFile)
	if logPath == "" {
		logPath = defaultLogPath(config.GetConfigPath())
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		logger := slog.New(newHandler(cfg.LogFormat, io.Discard, handlerOptions))
		slog.SetDefault(logger)
		return logger, err
	}

	writer := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}

	logger := slog.New(newHandler(cfg.LogFormat, writer, handlerOptions)).With(
		"app", version.Name,
		"provider", cfg.LLMProvider,
	)
	slog.SetDefault(logger)
	return logger, nil
}

// defaultLogPath keeps logs in a logs/ directory beside the config file.
func defaultLogPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "logs", defaultLogFile)
}

// secretRedactor masks attributes named like credentials and any string
// value that contains one of the configured keys.
func secretRedactor(secrets ...string) func(groups []string, a slog.Attr) slog.Attr {
	var known []string
	for _, s := range secrets {
		if s = strings.TrimSpace(s); s != "" {
			known = append(known, s)
		}
	}

	return func(groups []string, a slog.Attr) slog.Attr {
		if isSecretKey(a.Key) {
			return slog.String(a.Key, redacted)
		}
		if a.Value.Kind() != slog.KindString {
			return a
		}
		v := a.Value.String()
		for _, s := range known {
			if strings.Contains(v, s) {
				v = strings.ReplaceAll(v, s, redacted)
			}
		}
		if v != a.Value.String() {
			return slog.String(a.Key, v)
		}
		return a
	}
}

func isSecretKey(key string) bool {
	k := strings.ToLower(key)
	return k == "api_key" || k == "authorization" || strings.HasSuffix(k, "_api_key")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		return slog.NewTextHandler(out, opts)
	default:
		return slog.NewJSONHandler(out, opts)
	}
}
