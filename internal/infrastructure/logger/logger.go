package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup 初始化全局 logger，输出到 stdout，时间格式 RFC3339
func Setup(level string) {
	SetupWriter(os.Stdout, level)
}

// SetupWriter routes the global logger to out at the given level.
func SetupWriter(out io.Writer, level string) {
	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(ParseLevel(level))
}

// ParseLevel maps a config level name to a zerolog level. Empty or unknown
// names fall back to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
