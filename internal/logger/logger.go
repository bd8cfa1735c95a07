package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeFormat = "2006-01-02 15:04:05"

func formatLevel(i interface{}) string {
	return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
}

// NewLogger creates a logger writing to output, and to a rotating file if logFile is set
func NewLogger(level, logFile string, output io.Writer) (zerolog.Logger, error) {
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:         output,
		TimeFormat:  timeFormat,
		FormatLevel: formatLevel,
	}}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return zerolog.Nop(), fmt.Errorf("could not create logs directory: %w", err)
		}
		writers = append(writers, zerolog.ConsoleWriter{
			Out: &lumberjack.Logger{
				Filename: logFile,
				MaxSize:  10,
				MaxAge:   15,
				Compress: true,
			},
			TimeFormat:  timeFormat,
			NoColor:     true,
			FormatLevel: formatLevel,
		})
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(lvl), nil
}

// Setup replaces the global logger
func Setup(level, logFile string) error {
	logger, err := NewLogger(level, logFile, os.Stdout)
	if err != nil {
		return err
	}
	log.Logger = logger
	return nil
}
