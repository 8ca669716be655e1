package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 100
	logFileMaxBackups = 5
	logFileMaxAgeDays = 14
)

// New инициализирует логгер.
func New(output io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)
	l.SetFormatter(new(logrus.JSONFormatter))
	l.SetLevel(logrus.InfoLevel)

	// перезаписываем ряд настроек для окружений отличных от продакшн
	if os.Getenv("GIN_MODE") != "release" {
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(new(logrus.TextFormatter))
	}

	return l
}

// NewWithFile логгер, который дополнительно пишет в файл filename с ротацией. Пустой filename
// равносилен New(output). Возвращаемый io.Closer закрывает файл.
func NewWithFile(output io.Writer, filename string) (*logrus.Logger, io.Closer) {
	if filename == "" {
		return New(output), nopCloser{}
	}
	file := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
		Compress:   true,
	}
	return New(io.MultiWriter(output, file)), file
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
