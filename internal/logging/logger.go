package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB   = 50
	sentryFlushTimeout = 2 * time.Second
)

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
	// zero keeps rotated files forever
	MaxBackups int
	MaxAgeDays int
}

// Setup points the global logrus logger at the configured sinks.
// The returned func flushes Sentry and closes the log file; call it on shutdown.
func Setup(params LoggerSetupParams) (closeFn func()) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	sentryOn := params.SentryEnabled && setupSentry(params)

	out, file := outputFor(params)
	logrus.SetOutput(out)

	return func() {
		if sentryOn {
			sentry.Flush(sentryFlushTimeout)
		}
		if file != nil {
			if err := file.Close(); err != nil {
				logrus.SetOutput(os.Stderr)
				logrus.Errorf("close log file: %s", err)
			}
		}
	}
}

func setupSentry(params LoggerSetupParams) bool {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry init: %s", err)
		return false
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("sentry hook installed")
	return true
}

// outputFor returns the writer for log lines and, when logging to a file, the file sink to close.
func outputFor(params LoggerSetupParams) (io.Writer, io.Closer) {
	if params.LogFileName == "" {
		logrus.Infoln("logging to stdout only")
		return os.Stdout, nil
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	file := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    logFileMaxSizeMB,
		Compress:   true,
		MaxBackups: params.MaxBackups,
		MaxAge:     params.MaxAgeDays,
	}

	if !params.LogToStdout {
		logrus.Infof("logging to %s", fileName)
		return file, file
	}
	logrus.Infof("logging to %s and stdout", fileName)
	return newFanout(
		sink{name: "stdout", w: os.Stdout},
		sink{name: fileName, w: file},
	), file
}

// GetLevel parses a level name, falling back to info for anything unknown.
func GetLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
