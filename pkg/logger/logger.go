package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar   *zap.SugaredLogger
	logFile *os.File
)

const (
	INFO = iota
	DEBUG
)

// ParseLevel maps a LOG_LEVEL value onto INFO or DEBUG.
func ParseLevel(s string) int {
	if strings.EqualFold(strings.TrimSpace(s), "debug") {
		return DEBUG
	}
	return INFO
}

func zapLevel(level int) zapcore.Level {
	if level == DEBUG {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

// InitLogger writes console output to stdout and JSON lines to filename.
// An empty filename logs to stdout only.
func InitLogger(filename string, level int) error {
	lvl := zap.NewAtomicLevelAt(zapLevel(level))
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.Lock(os.Stdout), lvl),
	}

	if filename != "" {
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		logFile = f
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(f), lvl))
	}

	SetLogger(zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)))
	return nil
}

// SetLogger replaces the package logger, e.g. with zaptest.NewLogger in tests.
func SetLogger(l *zap.Logger) {
	sugar = l.Sugar()
}

// Close flushes the logger and releases the log file. Later calls log to
// stdout only.
func Close() {
	if sugar != nil {
		_ = sugar.Sync()
	}
	if logFile != nil {
		logFile.Close()
		logFile = nil
		sugar = nil
	}
}

// Init sets up a stdout-only logger at INFO.
func Init() {
	_ = InitLogger("", INFO)
}

func get() *zap.SugaredLogger {
	if sugar == nil {
		Init()
	}
	return sugar
}

func Debugf(format string, v ...interface{}) {
	get().Debugf(format, v...)
}

func Info(format string, v ...interface{}) {
	get().Infof(format, v...)
}

func Infof(format string, v ...interface{}) {
	Info(format, v...)
}

// Infow logs a message with structured key/value pairs.
func Infow(msg string, keysAndValues ...interface{}) {
	get().Infow(msg, keysAndValues...)
}

func Error(format string, v ...interface{}) {
	get().Errorf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	Error(format, v...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	get().Errorw(msg, keysAndValues...)
}

func Warn(format string, v ...interface{}) {
	get().Warnf(format, v...)
}

func Warnf(format string, v ...interface{}) {
	Warn(format, v...)
}
