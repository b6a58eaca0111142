package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	}

	return "?"
}

type Logger struct {
	out   *log.Logger
	errt  *log.Logger
	level LogLevel
}

var defaultLogger *Logger

func init() {
	defaultLogger = NewLogger(INFO)
}

func NewLogger(level LogLevel) *Logger {
	return &Logger{
		out:   log.New(os.Stdout, "", 0),
		errt:  log.New(os.Stderr, "", 0),
		level: level,
	}
}

/*
	Set the level of the default logger
*/
func SetLevel(level LogLevel) {
	defaultLogger.level = level
}

func (l *Logger) log(level LogLevel, format string, v ...interface{}) {
	if level < l.level {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}
	file = filepath.Base(file)

	color := colorReset
	switch level {
	case DEBUG:
		color = colorBlue
	case INFO:
		color = colorGreen
	case WARN:
		color = colorYellow
	case ERROR:
		color = colorRed
	}

	msg := fmt.Sprintf(format, v...)
	text := fmt.Sprintf("[%s] %s:%d: %s%s%s", level.String(), file, line, color, msg, colorReset)

	if level >= ERROR {
		l.errt.Println(text)
	} else {
		l.out.Println(text)
	}
}

func Debug(format string, v ...interface{}) {
	defaultLogger.log(DEBUG, format, v...)
}

func Info(format string, v ...interface{}) {
	defaultLogger.log(INFO, format, v...)
}

func Warn(format string, v ...interface{}) {
	defaultLogger.log(WARN, format, v...)
}

func Error(format string, v ...interface{}) {
	defaultLogger.log(ERROR, format, v...)
}
