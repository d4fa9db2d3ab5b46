package logger

import (
	"fmt"
	"path"
	"runtime"

	log "github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

func SetupLogger(level, format string) {
	loggerLevel, err := log.ParseLevel(level)
	log.SetReportCaller(true)

	prettyfier := func(frame *runtime.Frame) (function string, file string) {
		return "", fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
	}

	if format == "text" {
		log.SetFormatter(&log.TextFormatter{
			CallerPrettyfier: prettyfier,
			TimestampFormat:  timestampFormat,
			FullTimestamp:    true,
		})
	} else {
		log.SetFormatter(&log.JSONFormatter{
			CallerPrettyfier: prettyfier,
			TimestampFormat:  timestampFormat,
		})
	}

	if err != nil {
		log.Infof("Level setup default INFO, err: %v", err)
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(loggerLevel)
	}
}
