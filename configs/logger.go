package configs

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger and installs it as the logrus standard logger.
func NewLogger(cfg *Config) *logrus.Logger {
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	l := logrus.New()
	l.Out = os.Stdout
	l.Level = lvl
	if cfg.LogJSON {
		l.Formatter = &logrus.JSONFormatter{}
	} else {
		l.Formatter = &logrus.TextFormatter{FullTimestamp: true, DisableLevelTruncation: true}
	}

	logrus.SetOutput(l.Out)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(l.Formatter)
	return l
}
