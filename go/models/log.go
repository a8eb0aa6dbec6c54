package models

import (
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func init() {
	Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// SetupLog points Log at c.Output and picks the level from c.Verbose.
func SetupLog(c *Config) {
	if c.Output != nil {
		Log.SetOutput(c.Output)
	}
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		ForceColors:      c.Color,
		DisableColors:    !c.Color,
	})
	if c.Verbose {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
}
