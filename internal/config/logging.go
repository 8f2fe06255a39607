package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger used by the commands.
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
}

// SetLogLevel accepts debug, info, warn(ing), error or fatal.
func SetLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Log.SetLevel(lvl)
	return nil
}
