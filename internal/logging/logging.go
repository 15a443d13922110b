// Package logging configures the structured logger the driver and CLI use
// for per-font-config progress and failures. The codec core never logs —
// it returns errors, matching the teacher's parser packages.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a text-formatted logger writing to stderr, matching the
// convention used across the rest of the retrieved pack's tooling.
func New(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
