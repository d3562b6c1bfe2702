package common

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// SetLogger replaces the logger used to report contract violations.
// A nil logger restores the default.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = newLogger()
	}
	logger = l
}

// Logger returns the logger currently used for contract violations.
func Logger() *logrus.Logger {
	return logger
}

// Violation logs a broken length contract and panics.
func Violation(op string, have, need int) {
	logger.WithFields(logrus.Fields{
		"op":   op,
		"have": have,
		"need": need,
	}).Error("length contract violated")
	panic(fmt.Sprintf("loaf: %s: length %d is shorter than prefix %d", op, have, need))
}
