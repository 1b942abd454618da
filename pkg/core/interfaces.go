package core

import (
	"github.com/golang/glog"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// glogLogger forwards Printf to glog at a fixed verbosity
type glogLogger struct {
	level glog.Level
}

// NewGlogLogger returns a Logger that writes through glog.V(level).Infof
func NewGlogLogger(level glog.Level) Logger {
	return glogLogger{level: level}
}

func (l glogLogger) Printf(format string, args ...interface{}) {
	glog.V(l.level).Infof(format, args...)
}
