// Package logger constructs the structured logger every component of the
// engine shares, built on zap.
package logger

import (
	"go.uber.org/zap"
)

// New builds a *zap.SugaredLogger for the named service. Production builds
// log structured JSON at info level and above; callers that want verbose
// debug output should use NewDevelopment instead.
func New(service string) (*zap.SugaredLogger, error) {
	base, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return base.Sugar().Named(service), nil
}

// NewDevelopment builds a *zap.SugaredLogger tuned for local development:
// human-readable console output at debug level and above.
func NewDevelopment(service string) (*zap.SugaredLogger, error) {
	base, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return base.Sugar().Named(service), nil
}

// Nop returns a *zap.SugaredLogger that discards everything, for tests and
// callers that don't want logging overhead.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
