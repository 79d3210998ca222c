// Package logger builds the process-wide zap logger.
package logger

import "go.uber.org/zap"

// New returns a zap logger tuned for the given environment and installs it
// as the global logger.
func New(appEnv string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if appEnv == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)
	return l, nil
}
