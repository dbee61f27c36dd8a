package logger

import "go.uber.org/zap"

// New returns a production logger unless env is "dev", which gets the
// human-readable development encoder.
func New(env string) (*zap.Logger, error) {
	if env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
