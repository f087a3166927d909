package logger

import (
	"go.uber.org/zap"
)

// NOOPLogger discards everything. It is the default for components built
// without an explicit logger, tests included.
var NOOPLogger = zap.NewNop().Sugar()

// New returns a JSON production logger, or a console development logger
// when appEnv is "local".
func New(appEnv string) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if appEnv == "local" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return l.Sugar().With("app", "nettileffa"), nil
}
