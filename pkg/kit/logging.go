package kit

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON production logger tagged with service. An empty
// level means info.
func NewLogger(service, level string) (*zap.Logger, error) {
	return newLogger(service, level, nil)
}

// NewFileLogger is NewLogger writing to path instead of stderr, for
// programs that own the terminal.
func NewFileLogger(service, level, path string) (*zap.Logger, error) {
	return newLogger(service, level, []string{path})
}

func newLogger(service, level string, paths []string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.InitialFields = map[string]any{"service": service}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	if len(paths) > 0 {
		cfg.OutputPaths = paths
		cfg.ErrorOutputPaths = paths
	}

	return cfg.Build()
}
