package kit

import "go.uber.org/zap"

// NewLogger builds the production JSON logger every service shares, tagged
// with the service name.
func NewLogger(service string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.InitialFields = map[string]any{"service": service}
	l, _ := cfg.Build()
	return l
}
