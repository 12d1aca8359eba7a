package ports

import "context"

// Logger — контракт логгера для всех слоёв.
// ctx передаётся, чтобы реализация могла достать request_id / trace_id.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
