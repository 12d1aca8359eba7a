package ports

import "context"

// MessageConsumer — фоновый потребитель событий статуса.
// Run блокируется до отмены контекста или фатальной ошибки; Close идемпотентен.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
