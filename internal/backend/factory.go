package backend

import (
	"context"
	"fmt"

	"orcamento/internal/amqp"
	"orcamento/internal/log"
	"orcamento/internal/storage"
)

// Factory opens the adapters for a backend configuration.
type Factory struct {
	logger *log.Logger
	dial   func(url, exchange, queue string) (*amqp.Client, error)
}

func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &Factory{
		logger: logger.WithComponent(log.ComponentBackend),
		dial:   amqp.NewClient,
	}
}

// Open creates the storage adapter and, when an AMQP URL is configured, the
// event publisher. A broker that cannot be reached only disables publishing.
func (f *Factory) Open(ctx context.Context, cfg Config) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Backend{Type: cfg.Type}
	switch cfg.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		b.Writer, b.Loader = repo, repo
		f.logger.InfoContext(ctx, "Initialized SQLite backend", log.FieldBackend, cfg.Type, "path", cfg.SQLiteDBPath)
	case MemoryBackend:
		f.logger.InfoContext(ctx, "Initialized memory backend", log.FieldBackend, cfg.Type)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}

	if cfg.AMQPURL != "" {
		client, err := f.dial(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "AMQP client not available, entry events disabled", log.FieldError, err)
		} else {
			b.Publisher = client
		}
	}

	return b, nil
}
