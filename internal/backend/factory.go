package backend

import (
	"context"
	"fmt"

	"expense-tracker/internal/amqp"
	applog "expense-tracker/internal/log"
	"expense-tracker/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case JSONBackend:
		result = f.createJSONBackend(config)
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(config)
	case MemoryBackend:
		result = f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	f.attachNotifier(ctx, config, result)

	f.logger.DebugContext(ctx, "Created backend",
		applog.FieldBackend, config.Type.String(),
		"events", result.Notifier != nil)
	return result, nil
}

func (f *DefaultFactory) createJSONBackend(config Config) *BackendResult {
	store := storage.NewJSONFileStore(config.ExpensesFile, f.logger)

	f.logger.Debug("Initialized JSON file backend", applog.FieldPath, store.Path())

	return &BackendResult{
		Store:   store,
		Cleanup: nil, // nothing held open between load and save
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	store, err := storage.NewSQLiteStore(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.Debug("Initialized SQLite backend", applog.FieldPath, config.SQLiteDBPath)

	return &BackendResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend() *BackendResult {
	f.logger.Debug("Initialized memory backend")

	return &BackendResult{
		Store:   storage.NewMemoryStore(),
		Cleanup: nil,
	}
}

// attachNotifier connects the optional AMQP publisher. A broker that cannot
// be reached only disables events; the command still runs.
func (f *DefaultFactory) attachNotifier(ctx context.Context, config Config, result *BackendResult) {
	if config.AMQPURL == "" {
		return
	}

	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPRoutingKey, f.logger)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events",
			applog.FieldErrorType, applog.ErrorTypeNetwork,
			applog.FieldError, err)
		return
	}

	f.logger.InfoContext(ctx, "Initialized AMQP client",
		applog.FieldExchange, config.AMQPExchange,
		applog.FieldRoutingKey, config.AMQPRoutingKey)

	result.Notifier = client
	storeCleanup := result.Cleanup
	result.Cleanup = func() error {
		var errs []error
		if err := client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
		if storeCleanup != nil {
			if err := storeCleanup(); err != nil {
				errs = append(errs, fmt.Errorf("storage: %w", err))
			}
		}
		if len(errs) > 0 {
			return fmt.Errorf("close backend: %v", errs)
		}
		return nil
	}
}
