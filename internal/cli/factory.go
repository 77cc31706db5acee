package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/surveyflow/surveyflow"
	"github.com/surveyflow/surveyflow/internal/config"
	"github.com/surveyflow/surveyflow/pkg/adapters/file"
	"github.com/surveyflow/surveyflow/pkg/adapters/memory"
	"github.com/surveyflow/surveyflow/pkg/adapters/redis"
	"github.com/surveyflow/surveyflow/pkg/adapters/sqlite"
	"github.com/surveyflow/surveyflow/pkg/domain"
	"github.com/surveyflow/surveyflow/pkg/persistence/middleware"
	"github.com/surveyflow/surveyflow/pkg/ports"
	"github.com/surveyflow/surveyflow/pkg/samples"
)

// lockPrefix namespaces session locks in Redis.
const lockPrefix = "surveyflow:lock:"

// OpenSurvey builds a Survey with the CLI conventions: the graph comes from
// a built-in sample or a path, and the store from cfg.Store.
// The returned close func releases the store.
func OpenSurvey(cfg *config.Config, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*surveyflow.Survey, func() error, error) {
	source, opts, err := graphSource(cfg.Graph)
	if err != nil {
		return nil, nil, err
	}

	store, locker, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	secured, err := storeMiddleware(cfg.Security)
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}

	var merged domain.LifecycleHooks
	for _, h := range hooks {
		merged = merged.Merge(h)
	}

	opts = append(opts, surveyflow.WithStore(store))
	opts = append(opts, secured...)
	opts = append(opts,
		surveyflow.WithHooks(merged),
		surveyflow.WithLogger(logger),
	)
	if locker != nil {
		opts = append(opts, surveyflow.WithLocker(locker))
	}

	survey, err := surveyflow.New(source, opts...)
	if err != nil {
		_ = closeStore()
		return nil, nil, fmt.Errorf("error initializing survey: %w", err)
	}
	return survey, closeStore, nil
}

// graphSource resolves a built-in sample name to an in-memory graph.
// Anything else is handed to surveyflow.New as a path.
func graphSource(name string) (string, []surveyflow.Option, error) {
	if name == "" {
		return "", nil, errors.New("no graph configured")
	}
	if g, err := samples.ByName(name); err == nil {
		return "", []surveyflow.Option{surveyflow.WithGraph(g, samples.Labels())}, nil
	}
	return name, nil, nil
}

func openStore(cfg config.StoreConfig) (ports.StateStore, ports.DistributedLocker, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Kind {
	case config.StoreMemory:
		return memory.NewStore(), nil, noop, nil

	case config.StoreFile:
		return file.New(cfg.Path), nil, noop, nil

	case config.StoreRedis:
		opts := []redis.Option{redis.WithPrefix(cfg.Redis.Prefix)}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		return store, redis.NewLocker(store.Client(), lockPrefix), store.Close, nil

	case config.StoreSQLite:
		store, err := sqlite.New(sqlitePath(cfg.Path))
		if err != nil {
			return nil, nil, nil, err
		}
		return store, nil, store.Close, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
}

// sqlitePath accepts either a database file or a directory to put one in.
func sqlitePath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return path
	}
	return filepath.Join(path, "sessions.db")
}

// storeMiddleware returns PII masking first, then encryption, so masked
// values are what gets encrypted.
func storeMiddleware(sec config.SecurityConfig) ([]surveyflow.Option, error) {
	var opts []surveyflow.Option
	for _, p := range sec.PIIPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return nil, fmt.Errorf("invalid pii pattern %q: %w", p, err)
		}
	}
	if len(sec.PIIPatterns) > 0 {
		opts = append(opts, surveyflow.WithPIIMasking(sec.PIIPatterns...))
	}
	active, fallback, err := sec.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		opts = append(opts, surveyflow.WithMiddleware(middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		})))
	}
	return opts, nil
}
