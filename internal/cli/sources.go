package cli

import (
	"context"
	"strings"
	"time"

	"daily-quiz-service/internal/app"
	"daily-quiz-service/internal/config"
	"daily-quiz-service/internal/infra/file"
	"daily-quiz-service/internal/infra/memory"
	"daily-quiz-service/internal/infra/postgres"
	"daily-quiz-service/internal/infra/remote"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

// bankLoader picks the bank source: Postgres, then a remote URL, then a directory.
// The returned close func releases the source's connections.
func bankLoader(ctx context.Context, cfg config.Config, log *zap.Logger) (memory.BankLoader, func(), error) {
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("loading banks from postgres")
		return postgres.NewBankLoader(pool), pool.Close, nil
	case cfg.Bank.URL != "":
		log.Info("loading banks over http", zap.String("url", cfg.Bank.URL))
		// no client timeout: the caller's context bounds the fetch
		return remote.NewBankLoader(nil, cfg.Bank.URL), func() {}, nil
	default:
		log.Info("loading banks from directory", zap.String("dir", cfg.Bank.Dir))
		return file.NewBankLoader(cfg.Bank.Dir), func() {}, nil
	}
}

// sourceOverride points cfg at a directory or http(s) URL given on the command line.
func sourceOverride(cfg config.Config, source string) config.Config {
	if source == "" {
		return cfg
	}
	cfg.Postgres.URL = ""
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		cfg.Bank.URL = source
		return cfg
	}
	cfg.Bank.URL = ""
	cfg.Bank.Dir = source
	return cfg
}

// localBanks caches banks in process memory for the terminal client.
func localBanks(loader memory.BankLoader, cfg config.Config) app.BankRepository {
	return memory.NewBankRepository(loader, config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute))
}
