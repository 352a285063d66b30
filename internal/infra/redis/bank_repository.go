package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"time"

	"daily-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// BankLoader fetches a question bank from its source (file, HTTP, Postgres).
type BankLoader interface {
	LoadBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// BankRepository caches validated bank documents in Redis and falls back to a loader
// on cache miss. Banks are stored as JSON: SET quiz:bank:{bankID} <json> EX ttl.
// Redis errors degrade to a direct load.
type BankRepository struct {
	client *redis.Client
	loader BankLoader
	ttl    time.Duration
	sf     singleflight.Group
	log    *zap.Logger
}

func NewBankRepository(client *redis.Client, loader BankLoader, ttl time.Duration, logger *zap.Logger) *BankRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		log:    logger,
	}
}

func (r *BankRepository) GetBank(ctx context.Context, bankID string) (domain.Bank, error) {
	if bank, ok := r.cached(ctx, bankID); ok {
		return bank, nil
	}

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		// Re-check cache in case another caller filled it.
		if bank, ok := r.cached(ctx, bankID); ok {
			return bank, nil
		}

		bank, err := r.loader.LoadBank(ctx, bankID)
		if err != nil {
			return nil, err
		}

		if ttl := r.ttlWithJitter(); ttl > 0 {
			if data, err := json.Marshal(bank); err == nil {
				if err := r.client.Set(ctx, bankKey(bankID), data, ttl).Err(); err != nil {
					r.log.Warn("bank cache write failed", zap.String("bank_id", bankID), zap.Error(err))
				}
			}
		}
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.Bank), nil
}

// Invalidate removes the cached copy of a bank.
func (r *BankRepository) Invalidate(ctx context.Context, bankID string) error {
	return r.client.Del(ctx, bankKey(bankID)).Err()
}

func (r *BankRepository) cached(ctx context.Context, bankID string) (domain.Bank, bool) {
	data, err := r.client.Get(ctx, bankKey(bankID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("bank cache read failed", zap.String("bank_id", bankID), zap.Error(err))
		}
		return nil, false
	}
	var bank domain.Bank
	if err := json.Unmarshal(data, &bank); err != nil || bank.Validate() != nil {
		r.log.Warn("dropping corrupt cached bank", zap.String("bank_id", bankID))
		_ = r.client.Del(ctx, bankKey(bankID)).Err()
		return nil, false
	}
	return bank, true
}

func bankKey(bankID string) string {
	return "quiz:bank:" + bankID
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(rand.Int64N(jitterMax+1))
}
