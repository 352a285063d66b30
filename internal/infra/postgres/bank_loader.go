package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"daily-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// BankLoader loads bank JSONB documents from the question_banks table.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	source := "postgres:question_banks/" + bankID

	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE id=$1`, bankID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewLoadError(source, domain.ErrBankNotFound)
	}
	if err != nil {
		return nil, domain.NewLoadError(source, fmt.Errorf("query bank: %w", err))
	}

	var bank domain.Bank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, domain.NewLoadError(source, fmt.Errorf("unmarshal bank: %w", err))
	}
	if err := bank.Validate(); err != nil {
		return nil, domain.NewLoadError(source, err)
	}
	return bank, nil
}
