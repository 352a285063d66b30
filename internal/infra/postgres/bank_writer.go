package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"daily-quiz-service/internal/domain"
	"github.com/uptrace/bun"
)

// BankRow is the question_banks table model.
type BankRow struct {
	bun.BaseModel `bun:"table:question_banks"`

	ID        string          `bun:"id,pk"`
	Data      json.RawMessage `bun:"data,type:jsonb,notnull"`
	UpdatedAt time.Time       `bun:"updated_at,notnull"`
}

// BankWriter stores validated banks with bun.
type BankWriter struct {
	db  *bun.DB
	now func() time.Time
}

func NewBankWriter(db *bun.DB) *BankWriter {
	return &BankWriter{db: db, now: time.Now}
}

// Upsert validates bank and inserts or replaces the row for bankID.
func (w *BankWriter) Upsert(ctx context.Context, bankID string, bank domain.Bank) error {
	if err := bank.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(bank)
	if err != nil {
		return fmt.Errorf("marshal bank: %w", err)
	}
	row := &BankRow{ID: bankID, Data: data, UpdatedAt: w.now().UTC()}
	_, err = w.db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert bank %s: %w", bankID, err)
	}
	return nil
}

// List returns stored bank ids, oldest update first.
func (w *BankWriter) List(ctx context.Context) ([]string, error) {
	var ids []string
	err := w.db.NewSelect().
		Model((*BankRow)(nil)).
		Column("id").
		Order("updated_at ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	return ids, nil
}
