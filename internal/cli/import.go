package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"daily-quiz-service/internal/config"
	"daily-quiz-service/internal/infra/file"
	"daily-quiz-service/internal/infra/postgres"
	"daily-quiz-service/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewImportCmd stores bank files in Postgres.
func NewImportCmd(configPath *string) *cobra.Command {
	var bankID string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Validate a JSON/YAML bank file and upsert it into Postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log)
			defer func() { _ = log.Sync() }()

			path := args[0]
			bank, err := file.ReadBank(path)
			if err != nil {
				return err
			}
			id := bankID
			if id == "" {
				id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			db, err := openBun(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			writer := postgres.NewBankWriter(db)
			if err := writer.Upsert(cmd.Context(), id, bank); err != nil {
				return err
			}
			log.Info("bank imported", zap.String("bank_id", id), zap.Int("questions", bank.Size()))

			ids, err := writer.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored banks: %s\n", strings.Join(ids, ", "))
			return nil
		},
	}
	cmd.Flags().StringVar(&bankID, "id", "", "bank id (defaults to the file name without extension)")
	return cmd
}
