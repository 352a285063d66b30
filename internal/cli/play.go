package cli

import (
	"os"

	"daily-quiz-service/internal/config"
	"daily-quiz-service/internal/logger"
	"daily-quiz-service/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// NewPlayCmd runs the quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		source  string
		bankID  string
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the daily quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			cfg = sourceOverride(cfg, source)
			if bankID == "" {
				bankID = cfg.Bank.ID
			}

			// the TUI owns stdout; only warnings go to stderr
			cfg.Log.Level = "warn"
			log := logger.New(cfg.Log)
			defer func() { _ = log.Sync() }()

			loader, closeLoader, err := bankLoader(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeLoader()

			model := tui.NewModel(localBanks(loader, cfg), bankID, tui.Options{
				PerTier: cfg.Bank.TierSize,
				NoColor: noColor || os.Getenv("NO_COLOR") != "",
			})
			_, err = tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout()), tea.WithAltScreen()).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "bank directory or http(s) base URL")
	cmd.Flags().StringVar(&bankID, "bank", "", "bank id (defaults to bank.id)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	return cmd
}
