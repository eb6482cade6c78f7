package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/tubequiz/internal/config"
	"github.com/abhisek/tubequiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "tubequiz",
	Short: "Turn YouTube videos into quizzes",
	Long: `TubeQuiz fetches a YouTube video's transcript, asks an LLM for a short
multiple-choice quiz about it, scores your answers and issues a PDF
certificate when you pass.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TUBEQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a tubequiz.yaml config file")
	rootCmd.Flags().String("url", "", "YouTube URL to pre-fill on the home screen")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(certsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads settings using the --config flag. validate also checks
// that the selected LLM provider is usable.
func loadConfig(cmd *cobra.Command, validate bool) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	opts := config.Options{ConfigFile: file}
	if validate {
		return config.Load(opts)
	}
	return config.Read(opts)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then db.path from the config, then TUBEQUIZ_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the audit log for read-only commands.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
