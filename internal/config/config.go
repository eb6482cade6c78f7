// Package config loads application settings from defaults, an optional
// YAML file, a .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/tubequiz/internal/llm"
	"github.com/abhisek/tubequiz/internal/logging"
	"github.com/abhisek/tubequiz/internal/quiz"
)

// EnvPrefix prefixes every environment override, e.g. TUBEQUIZ_LOG_LEVEL.
const EnvPrefix = "TUBEQUIZ"

// Config is the full application configuration.
type Config struct {
	LLM         llm.Config
	Transcript  TranscriptConfig
	Quiz        QuizConfig
	Certificate CertificateConfig
	Log         logging.Config

	// DBPath is the audit log database. Empty selects store.DefaultDBPath.
	DBPath string

	// File is the config file that was read, if any.
	File string
}

// TranscriptConfig controls caption retrieval.
type TranscriptConfig struct {
	Language string
}

// QuizConfig controls generation and grading.
type QuizConfig struct {
	QuestionCount     int
	ExcerptChars      int
	MinQuestions      int
	PassThreshold     float64
	LenientDifficulty bool
	Structured        bool
}

// CertificateConfig controls where certificates are written.
type CertificateConfig struct {
	Dir string
}

// Options selects the files Load reads.
type Options struct {
	// ConfigFile is an explicit YAML file. When empty, tubequiz.yaml is
	// looked up in the working directory and $XDG_CONFIG_HOME/tubequiz.
	ConfigFile string

	// EnvFile is loaded into the environment first. Defaults to ".env";
	// a missing file is not an error.
	EnvFile string
}

// Each key may also be set through the listed variables, first match wins.
var envAliases = map[string][]string{
	"llm.gemini.api_key":     {"TUBEQUIZ_GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY"},
	"llm.openai.api_key":     {"TUBEQUIZ_OPENAI_API_KEY", "OPENAI_API_KEY"},
	"llm.openai.base_url":    {"TUBEQUIZ_OPENAI_BASE_URL", "OPENAI_BASE_URL"},
	"llm.openrouter.api_key": {"TUBEQUIZ_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"},
	"llm.anthropic.api_key":  {"TUBEQUIZ_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
	"llm.ollama.server_url":  {"TUBEQUIZ_OLLAMA_SERVER_URL", "OLLAMA_HOST"},
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.ollama.server_url", d.Ollama.ServerURL)

	v.SetDefault("transcript.language", "en")

	v.SetDefault("quiz.question_count", 7)
	v.SetDefault("quiz.excerpt_chars", 5000)
	v.SetDefault("quiz.min_questions", 1)
	v.SetDefault("quiz.pass_threshold", 70.0)
	v.SetDefault("quiz.lenient_difficulty", false)
	v.SetDefault("quiz.structured", false)

	v.SetDefault("certificate.dir", ".")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.format", "console")

	v.SetDefault("db.path", "")
}

// Load reads the configuration and validates it. A missing API key for the
// selected provider is an error.
func Load(opts Options) (*Config, error) {
	cfg, err := Read(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for commands that never call the model.
func Read(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("tubequiz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "tubequiz"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		LLM: llmConfig(v),
		Transcript: TranscriptConfig{
			Language: v.GetString("transcript.language"),
		},
		Quiz: QuizConfig{
			QuestionCount:     v.GetInt("quiz.question_count"),
			ExcerptChars:      v.GetInt("quiz.excerpt_chars"),
			MinQuestions:      v.GetInt("quiz.min_questions"),
			PassThreshold:     v.GetFloat64("quiz.pass_threshold"),
			LenientDifficulty: v.GetBool("quiz.lenient_difficulty"),
			Structured:        v.GetBool("quiz.structured"),
		},
		Certificate: CertificateConfig{
			Dir: v.GetString("certificate.dir"),
		},
		Log: logging.Config{
			Level:  v.GetString("log.level"),
			File:   v.GetString("log.file"),
			Format: v.GetString("log.format"),
		},
		DBPath: v.GetString("db.path"),
		File:   v.ConfigFileUsed(),
	}
	return cfg
}

// llmConfig applies llm.model to whichever provider is selected; the other
// providers keep their defaults.
func llmConfig(v *viper.Viper) llm.Config {
	c := llm.DefaultConfig()
	c.Provider = strings.ToLower(v.GetString("llm.provider"))
	c.Gemini.APIKey = v.GetString("llm.gemini.api_key")
	c.OpenAI.APIKey = v.GetString("llm.openai.api_key")
	c.OpenAI.BaseURL = v.GetString("llm.openai.base_url")
	c.OpenRouter.APIKey = v.GetString("llm.openrouter.api_key")
	c.OpenRouter.BaseURL = v.GetString("llm.openrouter.base_url")
	c.Anthropic.APIKey = v.GetString("llm.anthropic.api_key")
	c.Ollama.ServerURL = v.GetString("llm.ollama.server_url")

	if model := v.GetString("llm.model"); model != "" {
		switch c.Provider {
		case llm.ProviderGemini:
			c.Gemini.Model = model
		case llm.ProviderOpenAI:
			c.OpenAI.Model = model
		case llm.ProviderOpenRouter:
			c.OpenRouter.Model = model
		case llm.ProviderAnthropic:
			c.Anthropic.Model = model
		case llm.ProviderOllama:
			c.Ollama.Model = model
		}
	}
	return c
}

// Validate checks the settings that would otherwise fail later.
func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if c.Quiz.QuestionCount < 1 {
		return fmt.Errorf("quiz.question_count must be at least 1, got %d", c.Quiz.QuestionCount)
	}
	if c.Quiz.MinQuestions < 1 || c.Quiz.MinQuestions > min(c.Quiz.QuestionCount, quiz.MaxQuestions) {
		return fmt.Errorf("quiz.min_questions must be between 1 and quiz.question_count, got %d", c.Quiz.MinQuestions)
	}
	if c.Quiz.PassThreshold <= 0 || c.Quiz.PassThreshold > 100 {
		return fmt.Errorf("quiz.pass_threshold must be in (0, 100], got %v", c.Quiz.PassThreshold)
	}
	if c.Quiz.ExcerptChars < 1 {
		return fmt.Errorf("quiz.excerpt_chars must be positive, got %d", c.Quiz.ExcerptChars)
	}
	return nil
}
