package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	DefaultPort = 7860
	DefaultHost = "127.0.0.1"

	DefaultOllamaEndpoint = "http://localhost:11434"
)

// DefaultSystemPrompt is the assistant instruction prepended to every
// conversation sent to the model.
const DefaultSystemPrompt = `You are an AI programming assistant. When asked about code:
1. Provide clear, well-commented code examples
2. Explain your reasoning and approach
3. Highlight best practices and potential pitfalls
4. Use markdown formatting for code blocks
`

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    10 * time.Minute, // chat replies can take a while on CPU
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestLogging:  true,
		},
		Ollama: OllamaConfig{
			Endpoint:        DefaultOllamaEndpoint,
			ListCommand:     "ollama",
			ListArgs:        []string{"list"},
			ListTimeout:     10 * time.Second,
			ConnectTimeout:  30 * time.Second,
			ResponseTimeout: 10 * time.Minute, // long response timeout for LLMs
		},
		Chat: ChatConfig{
			SystemPrompt:       DefaultSystemPrompt,
			DefaultModel:       "llama2",
			DefaultTemperature: 0.7,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// setViperDefaults registers every key with viper so AutomaticEnv can
// surface KODA_* overrides during Unmarshal.
func setViperDefaults(cfg *Config) {
	viper.SetDefault("server.host", cfg.Server.Host)
	viper.SetDefault("server.port", cfg.Server.Port)
	viper.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	viper.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	viper.SetDefault("server.idle_timeout", cfg.Server.IdleTimeout)
	viper.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)
	viper.SetDefault("server.request_logging", cfg.Server.RequestLogging)

	viper.SetDefault("ollama.endpoint", cfg.Ollama.Endpoint)
	viper.SetDefault("ollama.list_command", cfg.Ollama.ListCommand)
	viper.SetDefault("ollama.list_args", cfg.Ollama.ListArgs)
	viper.SetDefault("ollama.list_timeout", cfg.Ollama.ListTimeout)
	viper.SetDefault("ollama.connect_timeout", cfg.Ollama.ConnectTimeout)
	viper.SetDefault("ollama.response_timeout", cfg.Ollama.ResponseTimeout)

	viper.SetDefault("chat.system_prompt", cfg.Chat.SystemPrompt)
	viper.SetDefault("chat.default_model", cfg.Chat.DefaultModel)
	viper.SetDefault("chat.default_temperature", cfg.Chat.DefaultTemperature)

	viper.SetDefault("logging.level", cfg.Logging.Level)
	viper.SetDefault("logging.format", cfg.Logging.Format)
	viper.SetDefault("logging.output", cfg.Logging.Output)
}

// Load loads configuration from file and environment variables. The
// onChange callback fires whenever the watched config file changes.
func Load(onChange func()) (*Config, error) {
	config := DefaultConfig()
	setViperDefaults(config)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("KODA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// If config file not found, check if we have KODA_CONFIG_FILE env var
		if configFile := os.Getenv("KODA_CONFIG_FILE"); configFile != "" {
			viper.SetConfigFile(configFile)
			if err := viper.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
			}
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if onChange != nil {
		viper.OnConfigChange(func(_ fsnotify.Event) {
			onChange()
		})
	}
	viper.WatchConfig()

	return config, nil
}
