package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Ollama  OllamaConfig  `yaml:"ollama" mapstructure:"ollama"`
	Chat    ChatConfig    `yaml:"chat" mapstructure:"chat"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	RequestLogging  bool          `yaml:"request_logging" mapstructure:"request_logging"`
}

// GetAddress returns the server address in host:port format
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// OllamaConfig holds the local Ollama integration settings: the CLI
// used for the model inventory and the HTTP endpoint used for chat.
type OllamaConfig struct {
	Endpoint        string        `yaml:"endpoint" mapstructure:"endpoint"`
	ListCommand     string        `yaml:"list_command" mapstructure:"list_command"`
	ListArgs        []string      `yaml:"list_args" mapstructure:"list_args"`
	ListTimeout     time.Duration `yaml:"list_timeout" mapstructure:"list_timeout"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`
	ResponseTimeout time.Duration `yaml:"response_timeout" mapstructure:"response_timeout"`
}

// ChatConfig holds conversation defaults surfaced to the chat widget
type ChatConfig struct {
	SystemPrompt       string  `yaml:"system_prompt" mapstructure:"system_prompt"`
	DefaultModel       string  `yaml:"default_model" mapstructure:"default_model"`
	DefaultTemperature float64 `yaml:"default_temperature" mapstructure:"default_temperature"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Output string `yaml:"output" mapstructure:"output"`
}
