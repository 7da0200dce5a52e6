package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

// LLMConfig holds connection settings for the OpenAI-compatible LLM provider.
// APIKeyEnv names the environment variable the key is read from, so the key
// itself never lives in config.yaml.
type LLMConfig struct {
	APIKeyEnv string `mapstructure:"api_key_env"`
	APIKey    string `mapstructure:"-"`
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	// Persona is the fixed system instruction every chat session is primed
	// with. MaxReplyChars is appended to it as length guidance.
	Persona       string `mapstructure:"persona"`
	MaxReplyChars int    `mapstructure:"max_reply_chars"`
}

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		DSN string // "memory" or a SQLite file path
	}
	LLM LLMConfig `mapstructure:"llm"`
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig loads configuration from config.yaml and environment variables.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../config")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.dsn", "memory")
	viper.SetDefault("llm.api_key_env", "COACHHUB_LLM_API_KEY")
	viper.SetDefault("llm.base_url", "https://api.openai.com/v1")
	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.max_reply_chars", 300)
	viper.SetDefault("llm.persona",
		"你是一位资深的客服中心运营管理顾问，专注于人员流失、薪酬结构、排班与话务预测等运营问题。"+
			"始终使用简体中文回答，语气专业、友好。")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	// Environment variable overrides
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		AppConfig.Database.DSN = dsn
		log.Println("INFO: [Config] Database DSN overridden by environment variable DATABASE_DSN.")
	}

	// Resolve the LLM API key through its environment variable indirection.
	if AppConfig.LLM.APIKeyEnv != "" {
		if key := os.Getenv(AppConfig.LLM.APIKeyEnv); key != "" {
			AppConfig.LLM.APIKey = key
			log.Printf("INFO: [Config] Loaded LLM API key from environment variable '%s'.", AppConfig.LLM.APIKeyEnv)
		} else {
			log.Printf("WARN: [Config] LLM API key environment variable '%s' is not set. AI features will run in degraded (canned-reply) mode.", AppConfig.LLM.APIKeyEnv)
		}
	}

	log.Println("INFO: [Config] Configuration loading complete.")
}
