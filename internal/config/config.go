/**
 * @description
 * Configuration management for the banking API. Settings are read from
 * environment variables or a local .env file via Viper.
 *
 * @dependencies
 * - github.com/spf13/viper: For configuration management.
 */
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	ServerPort  string `mapstructure:"SERVER_PORT"`
	APIPrefix   string `mapstructure:"API_PREFIX"`

	JWTSecret       string `mapstructure:"JWT_SECRET"`
	TokenTTLMinutes int    `mapstructure:"TOKEN_TTL_MINUTES"`

	// RabbitMQURL is optional; when empty, domain events are logged instead
	// of published.
	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`

	// LedgerValidatedOnly restricts balance computation to validated
	// transactions. The default (false) preserves the historical behavior
	// where pending and cancelled entries count equally.
	LedgerValidatedOnly bool `mapstructure:"LEDGER_VALIDATED_ONLY"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("API_PREFIX", "/monteiro.daisa/v1")
	viper.SetDefault("TOKEN_TTL_MINUTES", 60)
	viper.SetDefault("LEDGER_VALIDATED_ONLY", false)

	// Bind envs explicitly so containers pick them up reliably.
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("API_PREFIX")
	_ = viper.BindEnv("JWT_SECRET")
	_ = viper.BindEnv("TOKEN_TTL_MINUTES")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("LEDGER_VALIDATED_ONLY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Error reading config file: %s", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &config, nil
}
