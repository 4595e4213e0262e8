package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/at-ishikawa/calculator/internal/calc"
)

type Config struct {
	Calculator CalculatorConfig `mapstructure:"calculator"`
	History    HistoryConfig    `mapstructure:"history"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Server     ServerConfig     `mapstructure:"server"`
	Report     ReportConfig     `mapstructure:"report"`
	Remote     RemoteConfig     `mapstructure:"remote"`
}

type CalculatorConfig struct {
	DecimalSeparator  string `mapstructure:"decimal_separator" validate:"separator"`
	MaxFractionDigits int    `mapstructure:"max_fraction_digits" validate:"min=0,max=15"`
	ErrorText         string `mapstructure:"error_text" validate:"required"`
}

// History backends.
const (
	HistoryBackendMemory = "memory"
	HistoryBackendYAML   = "yaml"
	HistoryBackendMySQL  = "mysql"
)

type HistoryConfig struct {
	Backend  string `mapstructure:"backend" validate:"oneof=memory yaml mysql"`
	YAMLFile string `mapstructure:"yaml_file" validate:"required_if=Backend yaml"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectAttempts uint              `mapstructure:"connect_attempts"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type ReportConfig struct {
	OutputDirectory string `mapstructure:"output_directory"`
	Template        string `mapstructure:"template" validate:"omitempty,file"`
}

type RemoteConfig struct {
	BaseURL       string `mapstructure:"base_url" validate:"required,url"`
	RetryAttempts uint   `mapstructure:"retry_attempts"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/calculator")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("calculator.decimal_separator", ",")
	v.SetDefault("calculator.max_fraction_digits", 3)
	v.SetDefault("calculator.error_text", "Error")
	v.SetDefault("history.backend", HistoryBackendMemory)
	v.SetDefault("history.yaml_file", filepath.Join("history", "calculations.yml"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.connect_attempts", 3)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	// Template is optional - if not specified, the embedded template is used
	v.SetDefault("report.template", "")
	v.SetDefault("report.output_directory", filepath.Join("outputs", "history"))
	v.SetDefault("remote.base_url", "http://localhost:8080")
	v.SetDefault("remote.retry_attempts", 3)

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("remote.base_url", "CALCULATOR_REMOTE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind CALCULATOR_REMOTE_URL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// NumberFormat returns the number format for keypad input and display.
func (c CalculatorConfig) NumberFormat() (calc.NumberFormat, error) {
	return calc.NewNumberFormat(c.DecimalSeparator, c.MaxFractionDigits)
}
