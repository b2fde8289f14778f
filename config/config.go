// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	configPath     = pflag.String("config", ".", "Directory to search for config.toml")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"postgres", "sqlite"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configPath)

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.cors", "host_cors")
	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")

	v.BindEnv("database.driver", "database_driver")
	v.BindEnv("database.host", "database_host")
	v.BindEnv("database.port", "database_port")
	v.BindEnv("database.user", "database_user")
	v.BindEnv("database.password", "database_password")
	v.BindEnv("database.name", "database_name")
	v.BindEnv("database.path", "database_path")

	v.BindEnv("jwt.private_key", "jwt_private_key")
	v.BindEnv("jwt.public_key", "jwt_public_key")
	v.BindEnv("jwt.access_ttl", "jwt_access_ttl")
	v.BindEnv("jwt.refresh_ttl", "jwt_refresh_ttl")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.username", "mail_username")
	v.BindEnv("mail.password", "mail_password")
	v.BindEnv("mail.from", "mail_from")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.cors", []string{"http://localhost:3000"})
	v.SetDefault("host.ssl.enabled", true)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "database.db")
	v.SetDefault("database.port", 5432)

	// TTLs are minutes
	v.SetDefault("jwt.access_ttl", 15)
	v.SetDefault("jwt.refresh_ttl", 10080)

	v.SetDefault("mail.port", 587)

	v.SetDefault("security.rate_limit", 20)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("database.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("database.driver") == "postgres" {
		if v.GetString("database.host") == "" {
			return errors.New("database host can't be empty")
		}
		if v.GetString("database.user") == "" {
			return errors.New("database user can't be empty")
		}
		if v.GetString("database.name") == "" {
			return errors.New("database name can't be empty")
		}
	}

	if v.GetString("jwt.private_key") == "" || v.GetString("jwt.public_key") == "" {
		return errors.New("jwt.private_key and jwt.public_key must be set to a base64-encoded RSA key pair")
	}

	if v.GetInt("jwt.access_ttl") <= 0 || v.GetInt("jwt.refresh_ttl") <= 0 {
		return errors.New("token TTLs must be bigger than 0")
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return errors.New("security.rate_limit must be bigger than 0")
	}

	if v.GetString("mail.host") == "" || v.GetString("mail.from") == "" {
		fmt.Println("[WARNING]: Mail settings are incomplete. Verification and waitlist mails will fail to send")
	}

	return nil
}
