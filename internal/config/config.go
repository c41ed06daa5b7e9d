package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Minio    MinioConfig    `toml:"minio"`
	Email    EmailConfig    `toml:"email"`
	Company  CompanyConfig  `toml:"company"`
	Invoice  InvoiceConfig  `toml:"invoice"`
}

// ServerConfig contains the HTTP listener settings
type ServerConfig struct {
	Port string `toml:"port"`
}

// DatabaseConfig contains the PostgreSQL connection settings
type DatabaseConfig struct {
	URL string `toml:"url"`
}

// RedisConfig contains the cache connection settings
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MinioConfig contains object storage settings for generated documents
type MinioConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
	Bucket    string `toml:"bucket"`
}

// EmailConfig identifies the transactional email provider account. The
// provider template is addressed by ServiceID/TemplateID and authorized by
// the public UserID key.
type EmailConfig struct {
	Endpoint   string `toml:"endpoint"`
	ServiceID  string `toml:"service_id"`
	TemplateID string `toml:"template_id"`
	UserID     string `toml:"user_id"`
}

// Configured reports whether real provider credentials were supplied.
// Shipped config files carry YOUR_* placeholders; the answer is decided once
// at load and receipt sends short-circuit on it without network I/O.
func (e EmailConfig) Configured() bool {
	for _, v := range []string{e.ServiceID, e.TemplateID, e.UserID} {
		if v == "" || strings.HasPrefix(v, "YOUR_") {
			return false
		}
	}
	return true
}

// CompanyConfig is the business identity printed on invoices and receipts
type CompanyConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
	Phone string `toml:"phone"`
}

// InvoiceConfig contains invoice generation settings
type InvoiceConfig struct {
	OutputDir string `toml:"output_dir"`
}

// Load reads configuration from a TOML file
func Load(filename string) (*Config, error) {
	config := &Config{}
	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.Minio.Bucket == "" {
		config.Minio.Bucket = "invoices"
	}
	if config.Invoice.OutputDir == "" {
		config.Invoice.OutputDir = "invoices"
	}
	return config, nil
}
