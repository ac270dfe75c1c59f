package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"financas/internal/core"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// Memory backend
	SeedCSVPath string

	// Google Sheets backend
	GoogleSpreadsheetID     string
	GoogleReadRange         string
	GoogleCredentialsFile   string
	GoogleCredentialsJSON   string
	GoogleStaticAccessToken string

	// Preferences store
	SQLiteDBPath string

	// AMQP (optional, empty URL disables alerting)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Background refresh (0 disables the ticker)
	RefreshInterval time.Duration

	// Header alias overrides, comma separated surface forms
	ClientAliases        string
	ServiceAliases       string
	AmountAliases        string
	StatusAliases        string
	PaymentDateAliases   string
	ReferenceDateAliases string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend: getEnv("DATA_BACKEND", "memory"),
		SeedCSVPath: getEnv("SEED_CSV_PATH", "./data/seed.csv"),

		GoogleSpreadsheetID:     getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleReadRange:         getEnv("GOOGLE_READ_RANGE", "A:Z"),
		GoogleCredentialsFile:   getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		GoogleCredentialsJSON:   getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		GoogleStaticAccessToken: getEnv("GOOGLE_STATIC_ACCESS_TOKEN", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/financas.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "financas"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "overdue_alerts"),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 0),

		ClientAliases:        getEnv("ALIAS_CLIENT", ""),
		ServiceAliases:       getEnv("ALIAS_SERVICE", ""),
		AmountAliases:        getEnv("ALIAS_AMOUNT", ""),
		StatusAliases:        getEnv("ALIAS_STATUS", ""),
		PaymentDateAliases:   getEnv("ALIAS_PAYMENT_DATE", ""),
		ReferenceDateAliases: getEnv("ALIAS_REFERENCE_DATE", ""),
	}

	return cfg
}

// AliasTable builds the header alias table, with env overrides appended to
// the defaults so custom spreadsheet layouts keep working without losing the
// standard headers.
func (c *Config) AliasTable() core.AliasTable {
	table := core.DefaultAliasTable()
	table.Client = append(table.Client, splitAliases(c.ClientAliases)...)
	table.Service = append(table.Service, splitAliases(c.ServiceAliases)...)
	table.Amount = append(table.Amount, splitAliases(c.AmountAliases)...)
	table.Status = append(table.Status, splitAliases(c.StatusAliases)...)
	table.PaymentDate = append(table.PaymentDate, splitAliases(c.PaymentDateAliases)...)
	table.ReferenceDate = append(table.ReferenceDate, splitAliases(c.ReferenceDateAliases)...)
	return table
}

func splitAliases(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"memory", "sheets"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate Google Sheets configuration if backend is sheets
	if c.DataBackend == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}

		hasCredsFile := c.GoogleCredentialsFile != ""
		hasCredsJSON := c.GoogleCredentialsJSON != ""
		hasStaticToken := c.GoogleStaticAccessToken != ""
		if !hasCredsFile && !hasCredsJSON && !hasStaticToken {
			errors = append(errors, "one of GOOGLE_CREDENTIALS_FILE, GOOGLE_CREDENTIALS_JSON or GOOGLE_STATIC_ACCESS_TOKEN must be provided for sheets backend")
		}

		if hasCredsFile {
			if _, err := os.Stat(c.GoogleCredentialsFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google credentials file does not exist: %s", c.GoogleCredentialsFile))
			}
		}
	}

	// Validate preferences store path
	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate refresh interval
	if c.RefreshInterval != 0 {
		if c.RefreshInterval < 10*time.Second {
			errors = append(errors, fmt.Sprintf("invalid refresh interval %v: must be at least 10 seconds", c.RefreshInterval))
		} else if c.RefreshInterval > 24*time.Hour {
			errors = append(errors, fmt.Sprintf("invalid refresh interval %v: must be at most 24 hours", c.RefreshInterval))
		}
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
