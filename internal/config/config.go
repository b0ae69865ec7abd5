package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all pipeline configuration.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Paths    PathsConfig
}

// AppConfig holds runtime environment configuration.
type AppConfig struct {
	Env string `validate:"required,oneof=development production test"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     string `validate:"required"`
	Name     string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`
	PoolMin  int    `validate:"gte=0"`
	PoolMax  int    `validate:"gte=1"`
}

// PathsConfig holds the file locations the pipeline reads and writes.
type PathsConfig struct {
	// SourceCSV is the flat raw extract, one row per property.
	SourceCSV string `validate:"required"`
	// SnapshotDir receives one normalized CSV per target table.
	SnapshotDir string `validate:"required"`
	// OutputDir receives the analysis workbook, chart images, and the
	// mismatch report when validation finds disagreements.
	OutputDir string `validate:"required"`
}

// Load reads configuration from environment variables. It uses viper to read
// values and provides sensible defaults for development; only DB_PASSWORD
// has no default.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "home_db")
	v.SetDefault("DB_USER", "db_user")
	v.SetDefault("DB_POOL_MIN", 1)
	v.SetDefault("DB_POOL_MAX", 4)
	v.SetDefault("SOURCE_CSV", "sql/fake_data.csv")
	v.SetDefault("SNAPSHOT_DIR", "normalized_csvs")
	v.SetDefault("OUTPUT_DIR", "analysis_outputs")

	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env: v.GetString("ENV"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			PoolMin:  v.GetInt("DB_POOL_MIN"),
			PoolMax:  v.GetInt("DB_POOL_MAX"),
		},
		Paths: PathsConfig{
			SourceCSV:   v.GetString("SOURCE_CSV"),
			SnapshotDir: v.GetString("SNAPSHOT_DIR"),
			OutputDir:   v.GetString("OUTPUT_DIR"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	// Cross-field rule the struct tags cannot express.
	if c.Database.PoolMin > c.Database.PoolMax {
		return fmt.Errorf("DB_POOL_MIN must be less than or equal to DB_POOL_MAX")
	}
	return nil
}
