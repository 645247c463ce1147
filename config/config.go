package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Values come from defaults,
// an optional YAML file, .env and the process environment, in increasing
// order of precedence. CLI flags are applied on top by the cmd package.
type Config struct {
	Source     string `mapstructure:"source" yaml:"source"`
	CSVPath    string `mapstructure:"csv_path" yaml:"csv_path"`
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`

	PostgresHost     string `mapstructure:"postgres_host" yaml:"postgres_host"`
	PostgresPort     string `mapstructure:"postgres_port" yaml:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user" yaml:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password" yaml:"postgres_password"`
	PostgresDB       string `mapstructure:"postgres_db" yaml:"postgres_db"`
	PostgresSSLMode  string `mapstructure:"postgres_sslmode" yaml:"postgres_sslmode"`

	MaxConcurrency int `mapstructure:"max_concurrency" yaml:"max_concurrency"`
	MaxRetries     int `mapstructure:"max_retries" yaml:"max_retries"`
	RetryBaseMs    int `mapstructure:"retry_base_ms" yaml:"retry_base_ms"`

	ListenAddr         string `mapstructure:"listen_addr" yaml:"listen_addr"`
	ExportDir          string `mapstructure:"export_dir" yaml:"export_dir"`
	ChromeBin          string `mapstructure:"chrome_bin" yaml:"chrome_bin"`
	SnapshotTimeoutSec int    `mapstructure:"snapshot_timeout_sec" yaml:"snapshot_timeout_sec"`
	Debug              bool   `mapstructure:"debug" yaml:"debug"`

	Dashboard Dashboard `mapstructure:"dashboard" yaml:"dashboard"`
}

// Dashboard holds the initial selection and fallback slider bounds.
type Dashboard struct {
	DefaultCities     []string `mapstructure:"default_cities" yaml:"default_cities"`
	DefaultMinHeight  float64  `mapstructure:"default_min_height" yaml:"default_min_height"`
	DefaultMinYear    int      `mapstructure:"default_min_year" yaml:"default_min_year"`
	FallbackMaxHeight int      `mapstructure:"fallback_max_height" yaml:"fallback_max_height"`
	FallbackMinYear   int      `mapstructure:"fallback_min_year" yaml:"fallback_min_year"`
	FallbackMaxYear   int      `mapstructure:"fallback_max_year" yaml:"fallback_max_year"`
	RankSize          int      `mapstructure:"rank_size" yaml:"rank_size"`
}

// DefaultDashboard returns the dashboard settings used when nothing else is
// configured.
func DefaultDashboard() Dashboard {
	return Dashboard{
		DefaultCities:     []string{"Las Vegas"},
		DefaultMinHeight:  200,
		DefaultMinYear:    1950,
		FallbackMaxHeight: 600,
		FallbackMinYear:   1900,
		FallbackMaxYear:   2024,
		RankSize:          5,
	}
}

// Load reads the .env file and the optional YAML file at cfgFile and
// returns a populated Config. An empty cfgFile looks for ./skyline.yaml.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("skyline")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read skyline.yaml: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	c.Dashboard.DefaultCities = trimAll(c.Dashboard.DefaultCities)
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source", "csv")
	v.SetDefault("csv_path", "./data/skyscrapers.csv")
	v.SetDefault("sqlite_path", "./data/skyline.db")

	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", "5432")
	v.SetDefault("postgres_user", "skyline")
	v.SetDefault("postgres_password", "skyline123")
	v.SetDefault("postgres_db", "skyline")
	v.SetDefault("postgres_sslmode", "disable")

	v.SetDefault("max_concurrency", 4)
	v.SetDefault("max_retries", 5)
	v.SetDefault("retry_base_ms", 500)

	v.SetDefault("listen_addr", "127.0.0.1:8501")
	v.SetDefault("export_dir", "./output")
	v.SetDefault("chrome_bin", "")
	v.SetDefault("snapshot_timeout_sec", 60)
	v.SetDefault("debug", false)

	d := DefaultDashboard()
	v.SetDefault("dashboard.default_cities", d.DefaultCities)
	v.SetDefault("dashboard.default_min_height", d.DefaultMinHeight)
	v.SetDefault("dashboard.default_min_year", d.DefaultMinYear)
	v.SetDefault("dashboard.fallback_max_height", d.FallbackMaxHeight)
	v.SetDefault("dashboard.fallback_min_year", d.FallbackMinYear)
	v.SetDefault("dashboard.fallback_max_year", d.FallbackMaxYear)
	v.SetDefault("dashboard.rank_size", d.RankSize)
}

// Save writes c as YAML to path, creating the directory if necessary.
func Save(c *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
