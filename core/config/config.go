package config

import (
	"reflect"
	"strings"

	"pindb/core/fetch"
	"pindb/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// CatalogConfig locates the catalog checkout.
type CatalogConfig struct {
	// Path is the combined catalog file, a local path or an https URL.
	Path string `mapstructure:"path" default:"../vps-db/db/vpsdb.json"`
	// GamesDir is the per-game file directory used by the edit commands.
	GamesDir string `mapstructure:"games_dir" default:"../vps-db/games"`
}

// IssuesConfig locates the issue ledger file.
type IssuesConfig struct {
	Path string `mapstructure:"path" default:"issues.json"`
}

// ReportConfig configures report generation.
type ReportConfig struct {
	Output   string `mapstructure:"output" default:"./report/index.html"`
	CacheDir string `mapstructure:"cache_dir" default:"./cache-report"`
}

// ServeConfig configures the report server.
type ServeConfig struct {
	Port      string `mapstructure:"port" default:"8080"`
	ReportDir string `mapstructure:"report_dir" default:"./report"`
}

// Config holds all configuration for the tool, divided into partial
// configurations per concern.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Issues  IssuesConfig  `mapstructure:"issues"`
	Fetch   fetch.Config  `mapstructure:"fetch"`
	Report  ReportConfig  `mapstructure:"report"`
	Serve   ServeConfig   `mapstructure:"serve"`
	Log     logger.Config `mapstructure:"log"`
}

// LoadConfig builds the configuration from defaults, an optional .env
// file, and the process environment, in that order of precedence.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// A missing .env is normal; only local checkouts carry one.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// CATALOG_PATH overrides catalog.path, and so on.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the config struct and registers every leaf key with its
// 'default' tag value. Registration matters even for empty defaults, since
// AutomaticEnv only sees keys viper already knows about.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
