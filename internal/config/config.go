package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/ratios/internal/lineitem"
	"github.com/cleared-dev/ratios/internal/statement"
)

// EnvPrefix prefixes environment overrides, e.g. RATIOS_SERVER_ADDR.
const EnvPrefix = "RATIOS"

// Config represents the top-level ratios.yaml configuration.
type Config struct {
	Statements statement.Layout `yaml:"statements" mapstructure:"statements"`
	LineItems  lineitem.Keys    `yaml:"line_items" mapstructure:"line_items"`
	Export     ExportConfig     `yaml:"export" mapstructure:"export"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Auth       AuthConfig       `yaml:"auth" mapstructure:"auth"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// ExportConfig controls the downloadable ratio table.
type ExportConfig struct {
	FileName  string `yaml:"file_name" mapstructure:"file_name" validate:"required"`
	SheetName string `yaml:"sheet_name" mapstructure:"sheet_name" validate:"required,max=31"`
	Format    string `yaml:"format" mapstructure:"format" validate:"oneof=xlsx csv pdf"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr       string        `yaml:"addr" mapstructure:"addr" validate:"required"`
	SessionTTL time.Duration `yaml:"session_ttl" mapstructure:"session_ttl" validate:"gt=0"`
	// LoginRate is the sustained number of failed logins allowed per minute
	// for each username.
	LoginRate  float64 `yaml:"login_rate" mapstructure:"login_rate" validate:"gt=0"`
	LoginBurst int     `yaml:"login_burst" mapstructure:"login_burst" validate:"gte=1"`
	// MaxUploadMB bounds the request body of a statement upload.
	MaxUploadMB int `yaml:"max_upload_mb" mapstructure:"max_upload_mb" validate:"gte=1"`
}

// AuthConfig holds the users allowed to sign in.
type AuthConfig struct {
	Users []Credential `yaml:"users" mapstructure:"users" validate:"dive"`
}

// Credential is a username/password pair.
type Credential struct {
	Username string `yaml:"username" mapstructure:"username" validate:"required"`
	Password string `yaml:"password" mapstructure:"password" validate:"required"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=console json"`
}

// Load reads a ratios.yaml file and applies RATIOS_* environment overrides.
// An empty path loads defaults plus environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := v.ReadConfig(strings.NewReader(string(data))); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key of def so that environment overrides
// apply even when the file omits the key.
func setDefaults(v *viper.Viper, def *Config) {
	data, err := yaml.Marshal(def)
	if err != nil {
		return
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return
	}
	for k, val := range flatten("", m) {
		v.SetDefault(k, val)
	}
}

func flatten(prefix string, m map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			for sk, sv := range flatten(key, sub) {
				out[sk] = sv
			}
			continue
		}
		out[key] = v
	}
	return out
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the configuration for missing or out-of-range values.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Default returns a Config with the layout of Spanish statutory statements.
func Default() *Config {
	return &Config{
		Statements: statement.DefaultLayout(),
		LineItems:  lineitem.DefaultKeys(),
		Export: ExportConfig{
			FileName:  "ratios_financieros.xlsx",
			SheetName: "Ratios 2024",
			Format:    "xlsx",
		},
		Server: ServerConfig{
			Addr:        ":8080",
			SessionTTL:  8 * time.Hour,
			LoginRate:   5,
			LoginBurst:  5,
			MaxUploadMB: 20,
		},
		Auth: AuthConfig{
			Users: []Credential{{Username: "admin", Password: "admin"}},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
