package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Lookup    LookupConfig    `mapstructure:"lookup"`
	Wikipedia WikipediaConfig `mapstructure:"wikipedia"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Speech    SpeechConfig    `mapstructure:"speech"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	ReadTimeout    int    `mapstructure:"read_timeout"`
	WriteTimeout   int    `mapstructure:"write_timeout"`
	RequestTimeout int    `mapstructure:"request_timeout"`
	AllowOrigins   string `mapstructure:"allow_origins"`
}

// LookupConfig holds request defaults for place lookups.
type LookupConfig struct {
	DefaultLang   string `mapstructure:"default_lang"`
	DefaultRadius int    `mapstructure:"default_radius"`
	DefaultLimit  int    `mapstructure:"default_limit"`
}

// WikipediaConfig points at the knowledge-base endpoints. Hosts containing
// "{lang}" are expanded per language edition.
type WikipediaConfig struct {
	APIURL      string `mapstructure:"api_url"`
	LangAPIURL  string `mapstructure:"lang_api_url"`
	RESTURL     string `mapstructure:"rest_url"`
	WikidataURL string `mapstructure:"wikidata_url"`
	UserAgent   string `mapstructure:"user_agent"`
	JSONTimeout int    `mapstructure:"json_timeout"`
	TextTimeout int    `mapstructure:"text_timeout"`
}

type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

// Enabled reports whether the generative backend is configured.
func (g GeminiConfig) Enabled() bool {
	return strings.TrimSpace(g.APIKey) != ""
}

type SpeechConfig struct {
	Provider string `mapstructure:"provider"`
	Endpoint string `mapstructure:"endpoint"`
	Timeout  int    `mapstructure:"timeout"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 90)
	v.SetDefault("server.request_timeout", 60)
	v.SetDefault("server.allow_origins", "http://localhost:3000, http://localhost:5173")
	v.SetDefault("lookup.default_lang", "en")
	v.SetDefault("lookup.default_radius", 8000)
	v.SetDefault("lookup.default_limit", 8)
	v.SetDefault("wikipedia.api_url", "https://en.wikipedia.org/w/api.php")
	v.SetDefault("wikipedia.lang_api_url", "https://{lang}.wikipedia.org/w/api.php")
	v.SetDefault("wikipedia.rest_url", "https://{lang}.wikipedia.org/api/rest_v1")
	v.SetDefault("wikipedia.wikidata_url", "https://www.wikidata.org/wiki/Special:EntityData")
	v.SetDefault("wikipedia.user_agent", "touristapi/1.0 (https://github.com/samirrijal/touristapi)")
	v.SetDefault("wikipedia.json_timeout", 15)
	v.SetDefault("wikipedia.text_timeout", 20)
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.base_url", "")
	v.SetDefault("gemini.timeout", 20)
	v.SetDefault("speech.provider", "gtts")
	v.SetDefault("speech.endpoint", "https://translate.google.com/translate_tts")
	v.SetDefault("speech.timeout", 20)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.enabled", false)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: TOURIST_GEMINI_API_KEY → gemini.api_key
	v.SetEnvPrefix("TOURIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "server.request_timeout must be positive")
	}
	if _, err := language.ParseBase(c.Lookup.DefaultLang); err != nil {
		errs = append(errs, fmt.Sprintf("lookup.default_lang %q is not a language code", c.Lookup.DefaultLang))
	}
	if c.Lookup.DefaultRadius < 100 || c.Lookup.DefaultRadius > 30000 {
		errs = append(errs, fmt.Sprintf("lookup.default_radius must be 100-30000, got %d", c.Lookup.DefaultRadius))
	}
	if c.Lookup.DefaultLimit < 1 || c.Lookup.DefaultLimit > 20 {
		errs = append(errs, fmt.Sprintf("lookup.default_limit must be 1-20, got %d", c.Lookup.DefaultLimit))
	}
	if c.Wikipedia.APIURL == "" {
		errs = append(errs, "wikipedia.api_url is required")
	}
	if !strings.Contains(c.Wikipedia.LangAPIURL, "{lang}") {
		errs = append(errs, "wikipedia.lang_api_url must contain {lang}")
	}
	if !strings.Contains(c.Wikipedia.RESTURL, "{lang}") {
		errs = append(errs, "wikipedia.rest_url must contain {lang}")
	}
	if c.Wikipedia.WikidataURL == "" {
		errs = append(errs, "wikipedia.wikidata_url is required")
	}
	if c.Wikipedia.JSONTimeout <= 0 || c.Wikipedia.TextTimeout <= 0 {
		errs = append(errs, "wikipedia timeouts must be positive")
	}
	if c.Gemini.Enabled() && c.Gemini.Model == "" {
		errs = append(errs, "gemini.model is required when gemini.api_key is set")
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		errs = append(errs, "nats.url is required when nats is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
