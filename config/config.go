package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"

	domainerrors "fullapp/internal/domain/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultJWTIssuer          = "FullApp.Api"
	defaultJWTAudience        = "FullApp.Client"
	defaultJWTTTL             = 60 * time.Minute
	defaultSeedAdminEmail     = "admin@example.com"
	defaultSeedAdminPassword  = "Admin123!" // Known weakness: demo-only default, override via SEED_ADMINPASSWORD.
	defaultSeedAdminFullName  = "Admin User"
	defaultPublishTimeout     = 5 * time.Second
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	JWT JWTConfig `json:"jwt" yaml:"jwt"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Seed configuration for the startup bootstrapper
	Seed *SeedConfig `json:"seed" yaml:"seed"`

	// PubSub configuration for event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

// JWTConfig defines token signing settings. Key has no default.
type JWTConfig struct {
	Key      string        `json:"key" yaml:"key"`
	Issuer   string        `json:"issuer" yaml:"issuer"`
	Audience string        `json:"audience" yaml:"audience"`
	TTL      time.Duration `json:"ttl" yaml:"ttl"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
}

// SeedConfig controls the development seed data inserted at startup.
type SeedConfig struct {
	Enabled       bool   `json:"enabled" yaml:"enabled"`
	AdminEmail    string `json:"adminEmail" yaml:"adminEmail"`
	AdminPassword string `json:"adminPassword" yaml:"adminPassword"`
	AdminFullName string `json:"adminFullName" yaml:"adminFullName"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
	// SQL statements slower than this are logged at warn. Zero uses 200ms.
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// Upper bound for a single publish, so a slow broker cannot stall a request.
	PublishTimeout time.Duration `json:"publishTimeout" yaml:"publishTimeout"`
}

// LoadWithEnv loads <currEnv>.yaml from the first search path that has it, then
// overlays environment variables whose names map onto the YAML keys.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	configFile, err := findConfigFile(currEnv, configPath)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	yamlKeys := k.Raw()
	envProvider := env.Provider(".", env.Opt{
		// POSTGRES_SSLMODE -> postgres.sslMode, matching the casing used in YAML.
		TransformFunc: func(key, value string) (string, any) {
			return canonicalizeEnvKey(key, yamlKeys), value
		},
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	cfg := new(T)
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{DecoderConfig: decoderConfig(cfg)}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// findConfigFile searches the working directory first, then each path relative to it.
func findConfigFile(currEnv string, configPath []string) (string, error) {
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	name := currEnv + ".yaml"
	for _, path := range searchPaths {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.Errorf("config file %s not found in any search path", name)
}

// decoderConfig matches keys case-insensitively so env overrides without a YAML
// counterpart still land on the right field, and parses durations like "60m".
func decoderConfig(result any) *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		Result:           result,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
		MatchName: strings.EqualFold,
	}
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	cfg.Postgres.Replicas = buildReplicasFromEnv()

	return cfg, nil
}

// Validate reports missing settings the process cannot start without.
func (cfg *Config) Validate() error {
	if cfg.Postgres == nil {
		return domainerrors.ErrConfiguration.WrapMessage("postgres connection is not configured")
	}
	if strings.TrimSpace(cfg.JWT.Key) == "" {
		return domainerrors.ErrConfiguration.WrapMessage("jwt signing key is not configured, set JWT_KEY")
	}

	return nil
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = defaultJWTIssuer
	}
	if cfg.JWT.Audience == "" {
		cfg.JWT.Audience = defaultJWTAudience
	}
	if cfg.JWT.TTL <= 0 {
		cfg.JWT.TTL = defaultJWTTTL
	}
	if cfg.Seed == nil {
		cfg.Seed = &SeedConfig{Enabled: true}
	}
	if cfg.Seed.AdminEmail == "" {
		cfg.Seed.AdminEmail = defaultSeedAdminEmail
	}
	if cfg.Seed.AdminPassword == "" {
		cfg.Seed.AdminPassword = defaultSeedAdminPassword
	}
	if cfg.Seed.AdminFullName == "" {
		cfg.Seed.AdminFullName = defaultSeedAdminFullName
	}
	if cfg.PubSub != nil && cfg.PubSub.PublishTimeout <= 0 {
		cfg.PubSub.PublishTimeout = defaultPublishTimeout
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
