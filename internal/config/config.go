package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Dawichi/hexastats/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	TransportNetHTTP  = "nethttp"
	TransportFastHTTP = "fasthttp"
)

const (
	CacheBackendMemory   = "memory"
	CacheBackendRedis    = "redis"
	CacheBackendPostgres = "postgres"
	CacheBackendSQLite   = "sqlite"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level
	LogFormat          string
	CORSAllowedOrigins []string

	RiotAPIKey                string
	RiotBaseURL               string
	RiotTimeout               time.Duration
	RiotMaxRetries            int
	RiotRatePerSecond         float64
	RiotRateBurst             int
	RiotTransport             string
	RiotCircuitEnabled        bool
	RiotCircuitFailureCount   int
	RiotCircuitOpenTimeout    time.Duration
	RiotCircuitHalfOpenMaxReq int
	DDragonBaseURL            string

	CacheEnabled         bool
	CacheBackend         string
	CacheProfileTTL      time.Duration
	CacheAccountTTL      time.Duration
	CacheMatchTTL        time.Duration
	CacheMatchIDsTTL     time.Duration
	CacheRetention       time.Duration
	CacheWriteWorkers    int
	CacheJanitorInterval time.Duration
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	DBURL                string
	DBDisablePrepared    bool
	SQLitePath           string

	CatalogOverridePath   string
	MasteriesDefaultLimit int
	GamesDefaultLimit     int
	GamesMaxLimit         int
	GamesFetchWorkers     int

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	PprofEnabled               bool
	PprofAddr                  string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        strings.TrimSpace(getEnv("APP_SERVICE_NAME", "hexastats-api")),
		ServiceVersion:     strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		HTTPAddr:           strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		LogLevel:           logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RiotAPIKey:         strings.TrimSpace(getEnv("RIOT_API_KEY", "")),
		RiotBaseURL:        strings.TrimSpace(getEnv("RIOT_BASE_URL", "")),
		DDragonBaseURL:     strings.TrimSpace(getEnv("DDRAGON_BASE_URL", "https://ddragon.leagueoflegends.com")),
		RedisAddr:          strings.TrimSpace(getEnv("REDIS_ADDR", "")),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "")),
		SQLitePath:         strings.TrimSpace(getEnv("SQLITE_PATH", "./data/hexastats.db")),

		CatalogOverridePath: strings.TrimSpace(getEnv("CATALOG_OVERRIDE_PATH", "")),

		UptraceDSN:                 strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAppName:           strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PprofAddr:                  strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
	}

	if cfg.RiotAPIKey == "" {
		return Config{}, fmt.Errorf("RIOT_API_KEY is required")
	}

	cfg.LogFormat = strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_FORMAT", logging.FormatJSON)))
	if cfg.LogFormat != logging.FormatJSON && cfg.LogFormat != logging.FormatConsole {
		return Config{}, fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are %s, %s", cfg.LogFormat, logging.FormatJSON, logging.FormatConsole)
	}

	if cfg.ReadTimeout, err = getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "30s"); err != nil {
		return Config{}, err
	}

	if err := loadRiot(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadCache(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadLimits(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadRiot(cfg *Config) error {
	var err error

	if cfg.RiotTimeout, err = getEnvAsPositiveDuration("RIOT_TIMEOUT", "10s"); err != nil {
		return err
	}
	if cfg.RiotMaxRetries, err = getEnvAsInt("RIOT_MAX_RETRIES", 2); err != nil {
		return fmt.Errorf("parse RIOT_MAX_RETRIES: %w", err)
	}
	if cfg.RiotMaxRetries < 0 {
		return fmt.Errorf("RIOT_MAX_RETRIES must be >= 0")
	}

	rate, err := strconv.ParseFloat(getEnv("RIOT_RATE_PER_SECOND", "20"), 64)
	if err != nil {
		return fmt.Errorf("parse RIOT_RATE_PER_SECOND: %w", err)
	}
	if rate <= 0 {
		return fmt.Errorf("RIOT_RATE_PER_SECOND must be > 0")
	}
	cfg.RiotRatePerSecond = rate
	if cfg.RiotRateBurst, err = getEnvAsInt("RIOT_RATE_BURST", 20); err != nil {
		return fmt.Errorf("parse RIOT_RATE_BURST: %w", err)
	}
	if cfg.RiotRateBurst < 1 {
		return fmt.Errorf("RIOT_RATE_BURST must be >= 1")
	}

	cfg.RiotTransport = strings.ToLower(strings.TrimSpace(getEnv("RIOT_TRANSPORT", TransportNetHTTP)))
	switch cfg.RiotTransport {
	case TransportNetHTTP, TransportFastHTTP:
	default:
		return fmt.Errorf("invalid RIOT_TRANSPORT %q: valid values are %s, %s", cfg.RiotTransport, TransportNetHTTP, TransportFastHTTP)
	}

	if cfg.RiotCircuitEnabled, err = strconv.ParseBool(getEnv("RIOT_CIRCUIT_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse RIOT_CIRCUIT_ENABLED: %w", err)
	}
	if cfg.RiotCircuitFailureCount, err = getEnvAsInt("RIOT_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return fmt.Errorf("parse RIOT_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.RiotCircuitFailureCount < 1 {
		return fmt.Errorf("RIOT_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.RiotCircuitOpenTimeout, err = getEnvAsPositiveDuration("RIOT_CIRCUIT_OPEN_TIMEOUT", "15s"); err != nil {
		return err
	}
	if cfg.RiotCircuitHalfOpenMaxReq, err = getEnvAsInt("RIOT_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return fmt.Errorf("parse RIOT_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.RiotCircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("RIOT_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	return nil
}

func loadCache(cfg *Config) error {
	var err error

	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}

	cfg.CacheBackend = strings.ToLower(strings.TrimSpace(getEnv("CACHE_BACKEND", CacheBackendMemory)))
	switch cfg.CacheBackend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if cfg.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
	case CacheBackendPostgres:
		if cfg.DBURL == "" {
			return fmt.Errorf("DB_URL is required when CACHE_BACKEND=postgres")
		}
	case CacheBackendSQLite:
		if cfg.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when CACHE_BACKEND=sqlite")
		}
	default:
		return fmt.Errorf("invalid CACHE_BACKEND %q: valid values are %s, %s, %s, %s",
			cfg.CacheBackend, CacheBackendMemory, CacheBackendRedis, CacheBackendPostgres, CacheBackendSQLite)
	}

	if cfg.CacheProfileTTL, err = getEnvAsPositiveDuration("CACHE_PROFILE_TTL", "10m"); err != nil {
		return err
	}
	if cfg.CacheAccountTTL, err = getEnvAsPositiveDuration("CACHE_ACCOUNT_TTL", "24h"); err != nil {
		return err
	}
	if cfg.CacheMatchTTL, err = getEnvAsPositiveDuration("CACHE_MATCH_TTL", "168h"); err != nil {
		return err
	}
	if cfg.CacheMatchIDsTTL, err = getEnvAsPositiveDuration("CACHE_MATCH_IDS_TTL", "2m"); err != nil {
		return err
	}
	if cfg.CacheRetention, err = getEnvAsPositiveDuration("CACHE_RETENTION", "168h"); err != nil {
		return err
	}
	if cfg.CacheJanitorInterval, err = getEnvAsPositiveDuration("CACHE_JANITOR_INTERVAL", "30m"); err != nil {
		return err
	}
	if cfg.CacheWriteWorkers, err = getEnvAsInt("CACHE_WRITE_WORKERS", 8); err != nil {
		return fmt.Errorf("parse CACHE_WRITE_WORKERS: %w", err)
	}
	if cfg.CacheWriteWorkers < 1 {
		return fmt.Errorf("CACHE_WRITE_WORKERS must be >= 1")
	}
	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return fmt.Errorf("parse REDIS_DB: %w", err)
	}
	if cfg.DBDisablePrepared, err = strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false")); err != nil {
		return fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	return nil
}

func loadLimits(cfg *Config) error {
	var err error

	if cfg.MasteriesDefaultLimit, err = getEnvAsInt("MASTERIES_DEFAULT_LIMIT", 24); err != nil {
		return fmt.Errorf("parse MASTERIES_DEFAULT_LIMIT: %w", err)
	}
	if cfg.MasteriesDefaultLimit < 1 {
		return fmt.Errorf("MASTERIES_DEFAULT_LIMIT must be >= 1")
	}
	if cfg.GamesDefaultLimit, err = getEnvAsInt("GAMES_DEFAULT_LIMIT", 10); err != nil {
		return fmt.Errorf("parse GAMES_DEFAULT_LIMIT: %w", err)
	}
	if cfg.GamesMaxLimit, err = getEnvAsInt("GAMES_MAX_LIMIT", 20); err != nil {
		return fmt.Errorf("parse GAMES_MAX_LIMIT: %w", err)
	}
	if cfg.GamesDefaultLimit < 1 || cfg.GamesMaxLimit < cfg.GamesDefaultLimit {
		return fmt.Errorf("GAMES_DEFAULT_LIMIT must be >= 1 and <= GAMES_MAX_LIMIT")
	}
	if cfg.GamesFetchWorkers, err = getEnvAsInt("GAMES_FETCH_WORKERS", 10); err != nil {
		return fmt.Errorf("parse GAMES_FETCH_WORKERS: %w", err)
	}
	if cfg.GamesFetchWorkers < 1 {
		return fmt.Errorf("GAMES_FETCH_WORKERS must be >= 1")
	}

	return nil
}

func loadObservability(cfg *Config) error {
	var err error

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	if cfg.PyroscopeAppName == "" {
		cfg.PyroscopeAppName = cfg.ServiceName
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.PyroscopeUploadRate, err = getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}

	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
