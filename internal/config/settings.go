package config

import "time"

// DatabaseConfig holds the postgres connection and pool settings.
type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite". SQLitePath is only read for sqlite.
	Driver          string
	SQLitePath      string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DSN renders the key/value connection string understood by the postgres driver.
func (d DatabaseConfig) DSN() string {
	return "host=" + d.Host +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" port=" + d.Port +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// SummaryTTL bounds how long the deal portfolio summary stays cached.
	SummaryTTL time.Duration
}

type LogConfig struct {
	Level      string
	Format     string
	Output     string
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// PolicyConfig groups the business toggles that changed between releases.
type PolicyConfig struct {
	// FEINDuplicateCheck enables the application level duplicate FEIN
	// lookup. With it off the unique index still rejects duplicates.
	FEINDuplicateCheck bool
	// SSNDuplicateCheck enables the per-merchant SSN duplicate check.
	SSNDuplicateCheck bool
	// SSNKey seals principal SSNs at rest. Must be 32 bytes once decoded.
	SSNKey string
}

type Config struct {
	Port        string
	CORSOrigins string
	JWTSecret   string
	Database    DatabaseConfig
	Redis       RedisConfig
	Log         LogConfig
	Policy      PolicyConfig
}

// Load reads the process environment into a Config.
func Load() *Config {
	return &Config{
		Port:        GetEnv("PORT", "3000"),
		CORSOrigins: GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		JWTSecret:   GetEnv("JWT_SECRET", ""),
		Database: DatabaseConfig{
			Driver:          GetEnv("DB_DRIVER", "postgres"),
			SQLitePath:      GetEnv("DB_SQLITE_PATH", "mcacrm.db"),
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "mcacrm"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:       GetEnv("REDIS_HOST", "localhost"),
			Port:       GetEnv("REDIS_PORT", "6379"),
			Password:   GetEnv("REDIS_PASSWORD", ""),
			DB:         GetIntEnv("REDIS_DB", 0),
			SummaryTTL: GetDurationEnv("SUMMARY_CACHE_TTL", 5*time.Minute),
		},
		Log: LogConfig{
			Level:      GetEnv("LOG_LEVEL", "info"),
			Format:     GetEnv("LOG_FORMAT", "json"),
			Output:     GetEnv("LOG_OUTPUT", "stdout"),
			FilePath:   GetEnv("LOG_FILE", "logs/mcacrm.log"),
			MaxSize:    GetIntEnv("LOG_MAX_SIZE_MB", 100),
			MaxBackups: GetIntEnv("LOG_MAX_BACKUPS", 5),
			MaxAge:     GetIntEnv("LOG_MAX_AGE_DAYS", 30),
			Compress:   GetBoolEnv("LOG_COMPRESS", true),
		},
		Policy: PolicyConfig{
			FEINDuplicateCheck: GetBoolEnv("FEIN_DUPLICATE_CHECK", false),
			SSNDuplicateCheck:  GetBoolEnv("SSN_DUPLICATE_CHECK", true),
			SSNKey:             GetEnv("SSN_SEAL_KEY", ""),
		},
	}
}
