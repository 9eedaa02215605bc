package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port"       validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level"  validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"omitempty,oneof=json text"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of in-flight requests.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the SQL dialect: "postgres" (pgx) or "sqlite" (modernc).
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	// URL is a Postgres connection URL or a SQLite file path / DSN.
	URL                    string `mapstructure:"url"                       validate:"required"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret verifies HS256 bearer tokens issued by the identity service.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// ScheduleConfig contains the tunables of the slot scheduler.
type ScheduleConfig struct {
	// HorizonDays is how many days past today the skeleton generator may materialize.
	HorizonDays int `mapstructure:"horizon_days" validate:"gte=1,lte=366"`
	// SearchDays is how many days past the start date first-free-slot search scans.
	SearchDays int `mapstructure:"search_days" validate:"gte=1,lte=366"`
	// Timezone is the IANA name of the location that defines "today" and slot locks.
	Timezone string `mapstructure:"timezone" validate:"required,timezone"`
}
