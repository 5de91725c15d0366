package config

import "time"

type Config struct {
	App       AppConfig       `env-prefix:"APP_"`
	HTTP      HTTPConfig      `env-prefix:"HTTP_"`
	Storage   StorageConfig   `env-prefix:"STORAGE_"`
	Mongo     MongoConfig     `env-prefix:"MONGO_"`
	JWT       JWTConfig       `env-prefix:"JWT_"`
	Admin     AdminConfig     `env-prefix:"ADMIN_"`
	Redis     RedisConfig     `env-prefix:"REDIS_"`
	RateLimit RateLimitConfig `env-prefix:"RATE_LIMIT_"`
}

type AppConfig struct {
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	Pretty   bool   `env:"PRETTY" env-default:"false"`
	GinMode  string `env:"GIN_MODE" env-default:"release"`
}

type HTTPConfig struct {
	Addr            string        `env:"ADDR" env-default:":8080"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" env-default:"1048576"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type StorageConfig struct {
	Driver string `env:"DRIVER" env-default:"mongo"`
}

type MongoConfig struct {
	URI             string        `env:"URI" env-default:"mongodb://localhost:27017"`
	Database        string        `env:"DB" env-default:"notes-manager"`
	MaxPoolSize     uint64        `env:"MAX_POOL_SIZE" env-default:"100"`
	MinPoolSize     uint64        `env:"MIN_POOL_SIZE" env-default:"10"`
	MaxConnIdleTime time.Duration `env:"MAX_CONN_IDLE_TIME" env-default:"60s"`
	RetryWrites     bool          `env:"RETRY_WRITES" env-default:"true"`
	ConnectAttempts uint          `env:"CONNECT_ATTEMPTS" env-default:"5"`
}

type JWTConfig struct {
	Secret    string        `env:"SECRET" env-required:"true"`
	ExpiresIn time.Duration `env:"EXPIRES_IN" env-default:"168h"`
	Issuer    string        `env:"ISSUER" env-default:"notes-manager"`
}

// AdminConfig holds the bootstrap admin checked in plaintext at admin login.
type AdminConfig struct {
	Email    string `env:"EMAIL"`
	Name     string `env:"NAME" env-default:"Administrator"`
	Password string `env:"PASSWORD"`
}

type RedisConfig struct {
	URL string `env:"URL"`
}

type RateLimitConfig struct {
	Enabled        bool          `env:"ENABLED" env-default:"true"`
	Prefix         string        `env:"PREFIX" env-default:"rl"`
	Capacity       int           `env:"CAPACITY" env-default:"10"`
	RefillTokens   int           `env:"REFILL_TOKENS" env-default:"1"`
	RefillInterval time.Duration `env:"REFILL_INTERVAL" env-default:"6s"`
	TTL            time.Duration `env:"TTL" env-default:"10m"`
}

// MigrationConfig is read by the offline role migration.
type MigrationConfig struct {
	App        AppConfig   `env-prefix:"APP_"`
	Mongo      MongoConfig `env-prefix:"MONGO_"`
	AdminEmail string      `env:"FIX_ROLES_ADMIN_EMAIL" env-default:"admin@notesmanager.com"`
}
