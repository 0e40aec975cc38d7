package config

import "time"

// Realtime definition realtime_service YAML structure
type Realtime struct {
	Port string `mapstructure:"port"`

	MongoSQL DatabaseConfig `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`

	Presence PresenceConfig `mapstructure:"presence"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	URL     string `mapstructure:"url"`
	RedisDB int    `mapstructure:"redis_db"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// PresenceConfig presence TTL windows
type PresenceConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// CacheConfig cache TTLs per resource type
type CacheConfig struct {
	PostTTL time.Duration `mapstructure:"post_ttl"`
	ListTTL time.Duration `mapstructure:"list_ttl"`
}
