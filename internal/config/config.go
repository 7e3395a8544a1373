package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database Database `yaml:"database"`
	Log      Log      `yaml:"log"`
	Outbox   Outbox   `yaml:"outbox"`
	History  History  `yaml:"history"`
	Kafka    Kafka    `yaml:"kafka"`
	Redis    Redis    `yaml:"redis"`
	Mongo    Mongo    `yaml:"mongo"`
}

// Database holds PostgreSQL connection settings.
type Database struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Log holds logging settings.
type Log struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Outbox holds dispatcher and retention settings for the outbox table.
type Outbox struct {
	BatchSize              int           `yaml:"batch_size"               env:"OUTBOX_BATCH_SIZE"               env-default:"50"`
	MaxRetries             int           `yaml:"max_retries"              env:"OUTBOX_MAX_RETRIES"              env-default:"5"`
	BackoffBase            time.Duration `yaml:"backoff_base"             env:"OUTBOX_BACKOFF_BASE"             env-default:"2m"`
	DispatchInterval       time.Duration `yaml:"dispatch_interval"        env:"OUTBOX_DISPATCH_INTERVAL"        env-default:"10s"`
	ProcessedRetentionDays int           `yaml:"processed_retention_days" env:"OUTBOX_PROCESSED_RETENTION_DAYS" env-default:"7"`
	SweepInterval          time.Duration `yaml:"sweep_interval"           env:"OUTBOX_SWEEP_INTERVAL"           env-default:"1h"`
}

// History holds retention settings for the history table.
type History struct {
	RetentionDays int `yaml:"retention_days" env:"HISTORY_RETENTION_DAYS" env-default:"365"`
}

// Kafka holds message transport settings. Topics maps event types to
// topic names; unmapped types go to DefaultTopic.
type Kafka struct {
	Brokers      string            `yaml:"brokers"       env:"KAFKA_BROKERS"       env-default:"localhost:9092"`
	DefaultTopic string            `yaml:"default_topic" env:"KAFKA_DEFAULT_TOPIC" env-default:"contacts.events"`
	Topics       map[string]string `yaml:"topics"        env:"-"`
	WriteTimeout time.Duration     `yaml:"write_timeout" env:"KAFKA_WRITE_TIMEOUT" env-default:"10s"`
}

// BrokerList splits the comma-separated broker string.
func (k Kafka) BrokerList() []string {
	return splitAndTrim(k.Brokers)
}

// Redis holds distributed cache settings.
type Redis struct {
	Addr     string        `yaml:"addr"      env:"REDIS_ADDR"      env-default:"localhost:6379"`
	Password string        `yaml:"password"  env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db"        env:"REDIS_DB"        env-default:"0"`
	TTL      time.Duration `yaml:"ttl"       env:"REDIS_TTL"       env-default:"10m"`
}

// Mongo holds compliance audit log store settings.
type Mongo struct {
	URI        string `yaml:"uri"        env:"MONGO_URI"        env-default:"mongodb://localhost:27017"`
	Database   string `yaml:"database"   env:"MONGO_DATABASE"   env-default:"contacts_audit"`
	Collection string `yaml:"collection" env:"MONGO_COLLECTION" env-default:"compliance_log"`
}
