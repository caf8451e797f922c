package config

import "time"

// EventService definition event_service YAML structure
type EventService struct {
	Port       string        `mapstructure:"port"`
	IP         string        `mapstructure:"ip"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`

	PostgreSQL DatabaseConfig `mapstructure:"pg"`
	Mongo      DatabaseConfig `mapstructure:"mongo"`
	Redis      RedisConfig    `mapstructure:"redis"`
	Kafka      KafkaConfig    `mapstructure:"kafka"`
	MinIO      MinIOConfig    `mapstructure:"minio"`

	PasswordResetBaseURL string `mapstructure:"password_reset_base_url"`
}

// Mailer definition mailer_service YAML structure
type Mailer struct {
	Kafka KafkaConfig `mapstructure:"kafka"`
	SMTP  SMTPConfig  `mapstructure:"smtp"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	RedisDB int `mapstructure:"redis_db"`
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

// KafkaConfig definition kafka setting
type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	GroupID       string   `mapstructure:"group_id"`
	RetryInterval int      `mapstructure:"retry_interval"`
	RetryCount    int      `mapstructure:"retry_count"`
}

// MinIOConfig definition minio setting
type MinIOConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Bucket        string `mapstructure:"bucket"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// SMTPConfig definition smtp setting for the mailer worker
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}
