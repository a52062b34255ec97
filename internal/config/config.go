package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/secretChao/ws-chatroom/internal/rooms"
)

type AppConfig struct {
	Env  string `mapstructure:"env"`
	Port int    `mapstructure:"port"`
}

type WSConfig struct {
	PingIntervalSeconds  int   `mapstructure:"ping_interval_seconds"`
	WriteDeadlineSeconds int   `mapstructure:"write_deadline_seconds"`
	ReadTimeoutSeconds   int   `mapstructure:"read_timeout_seconds"`
	MaxMessageSizeBytes  int64 `mapstructure:"max_message_size_bytes"`
	MessageRatePerSec    int   `mapstructure:"message_rate_per_sec"`
	MessageBurst         int   `mapstructure:"message_burst"`
}

type RedisConfig struct {
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	Prefix     string `mapstructure:"prefix"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Config struct {
	App   AppConfig   `mapstructure:"app"`
	WS    WSConfig    `mapstructure:"ws"`
	Rooms []string    `mapstructure:"rooms"`
	Redis RedisConfig `mapstructure:"redis"`
	Kafka KafkaConfig `mapstructure:"kafka"`

	// derived timeouts
	PingInterval  time.Duration
	WriteDeadline time.Duration
	ReadTimeout   time.Duration
	MirrorTTL     time.Duration
}

// Load reads an optional config file and environment overrides, then
// fills defaults and derived durations. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("app.env", "production")
	v.SetDefault("app.port", 8080)
	v.SetDefault("ws.ping_interval_seconds", 30)
	v.SetDefault("ws.write_deadline_seconds", 10)
	v.SetDefault("ws.read_timeout_seconds", 60)
	v.SetDefault("ws.max_message_size_bytes", 64*1024)
	v.SetDefault("ws.message_rate_per_sec", 10)
	v.SetDefault("ws.message_burst", 20)
	v.SetDefault("redis.prefix", "chatroom")
	v.SetDefault("redis.ttl_seconds", 120)
	v.SetDefault("kafka.topic", "chatroom.messages")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if len(c.Rooms) == 0 {
		c.Rooms = rooms.DefaultNames()
	}
	c.PingInterval = time.Duration(c.WS.PingIntervalSeconds) * time.Second
	c.WriteDeadline = time.Duration(c.WS.WriteDeadlineSeconds) * time.Second
	c.ReadTimeout = time.Duration(c.WS.ReadTimeoutSeconds) * time.Second
	c.MirrorTTL = time.Duration(c.Redis.TTLSeconds) * time.Second
	return &c, nil
}
