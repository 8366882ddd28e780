package config

// Config 配置主体
type Config struct {
	Server            ServerConfig      `mapstructure:"server"`
	DB                DBConfig          `mapstructure:"database"`
	Redis             RedisConfig       `mapstructure:"redis"`
	Logstash          LogstashConfig    `mapstructure:"logstash"`
	Feed              FeedConfig        `mapstructure:"feed"`
	Kafka             KafkaConfig       `mapstructure:"kafka"`
	KafkaViewConsumer KafkaViewConsumer `mapstructure:"kafka_view_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 日志上报配置，Address 为空则仅输出到 stdout
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
}

// FeedConfig 信息流配置
type FeedConfig struct {
	DefaultPageSize    int     `mapstructure:"default_page_size"`
	MaxPageSize        int     `mapstructure:"max_page_size"`
	OwnContentRatio    float64 `mapstructure:"own_content_ratio"`
	TrendingHours      int     `mapstructure:"trending_hours"`
	PopularWindowHours int     `mapstructure:"popular_window_hours"`
	TrendingCacheTTL   int     `mapstructure:"trending_cache_ttl"` // 秒
}

func (c *FeedConfig) applyDefaults() {
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = 20
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 100
	}
	if c.OwnContentRatio <= 0 {
		c.OwnContentRatio = 0.3
	}
	if c.TrendingHours <= 0 {
		c.TrendingHours = 24
	}
	if c.PopularWindowHours <= 0 {
		c.PopularWindowHours = 168
	}
	if c.TrendingCacheTTL <= 0 {
		c.TrendingCacheTTL = 300
	}
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaViewConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
