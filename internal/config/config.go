package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

// Config 应用全局配置
// 优先级：环境变量 (STOREFRONT_ 前缀) > config.yaml > 默认值
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Database DatabaseConfig `mapstructure:"database"`
	Cart     CartConfig     `mapstructure:"cart"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr             string        `mapstructure:"addr"`
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	CheckoutCooldown time.Duration `mapstructure:"checkout_cooldown"`
}

// CatalogConfig 外部商品目录配置
type CatalogConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
	// 快照同步任务
	SyncEnabled bool   `mapstructure:"sync_enabled"`
	SyncSpec    string `mapstructure:"sync_spec"` // cron 表达式 (带秒)
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// CartConfig 购物车存储配置
// Backend: db (默认, 走 GORM 键值表) 或 redis
type CartConfig struct {
	Backend   string `mapstructure:"backend"`
	RedisAddr string `mapstructure:"redis_addr"`
}

// ThemeConfig 主题配置
type ThemeConfig struct {
	Mode string `mapstructure:"mode"` // light / dark
}

// LogConfig 日志配置
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// ==================== 加载逻辑 ====================

// Load 加载配置
// path 为空时只读默认值 + 环境变量，保证零配置也能跑起来
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// 环境变量覆盖: STOREFRONT_SERVER_ADDR 等
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		// 找不到配置文件不算错误，全部走默认值
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
			log.Println("未找到配置文件，使用默认配置")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults 注册默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.checkout_cooldown", 2*time.Second)

	v.SetDefault("catalog.base_url", "https://dummyjson.com")
	v.SetDefault("catalog.timeout", 10*time.Second)
	v.SetDefault("catalog.retry_count", 2)
	v.SetDefault("catalog.cache_ttl", 5*time.Minute)
	v.SetDefault("catalog.sync_enabled", true)
	// 每 30 分钟同步一次快照
	v.SetDefault("catalog.sync_spec", "0 */30 * * * *")

	v.SetDefault("database.dsn", "host=localhost user=storefront password=storefront dbname=storefront port=5432 sslmode=disable")

	v.SetDefault("cart.backend", "db")
	v.SetDefault("cart.redis_addr", "localhost:6379")

	v.SetDefault("theme.mode", "light")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}
