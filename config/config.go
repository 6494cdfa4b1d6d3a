// Ininicializing common application configuration
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Raster RasterConfig `mapstructure:"raster"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	Logger LoggerConfig `mapstructure:"logger"`
}

type ServerConfig struct {
	AppVersion   string        `mapstructure:"app_version"`
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Idle_timeout time.Duration `mapstructure:"idle_timeout"`
	Env          string        `mapstructure:"environment"`
	Mode         string        `mapstructure:"mode"`
}

type RasterConfig struct {
	SpoolDir      string  `mapstructure:"spool_dir"`
	MaxUploadMB   int64   `mapstructure:"max_upload_mb"`
	MaxAdjustment float64 `mapstructure:"max_adjustment"`
	PreviewMaxDim int     `mapstructure:"preview_max_dim"`
	DefaultFormat string  `mapstructure:"default_format"`
}

type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	GroupID      string        `mapstructure:"group_id"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	setDefaults(viperInstance)

	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	err := viperInstance.ReadInConfig()

	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// setDefaults lets the service start without a config file
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.app_version", "1.0.0")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("raster.spool_dir", "")
	v.SetDefault("raster.max_upload_mb", 256)
	v.SetDefault("raster.max_adjustment", 2.0) // upper end of the brightness/contrast sliders
	v.SetDefault("raster.preview_max_dim", 1024)
	v.SetDefault("raster.default_format", "json")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{GetEnv("KAFKA_BROKERS", "localhost:9094")})
	v.SetDefault("kafka.topic", "raster-events")
	v.SetDefault("kafka.group_id", "georaster-audit")
	v.SetDefault("kafka.write_timeout", 10*time.Second)

	v.SetDefault("logger.level", "info")
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
