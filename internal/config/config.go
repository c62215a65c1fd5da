package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	JWT struct {
		SecretKey       string `mapstructure:"secret_key"`
		AccessTTLMin    int    `mapstructure:"access_ttl_minutes"`
		RefreshTTLHours int    `mapstructure:"refresh_ttl_hours"`
	} `mapstructure:"jwt"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
	App struct {
		UploadDir string `mapstructure:"upload_dir"`
	} `mapstructure:"app"`
}

// LoadConfig reads configs/config.yaml (or the given path) and environment
// variables prefixed with APP.
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using defaults and environment variables.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.JWT.AccessTTLMin <= 0 {
		cfg.JWT.AccessTTLMin = DefaultAccessTTLMinutes
	}
	if cfg.JWT.RefreshTTLHours <= 0 {
		cfg.JWT.RefreshTTLHours = DefaultRefreshTTLHours
	}
	if cfg.App.UploadDir == "" {
		cfg.App.UploadDir = DefaultUploadDir
	}
	if cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if cfg.JWT.SecretKey == "" {
		log.Println("Warning: JWT secret key is not set in config.")
	}

	return &cfg, nil
}
