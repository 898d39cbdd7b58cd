package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Sync     SyncConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name              string
	Port              string
	Debug             bool
	LogPath           string
	Timezone          string
	PosterPlaceholder string
}

// StorageConfig selects the key-value substrate: file, postgres, redis or memory.
type StorageConfig struct {
	Driver string
	Path   string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type SyncConfig struct {
	Enabled  bool
	BaseURL  string
	Login    string
	Password string
	Interval time.Duration

	// PushOnChange pushes a pass as soon as the catalog changes, on top of the interval.
	PushOnChange bool
}

type AdminConfig struct {
	PasswordHash string
}

// LoadConfig reads path (an .env file) and the environment. A missing file is
// not an error; every key has a default or may come from the environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "cinema-boxoffice")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("POSTER_PLACEHOLDER", "images/posters/default.jpg")
	v.SetDefault("STORAGE_DRIVER", "file")
	v.SetDefault("STORAGE_PATH", "data/")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PREFIX", "boxoffice:")
	v.SetDefault("SYNC_ENABLED", false)
	v.SetDefault("SYNC_BASE_URL", "https://shfe-diplom.neto-server.ru")
	v.SetDefault("SYNC_LOGIN", "admin")
	v.SetDefault("SYNC_PASSWORD", "admin")
	v.SetDefault("SYNC_INTERVAL", "5m")
	v.SetDefault("SYNC_PUSH_ON_CHANGE", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:              v.GetString("APP_NAME"),
			Port:              v.GetString("PORT"),
			Debug:             v.GetBool("DEBUG"),
			LogPath:           v.GetString("LOG_PATH"),
			Timezone:          v.GetString("TIMEZONE"),
			PosterPlaceholder: v.GetString("POSTER_PLACEHOLDER"),
		},
		Storage: StorageConfig{
			Driver: v.GetString("STORAGE_DRIVER"),
			Path:   v.GetString("STORAGE_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			Prefix:   v.GetString("REDIS_PREFIX"),
		},
		Sync: SyncConfig{
			Enabled:      v.GetBool("SYNC_ENABLED"),
			BaseURL:      v.GetString("SYNC_BASE_URL"),
			Login:        v.GetString("SYNC_LOGIN"),
			Password:     v.GetString("SYNC_PASSWORD"),
			Interval:     v.GetDuration("SYNC_INTERVAL"),
			PushOnChange: v.GetBool("SYNC_PUSH_ON_CHANGE"),
		},
		Admin: AdminConfig{
			PasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		},
	}

	return config, nil
}

// Location resolves the configured timezone, falling back to time.Local.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
