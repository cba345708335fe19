package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Sheets   SheetsConfig
	Share    ShareConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

// AdminConfig holds the single operator account allowed to trigger
// scrapes, prediction runs and maintenance.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// SheetsConfig maps each game type to its published Google Sheet ID.
// The map is assembled once at load time and treated as immutable.
type SheetsConfig struct {
	ExportURLFormat string
	SheetIDs        map[string]string
}

// ShareConfig carries the AES key used for stats share codes.
type ShareConfig struct {
	Key string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// Published sheet IDs for the five PCSO games. Each can be overridden
// with LOTTO_SHEET_<GAME_TYPE> in the environment.
var defaultSheetIDs = map[string]string{
	"ultra_lotto_6_58": "1gh6yxZuaaCdx1imvJuk0-wXtMic4fcdm",
	"grand_lotto_6_55": "1kuWordaccnhHATdaZr-qRhDPhPzxhcSU",
	"super_lotto_6_49": "1tlAyfbtRTMXVWP-sk6V4jVW1fteZtMmq",
	"mega_lotto_6_45":  "1ydlcaUk_DG3XLPRcHk23tXBWvC83uPxH",
	"lotto_6_42":       "1E7_PnmkJc5wDL8OnEd1aljoUm5iDzEf3",
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	sheetIDs := make(map[string]string, len(defaultSheetIDs))
	for gameType, id := range defaultSheetIDs {
		envKey := "LOTTO_SHEET_" + strings.ToUpper(gameType)
		sheetIDs[gameType] = getEnv(envKey, id)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "LottoLens API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "lotto_lens"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Sheets: SheetsConfig{
			ExportURLFormat: getEnv(
				"SHEET_EXPORT_URL_FORMAT",
				"https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv",
			),
			SheetIDs: sheetIDs,
		},
		Share: ShareConfig{
			Key: getEnv("STATS_SHARE_KEY", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Admin.Email == "" || cfg.Admin.PasswordHash == "" {
		return nil, errors.New("missing admin credentials")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if len(cfg.Share.Key) != 32 {
		return nil, fmt.Errorf("stats share key must be 32 bytes, got %d", len(cfg.Share.Key))
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
