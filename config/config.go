package config

import (
	"os"
	"strconv"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	Calendar CalendarConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type ServerConfig struct {
	Address string
}

type CalendarConfig struct {
	// WeekStart is the weekday the calendar grid begins on ("Monday",
	// "Sunday", ...).
	WeekStart string
	// ArchiveBase is the URL prefix used for archive and day links.
	ArchiveBase string
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Server:   GetServerConfig(),
		Calendar: GetCalendarConfig(),
	}

	return AppConfig
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Address: getEnv("SERVER_ADDRESS", ":8080"),
	}
}

func GetCalendarConfig() CalendarConfig {
	return CalendarConfig{
		WeekStart:   getEnv("CAL_WEEK_START", "Monday"),
		ArchiveBase: getEnv("CAL_ARCHIVE_BASE", "/events"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
