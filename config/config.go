package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	RedisURL      string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	JWTExpireHrs  int // session token lifetime (hours)

	AvatarBaseURL string // random avatars are picked as <base>/<1..100>.png

	Chat struct {
		BaseURL   string // chat provider REST endpoint
		APIKey    string
		APISecret string
		TokenTTL  int // chat token lifetime (seconds), also the cache TTL
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	jwtExpire, _ := strconv.Atoi(getEnv("JWT_EXPIRE_HOURS", "168"))
	chatTokenTTL, _ := strconv.Atoi(getEnv("CHAT_TOKEN_TTL", "3600"))

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpireHrs:  jwtExpire,
		AvatarBaseURL: getEnv("AVATAR_BASE_URL", "https://avatar.iran.liara.run/public"),
	}

	cfg.Chat.BaseURL = getEnv("CHAT_API_BASE_URL", "https://chat.stream-io-api.com")
	cfg.Chat.APIKey = os.Getenv("CHAT_API_KEY")
	cfg.Chat.APISecret = os.Getenv("CHAT_API_SECRET")
	cfg.Chat.TokenTTL = chatTokenTTL

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
