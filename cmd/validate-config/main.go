package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/drink-helper/internal/config"
)

func main() {
	fmt.Println("🔍 Checking configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Details:\n")
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	fmt.Printf("  - Gemini API Key: %s (model %s)\n", maskToken(cfg.AI.GeminiAPIKey), cfg.AI.GeminiModel)
	fmt.Printf("  - OpenAI API Key: %s (model %s)\n", maskToken(cfg.AI.OpenAIAPIKey), cfg.AI.OpenAIModel)
	fmt.Printf("  - DB: %s@%s:%s/%s\n", cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.DBName)
	if cfg.Redis.Enabled() {
		fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	} else {
		fmt.Printf("  - Redis: %s\n", notSet)
	}
	if cfg.HTTP.Addr != "" {
		fmt.Printf("  - HTTP API: %s (JWT secret %s, token TTL %s, sign-in secret %s)\n",
			cfg.HTTP.Addr, maskToken(cfg.HTTP.JWTSecret), cfg.HTTP.TokenTTL, maskToken(cfg.HTTP.SignInSecret))
	} else {
		fmt.Printf("  - HTTP API: %s\n", notSet)
	}
	fmt.Printf("  - Cache TTL: %s\n", cfg.CacheTTL)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

const notSet = "<not set>"

func maskToken(token string) string {
	if token == "" {
		return notSet
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
