package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	ebayClientID, err := requiredString("EBAY_CLIENT_ID")
	if err != nil {
		return nil, err
	}
	ebayClientSecret, err := requiredString("EBAY_CLIENT_SECRET")
	if err != nil {
		return nil, err
	}
	shopDomain, err := requiredString("SHOPIFY_SHOP_DOMAIN")
	if err != nil {
		return nil, err
	}
	shopToken, err := requiredString("SHOPIFY_ACCESS_TOKEN")
	if err != nil {
		return nil, err
	}
	port, err := intWithDefault("PORT", 8080)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port: port,
		},
		Ebay: EbayConfig{
			ClientID:     ebayClientID,
			ClientSecret: ebayClientSecret,
			BaseUrl:      stringWithDefault("EBAY_BASE_URL", "https://api.ebay.com"),
			TokenUrl:     stringWithDefault("EBAY_TOKEN_URL", "https://api.ebay.com/identity/v1/oauth2/token"),
			Scope:        stringWithDefault("EBAY_SCOPE", "https://api.ebay.com/oauth/api_scope"),
			Marketplace:  stringWithDefault("EBAY_MARKETPLACE", "EBAY_US"),
			Timeout:      durationWithDefault("EBAY_TIMEOUT", 30*time.Second),
		},
		Shopify: ShopifyConfig{
			ShopDomain: shopDomain,
			Token:      shopToken,
			APIVer:     stringWithDefault("SHOPIFY_API_VERSION", "2024-07"),
			Timeout:    durationWithDefault("SHOPIFY_TIMEOUT", 30*time.Second),
		},
		TelegramBot: TelegramBotConfig{
			ChatId: stringWithDefault("TELEGRAM_CHAT_ID", ""),
			Token:  stringWithDefault("TELEGRAM_BOT_TOKEN", ""),
		},
	}, nil
}

func requiredString(key string) (string, error) {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return "", fmt.Errorf("missing required env var: %s", key)
	}
	return variable, nil
}

func stringWithDefault(key, def string) string {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def
	}
	return variable
}

func intWithDefault(key string, def int) (int, error) {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def, nil
	}
	number, err := strconv.Atoi(variable)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %w", key, err)
	}
	return number, nil
}

func durationWithDefault(key string, def time.Duration) time.Duration {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def
	}
	d, err := time.ParseDuration(variable)
	if err != nil {
		return def
	}
	return d
}
