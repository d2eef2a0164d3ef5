package config

import "time"

type Config struct {
	Server      ServerConfig
	Ebay        EbayConfig
	Shopify     ShopifyConfig
	TelegramBot TelegramBotConfig
}

type ServerConfig struct {
	Port int
}

type EbayConfig struct {
	ClientID     string
	ClientSecret string
	BaseUrl      string
	TokenUrl     string
	Scope        string
	Marketplace  string
	Timeout      time.Duration
}

type ShopifyConfig struct {
	ShopDomain string
	Token      string
	APIVer     string
	Timeout    time.Duration
}

type TelegramBotConfig struct {
	ChatId string
	Token  string
}
