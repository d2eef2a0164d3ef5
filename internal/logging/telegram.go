package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"listing-importer/internal/config"
)

type telegramNotifier struct {
	creds config.TelegramBotConfig
}

type telegramRequest struct {
	ChatId string `json:"chat_id"`
	Text   string `json:"text"`
}

const (
	iconInfo    = "ℹ️"
	iconError   = "❌"
	iconWarning = "⚠️"
	iconSuccess = "✅"
)

func newTelegramNotifier(cfg config.TelegramBotConfig) *telegramNotifier {
	return &telegramNotifier{creds: cfg}
}

func (t *telegramNotifier) send(level, value string) error {
	icon := iconInfo
	switch level {
	case "ERROR":
		icon = iconError
	case "WARNING":
		icon = iconWarning
	case "SUCCESS":
		icon = iconSuccess
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.creds.Token)

	reqBody := telegramRequest{
		ChatId: t.creds.ChatId,
		Text:   fmt.Sprintf("%s %s: %s", icon, level, value),
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram send failed: %s", resp.Status)
	}
	return nil
}
