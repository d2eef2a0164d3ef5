package logging

import (
	"fmt"
	"log"
	"strings"

	"listing-importer/internal/config"
)

type LoggerService interface {
	Log(value string)
	LogError(value string, err error)
	LogWarning(value string)
	LogSuccess(value string)
}

type Logger struct {
	telegram *telegramNotifier
}

func NewLogger(cfg config.TelegramBotConfig) LoggerService {
	l := &Logger{}
	if cfg.ChatId != "" && cfg.Token != "" {
		l.telegram = newTelegramNotifier(cfg)
	} else {
		log.Println("[WARNING]: telegram credentials missing, logging to stdout only")
	}
	return l
}

func (l *Logger) Log(value string) {
	l.emit("INFO", value)
}

func (l *Logger) LogError(value string, err error) {
	if err != nil {
		value = fmt.Sprintf("%s: %v", value, err)
	}
	l.emit("ERROR", value)
}

func (l *Logger) LogWarning(value string) {
	l.emit("WARNING", value)
}

func (l *Logger) LogSuccess(value string) {
	l.emit("SUCCESS", value)
}

func (l *Logger) emit(level, value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		v = "-"
	}
	log.Printf("[%s]: %s", level, v)
	if l.telegram != nil {
		_ = l.telegram.send(level, v)
	}
}
