package config

import "time"

type Config struct {
	BaseURL    string
	APIKey     string
	TemplateID string
	Timeout    time.Duration
}
