package config

type Config struct {
	ServerAddr    string
	WebhookSecret string
}
