package config

import "time"

type Config struct {
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	From     string
	FromName string
	Timeout  time.Duration
}
