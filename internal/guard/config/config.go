package config

import "time"

type Config struct {
	// Адрес redis. Пусто - быстрая проверка отключена.
	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}
