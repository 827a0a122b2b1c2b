package config

import "time"

type Config struct {
	// Предел на выдачу доступа и отправку письма после записи заказа.
	FulfillTimeout time.Duration
}
