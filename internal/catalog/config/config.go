package config

type Config struct {
	// Путь к YAML-файлу каталога. Пусто - встроенный каталог.
	File string
}
