package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iurnickita/iptvshop/internal/catalog/config"
	"github.com/iurnickita/iptvshop/internal/model"
)

// Catalog сопоставляет ключ товара провайдера (id, название плана)
// с внутренним пакетом. Заполняется при запуске, дальше только читается.
type Catalog struct {
	packages     map[string]string
	trialPackage string
}

type file struct {
	Catalog struct {
		TrialPackage string            `yaml:"trial_package"`
		Packages     map[string]string `yaml:"packages"`
	} `yaml:"catalog"`
}

// Встроенные данные магазина
var (
	defaultPackages = map[string]string{
		"66e46483eebcc": "10",
		"66e47140ad5c9": "111",
		"66e471a757f8e": "110",
		"66e471abeb826": "109",
		"66f58bba87f0e": "152",
		"66f58bf04c959": "151",
		"66f58c0c554dc": "150",
		"66f58c0f51ad4": "149",
		"66fac7c03b374": "143",

		"Trial of Service": "123",
	}
	defaultTrialPackage = "123"
)

func New(packages map[string]string, trialPackage string) *Catalog {
	c := &Catalog{
		packages:     make(map[string]string, len(packages)),
		trialPackage: trialPackage,
	}
	for key, pkg := range packages {
		c.packages[key] = pkg
	}
	return c
}

func Default() *Catalog {
	return New(defaultPackages, defaultTrialPackage)
}

// Load читает каталог из файла, если он задан.
func Load(cfg config.Config) (*Catalog, error) {
	if cfg.File == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Catalog.Packages) == 0 && f.Catalog.TrialPackage == "" {
		return nil, fmt.Errorf("parse catalog: no packages defined")
	}
	return New(f.Catalog.Packages, f.Catalog.TrialPackage), nil
}

// Lookup ищет пакет по ключам в порядке их передачи.
// Промах - не ошибка: пакет просто не выдаётся.
func (c *Catalog) Lookup(keys ...string) (string, bool) {
	for _, key := range keys {
		if key == "" || key == model.NotAvailable {
			continue
		}
		if pkg, ok := c.packages[key]; ok {
			return pkg, true
		}
	}
	return "", false
}

// PackageFor выбирает пакет для заказа: id товара, затем название.
// Для пробного доступа при промахе берётся пробный пакет.
func (c *Catalog) PackageFor(flow model.Flow, order model.Order) (string, bool) {
	if pkg, ok := c.Lookup(order.ProductID, order.ProductTitle); ok {
		return pkg, true
	}
	if flow == model.FlowTrial && c.trialPackage != "" {
		return c.trialPackage, true
	}
	return "", false
}

func (c *Catalog) Len() int {
	return len(c.packages)
}
