package normalizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iurnickita/iptvshop/internal/model"
)

var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrUnknownShape     = errors.New("unknown payload shape")
)

// Normalizer приводит тело уведомления провайдера к каноничному заказу.
// Ошибка возможна только если тело не разбирается как JSON-объект.
type Normalizer interface {
	Normalize(payload []byte) (model.Order, error)
}

// For возвращает нормализатор для формата, заданного маршрутом.
func For(shape model.Shape) (Normalizer, error) {
	switch shape {
	case model.ShapeEvent:
		return eventNormalizer{}, nil
	case model.ShapeCheckout:
		return checkoutNormalizer{}, nil
	case model.ShapeForm:
		return formNormalizer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}
}

// Normalize - сокращение для For(shape).Normalize(payload).
func Normalize(shape model.Shape, payload []byte) (model.Order, error) {
	n, err := For(shape)
	if err != nil {
		return model.Order{}, err
	}
	return n.Normalize(payload)
}

type object map[string]any

// parseObject сохраняет числа как json.Number: id провайдера бывают длиннее 2^53.
func parseObject(payload []byte) (object, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var obj object
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after object", ErrMalformedPayload)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: not an object", ErrMalformedPayload)
	}
	return obj, nil
}

// child возвращает вложенный объект или пустой, если его нет.
func (o object) child(key string) object {
	if v, ok := o[key].(map[string]any); ok {
		return v
	}
	return object{}
}

// str возвращает значение поля строкой; пустое и отсутствующее дают "".
func (o object) str(key string) string {
	return scalar(o[key])
}

func (o object) strOr(key, fallback string) string {
	if s := o.str(key); s != "" {
		return s
	}
	return fallback
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		if d, err := decimal.NewFromString(t.String()); err == nil {
			return d.String()
		}
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func orNA(s string) string {
	if s == "" {
		return model.NotAvailable
	}
	return s
}

// price выбирает отображаемую цену, если она есть, иначе числовую.
func price(display, raw any) string {
	if s := scalar(display); s != "" {
		return s
	}
	if s := scalar(raw); s != "" {
		if d, err := decimal.NewFromString(s); err == nil {
			return d.StringFixed(2)
		}
		return s
	}
	return model.NotAvailable
}
