package normalizer

import "github.com/iurnickita/iptvshop/internal/model"

// Вопросы формы в событийном формате. Сравнение точное.
const (
	eventQuestionFullName = "Full name"
	eventQuestionCountry  = "Country"
	eventQuestionWhatsapp = "Whatsapp Number"
)

// eventNormalizer разбирает уведомления вида {"event": ..., "data": {...}}.
type eventNormalizer struct{}

func (eventNormalizer) Normalize(payload []byte) (model.Order, error) {
	obj, err := parseObject(payload)
	if err != nil {
		return model.Order{}, err
	}

	data := obj.child("data")
	fields := data.child("custom_fields")

	total := model.NotAvailable
	if product, ok := data["product"].(map[string]any); ok {
		total = price(product["price_display"], product["price"])
	}

	return model.Order{
		OrderID:       orNA(data.str("id")),
		ProductID:     orNA(data.str("product_id")),
		ProductTitle:  orNA(data.str("product_title")),
		CustomerEmail: data.str("customer_email"),
		FullName:      orNA(fields.str(eventQuestionFullName)),
		Country:       orNA(fields.str(eventQuestionCountry)),
		Whatsapp:      orNA(fields.str(eventQuestionWhatsapp)),
		Total:         total,
		Currency:      orNA(data.str("currency")),
		Status:        orNA(data.str("status")),
	}, nil
}
