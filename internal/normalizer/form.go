package normalizer

import "github.com/iurnickita/iptvshop/internal/model"

const (
	formProductTitle = "IPTV Trial"
	formTotal        = "0.00"
	formCurrency     = "USD"
)

// formNormalizer разбирает плоскую форму заявки на пробный доступ.
type formNormalizer struct{}

func (formNormalizer) Normalize(payload []byte) (model.Order, error) {
	obj, err := parseObject(payload)
	if err != nil {
		return model.Order{}, err
	}

	return model.Order{
		OrderID:       model.NotAvailable,
		ProductID:     model.NotAvailable,
		ProductTitle:  obj.strOr("product_title", formProductTitle),
		CustomerEmail: obj.str("email"),
		FullName:      orNA(obj.str("full_name")),
		Country:       orNA(obj.str("country")),
		Whatsapp:      orNA(obj.str("whatsapp")),
		Total:         formTotal,
		Currency:      formCurrency,
		Status:        orNA(obj.str("status")),
	}, nil
}
