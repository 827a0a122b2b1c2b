package normalizer

import (
	"strings"

	"github.com/iurnickita/iptvshop/internal/model"
)

// Вопросы формы в плоском формате оформления заказа. Сравнение точное.
const (
	checkoutQuestionFullName = "Full Name"
	checkoutQuestionCountry  = "Country"
	checkoutQuestionWhatsapp = "Whatsapp number"

	paymentTypePaid = "paid"
)

// checkoutNormalizer разбирает плоские уведомления с массивом вопросов.
type checkoutNormalizer struct{}

func (checkoutNormalizer) Normalize(payload []byte) (model.Order, error) {
	obj, err := parseObject(payload)
	if err != nil {
		return model.Order{}, err
	}

	answers := questions(obj["questions"])

	status := model.OrderStatusPending
	if strings.EqualFold(obj.str("payment_type"), paymentTypePaid) {
		status = model.OrderStatusCompleted
	}

	return model.Order{
		OrderID:       orNA(obj.str("order_id")),
		ProductID:     orNA(obj.str("product_id")),
		ProductTitle:  orNA(obj.str("product_name")),
		CustomerEmail: obj.str("email"),
		FullName:      orNA(answers.str(checkoutQuestionFullName)),
		Country:       orNA(answers.str(checkoutQuestionCountry)),
		Whatsapp:      orNA(answers.str(checkoutQuestionWhatsapp)),
		Total:         price(obj["total_display"], obj["total"]),
		Currency:      orNA(obj.str("currency")),
		Status:        status,
	}, nil
}

// questions сворачивает [{question, response}] в объект. При повторе
// вопроса побеждает первый ответ.
func questions(v any) object {
	answers := object{}
	items, ok := v.([]any)
	if !ok {
		return answers
	}
	for _, item := range items {
		pair, ok := item.(map[string]any)
		if !ok {
			continue
		}
		q, ok := pair["question"].(string)
		if !ok {
			continue
		}
		if _, seen := answers[q]; !seen {
			answers[q] = pair["response"]
		}
	}
	return answers
}
