package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iurnickita/iptvshop/internal/model"
)

func TestEventNormalize(t *testing.T) {
	payload := `{"event":"order:paid","data":{
		"id":"X1","product_id":"P1","customer_email":"a@b.com",
		"product_title":"Trial of Service","status":"Pending","currency":"USD",
		"custom_fields":{"Full name":"A B","Country":"US","Whatsapp Number":"+100"}}}`

	order, err := Normalize(model.ShapeEvent, []byte(payload))
	require.NoError(t, err)

	require.Equal(t, model.Order{
		OrderID:       "X1",
		ProductID:     "P1",
		ProductTitle:  "Trial of Service",
		CustomerEmail: "a@b.com",
		FullName:      "A B",
		Country:       "US",
		Whatsapp:      "+100",
		Total:         model.NotAvailable,
		Currency:      "USD",
		Status:        "Pending",
	}, order)
}

func TestEventNormalizeLargeNumericIDs(t *testing.T) {
	payload := `{"data":{"id":9007199254740993,"product_id":12345678901234567,
		"customer_email":"a@b.com","product":{"price":19.90}}}`

	order, err := Normalize(model.ShapeEvent, []byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "9007199254740993", order.OrderID)
	assert.Equal(t, "12345678901234567", order.ProductID)

	// соседние id не должны совпасть после разбора
	next, err := Normalize(model.ShapeEvent, []byte(`{"data":{"id":9007199254740992}}`))
	require.NoError(t, err)
	assert.NotEqual(t, order.OrderID, next.OrderID)

	checkout, err := Normalize(model.ShapeCheckout, []byte(`{"order_id":18446744073709551615,"total":12.5}`))
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615", checkout.OrderID)
	assert.Equal(t, "12.50", checkout.Total)
}

func TestEventNormalizePrice(t *testing.T) {
	tests := []struct {
		name    string
		product string
		want    string
	}{
		{name: "display wins", product: `{"price_display":"19.99","price":1999}`, want: "19.99"},
		{name: "raw only", product: `{"price":12.5}`, want: "12.50"},
		{name: "raw string", product: `{"price":"7"}`, want: "7.00"},
		{name: "empty display", product: `{"price_display":"","price":3}`, want: "3.00"},
		{name: "nothing", product: `{}`, want: model.NotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := `{"data":{"customer_email":"a@b.com","product":` + tt.product + `}}`
			order, err := Normalize(model.ShapeEvent, []byte(payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, order.Total)
		})
	}
}

func TestNormalizeMissingCustomFields(t *testing.T) {
	payloads := map[model.Shape]string{
		model.ShapeEvent:    `{"data":{"id":"1","customer_email":"a@b.com"}}`,
		model.ShapeCheckout: `{"order_id":"1","email":"a@b.com"}`,
		model.ShapeForm:     `{"email":"a@b.com"}`,
	}
	for shape, payload := range payloads {
		t.Run(string(shape), func(t *testing.T) {
			order, err := Normalize(shape, []byte(payload))
			require.NoError(t, err)
			assert.Equal(t, model.NotAvailable, order.FullName)
			assert.Equal(t, model.NotAvailable, order.Country)
			assert.Equal(t, model.NotAvailable, order.Whatsapp)
			assert.Equal(t, "a@b.com", order.CustomerEmail)
		})
	}
}

func TestEventNormalizeLabelMismatch(t *testing.T) {
	// метки вопросов чувствительны к регистру и формулировке
	payload := `{"data":{"customer_email":"a@b.com","custom_fields":{"Full Name":"A B","country":"US"}}}`

	order, err := Normalize(model.ShapeEvent, []byte(payload))
	require.NoError(t, err)
	assert.Equal(t, model.NotAvailable, order.FullName)
	assert.Equal(t, model.NotAvailable, order.Country)
}

func TestCheckoutNormalize(t *testing.T) {
	payload := `{"order_id":"C-9","product_id":"66e46483eebcc","product_name":"1 Month",
		"email":"c@d.org","total":15,"currency":"EUR","payment_type":"PAID",
		"questions":[
			{"question":"Full Name","response":"C D"},
			{"question":"Whatsapp number","response":"+200"},
			{"question":"Country","response":"FR"},
			{"question":"Full Name","response":"ignored"}]}`

	order, err := Normalize(model.ShapeCheckout, []byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "C-9", order.OrderID)
	assert.Equal(t, "1 Month", order.ProductTitle)
	assert.Equal(t, "C D", order.FullName)
	assert.Equal(t, "+200", order.Whatsapp)
	assert.Equal(t, "FR", order.Country)
	assert.Equal(t, "15.00", order.Total)
	assert.Equal(t, model.OrderStatusCompleted, order.Status)
}

func TestCheckoutNormalizeUnpaid(t *testing.T) {
	order, err := Normalize(model.ShapeCheckout, []byte(`{"email":"c@d.org","payment_type":"crypto"}`))
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, model.NotAvailable, order.OrderID)
	assert.Equal(t, model.NotAvailable, order.Total)
}

func TestFormNormalize(t *testing.T) {
	order, err := Normalize(model.ShapeForm, []byte(`{"full_name":"E F","email":"e@f.net","country":"DE"}`))
	require.NoError(t, err)

	assert.Equal(t, "E F", order.FullName)
	assert.Equal(t, "DE", order.Country)
	assert.Equal(t, model.NotAvailable, order.Whatsapp)
	assert.Equal(t, "IPTV Trial", order.ProductTitle)
	assert.Equal(t, "0.00", order.Total)
	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, model.NotAvailable, order.Status)
}

func TestNormalizeMalformed(t *testing.T) {
	for _, payload := range []string{``, `not json`, `[1,2]`, `null`, `"str"`, `{} {}`} {
		for _, shape := range []model.Shape{model.ShapeEvent, model.ShapeCheckout, model.ShapeForm} {
			_, err := Normalize(shape, []byte(payload))
			require.ErrorIs(t, err, ErrMalformedPayload, "shape %s payload %q", shape, payload)
		}
	}
}

func TestNormalizeUnknownShape(t *testing.T) {
	_, err := Normalize(model.Shape("xml"), []byte(`{}`))
	require.ErrorIs(t, err, ErrUnknownShape)
}
