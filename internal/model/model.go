package model

import "time"

// NotAvailable заменяет любое поле, которое провайдер не прислал.
const NotAvailable = "N/A"

// Flow - сценарий выполнения заказа.
type Flow string

const (
	FlowOrder Flow = "order"
	FlowTrial Flow = "trial"
)

// Shape - формат входящего уведомления платёжного провайдера.
type Shape string

const (
	ShapeEvent    Shape = "event"
	ShapeCheckout Shape = "checkout"
	ShapeForm     Shape = "form"
)

// Заказы

// Каноничный заказ, не зависящий от провайдера.
// Собирается нормализатором один раз и после записи в БД не меняется.
type Order struct {
	Reference     string
	OrderID       string
	ProductID     string
	ProductTitle  string
	CustomerEmail string
	FullName      string
	Country       string
	Whatsapp      string
	Total         string
	Currency      string
	Status        string
	CreatedAt     time.Time
}

const (
	OrderStatusCompleted = "Completed"
	OrderStatusPending   = "Pending"
)

// Запись о пробном доступе. Email уникален.
type TrialRecord struct {
	Reference string
	FullName  string
	Email     string
	Country   string
	Whatsapp  string
	Status    string
	Timestamp time.Time
}

// Статус каждой записанной заявки на пробный доступ, как в журнале магазина.
const TrialStatusSent = "Test Sent"

// TrialRecordFromOrder вырезает запись пробного доступа из заказа.
// Статус формы в журнал не попадает.
func TrialRecordFromOrder(order Order) TrialRecord {
	return TrialRecord{
		Reference: order.Reference,
		FullName:  order.FullName,
		Email:     order.CustomerEmail,
		Country:   order.Country,
		Whatsapp:  order.Whatsapp,
		Status:    TrialStatusSent,
		Timestamp: order.CreatedAt,
	}
}

// Выдача доступа

// Итог запроса учётных данных.
type ProvisioningOutcome string

const (
	ProvisioningSucceeded    ProvisioningOutcome = "succeeded"
	ProvisioningFailed       ProvisioningOutcome = "failed"
	ProvisioningNetworkError ProvisioningOutcome = "network_error"
	ProvisioningRateLimited  ProvisioningOutcome = "rate_limited"
	ProvisioningUnknown      ProvisioningOutcome = "unknown"
	ProvisioningSkipped      ProvisioningOutcome = "skipped"
)

// Результат выдачи доступа. В БД не сохраняется.
type ProvisioningResult struct {
	Outcome      ProvisioningOutcome
	URL          string
	Username     string
	Password     string
	ErrorMessage string
}

func (r ProvisioningResult) Succeeded() bool {
	return r.Outcome == ProvisioningSucceeded
}

func (r ProvisioningResult) RateLimited() bool {
	return r.Outcome == ProvisioningRateLimited
}
