package notify

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/iurnickita/iptvshop/internal/model"
)

//go:embed templates
var templatesFS embed.FS

var ErrInconsistentResult = errors.New("provisioning result reports success without credentials")

const (
	SubjectOrder = "Order Confirmation"
	SubjectTrial = "Your IPTV Trial Access"

	apologyText  = "We apologize for the inconvenience, but we have reached our daily limit for IPTV subscriptions. Your access will be sent tomorrow, and you will receive an email once it is available."
	closingOrder = "You will receive a message here in your email and via WhatsApp number to activate your subscription."
	closingTrial = "You will receive a message here in your email and via WhatsApp number to activate your subscription once the trial is available."
)

// Message - готовое письмо клиенту.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// Composer собирает письмо по заказу и итогу выдачи доступа.
// Результат зависит только от аргументов.
type Composer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

type credentials struct {
	URL      string
	Username string
	Password string
}

type view struct {
	Trial        bool
	OrderID      string
	FullName     string
	ProductTitle string
	Total        string
	Currency     string
	Status       string
	Credentials  *credentials
	Apology      bool
	ApologyText  string
	Closing      string
	Year         int
}

func na(s string) string {
	if s == "" {
		return model.NotAvailable
	}
	return s
}

func NewComposer() (*Composer, error) {
	html, err := htmltemplate.New("html").
		Funcs(htmltemplate.FuncMap{"na": na}).
		ParseFS(templatesFS, "templates/message.html")
	if err != nil {
		return nil, fmt.Errorf("parse html template: %w", err)
	}
	text, err := texttemplate.New("text").
		Funcs(texttemplate.FuncMap{"na": na}).
		ParseFS(templatesFS, "templates/message.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text template: %w", err)
	}
	return &Composer{html: html, text: text}, nil
}

func (c *Composer) Compose(flow model.Flow, order model.Order, result model.ProvisioningResult) (Message, error) {
	v := view{
		Trial:        flow == model.FlowTrial,
		OrderID:      order.OrderID,
		FullName:     order.FullName,
		ProductTitle: order.ProductTitle,
		Total:        order.Total,
		Currency:     order.Currency,
		Status:       order.Status,
		Apology:      result.RateLimited(),
		ApologyText:  apologyText,
		Closing:      closingOrder,
		Year:         order.CreatedAt.Year(),
	}
	subject := SubjectOrder
	if v.Trial {
		subject = SubjectTrial
		v.Closing = closingTrial
	}

	if result.Succeeded() {
		if result.URL == "" || result.Username == "" || result.Password == "" {
			return Message{}, ErrInconsistentResult
		}
		v.Credentials = &credentials{
			URL:      result.URL,
			Username: result.Username,
			Password: result.Password,
		}
	}

	var html, text bytes.Buffer
	if err := c.html.ExecuteTemplate(&html, "message.html", v); err != nil {
		return Message{}, fmt.Errorf("render html: %w", err)
	}
	if err := c.text.ExecuteTemplate(&text, "message.txt", v); err != nil {
		return Message{}, fmt.Errorf("render text: %w", err)
	}

	return Message{
		Subject: subject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
