package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/iurnickita/iptvshop/internal/notify/config"
)

const (
	defaultSMTPPort = 587
	defaultTimeout  = 20 * time.Second
)

// Sender доставляет письмо. Отчёта о доставке нет.
//
//go:generate mockgen -destination=../mocks/sender.go -package=mocks . Sender
type Sender interface {
	Send(ctx context.Context, to string, msg Message) error
}

// mailer не держит соединение: каждое письмо идёт через свой клиент,
// иначе параллельные вебхуки закрывают друг другу SMTP-сессию.
type mailer struct {
	cfg  config.Config
	opts []mail.Option
}

// NewMailer - отправка через SMTP с авторизацией и STARTTLS.
func NewMailer(cfg config.Config) (Sender, error) {
	return newMailer(cfg)
}

// newMailer принимает дополнительные опции клиента; они применяются последними.
func newMailer(cfg config.Config, extra ...mail.Option) (*mailer, error) {
	port := cfg.SMTPPort
	if port == 0 {
		port = defaultSMTPPort
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(timeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password))
	}
	opts = append(opts, extra...)

	// проверяем настройки сразу, а не на первом письме
	if _, err := mail.NewClient(cfg.SMTPHost, opts...); err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &mailer{cfg: cfg, opts: opts}, nil
}

func (m *mailer) Send(ctx context.Context, to string, msg Message) error {
	em, err := m.message(to, msg)
	if err != nil {
		return err
	}
	client, err := mail.NewClient(m.cfg.SMTPHost, m.opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, em); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (m *mailer) message(to string, msg Message) (*mail.Msg, error) {
	em := mail.NewMsg()

	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}
	if m.cfg.FromName != "" {
		if err := em.FromFormat(m.cfg.FromName, from); err != nil {
			return nil, fmt.Errorf("mail from: %w", err)
		}
	} else if err := em.From(from); err != nil {
		return nil, fmt.Errorf("mail from: %w", err)
	}
	if err := em.To(to); err != nil {
		return nil, fmt.Errorf("mail to: %w", err)
	}
	em.Subject(msg.Subject)

	switch {
	case msg.HTML != "" && msg.Text != "":
		em.SetBodyString(mail.TypeTextPlain, msg.Text)
		em.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	case msg.HTML != "":
		em.SetBodyString(mail.TypeTextHTML, msg.HTML)
	default:
		em.SetBodyString(mail.TypeTextPlain, msg.Text)
	}
	return em, nil
}
