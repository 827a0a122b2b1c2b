package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iurnickita/iptvshop/internal/guard"
	"github.com/iurnickita/iptvshop/internal/model"
	"github.com/iurnickita/iptvshop/internal/normalizer"
	"github.com/iurnickita/iptvshop/internal/notify"
	"github.com/iurnickita/iptvshop/internal/service/config"
	"github.com/iurnickita/iptvshop/internal/service/provisioner"
	"github.com/iurnickita/iptvshop/internal/store"
)

// Service проводит уведомление провайдера через весь конвейер:
// разбор, проверка повтора, запись, выдача доступа, письмо.
type Service interface {
	Fulfill(ctx context.Context, req Request) (Outcome, error)
}

// Ошибки, которые видит вызывающий. Остальные сбои только ухудшают результат.
var (
	ErrUnsupported      = errors.New("unsupported flow or payload shape")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrValidation       = errors.New("validation failure")
	ErrDuplicateRequest = errors.New("duplicate request")
	ErrPersistence      = errors.New("persistence failure")
)

type Catalog interface {
	PackageFor(flow model.Flow, order model.Order) (string, bool)
}

type Composer interface {
	Compose(flow model.Flow, order model.Order, result model.ProvisioningResult) (notify.Message, error)
}

type Request struct {
	Flow    model.Flow
	Shape   model.Shape
	Payload []byte
}

type State string

const (
	StateDone         State = "done"
	StateDoneDegraded State = "done_degraded"
)

type Outcome struct {
	Reference    string
	Flow         model.Flow
	State        State
	Order        model.Order
	Provisioning model.ProvisioningResult
	Notified     bool
}

func (o Outcome) Degraded() bool {
	return o.State == StateDoneDegraded
}

const defaultFulfillTimeout = time.Minute

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type service struct {
	cfg         config.Config
	store       store.Store
	guard       guard.Guard
	catalog     Catalog
	provisioner provisioner.Client
	composer    Composer
	sender      notify.Sender
	zaplog      *zap.Logger
	now         func() time.Time
}

func NewService(cfg config.Config,
	store store.Store,
	guard guard.Guard,
	catalog Catalog,
	provisioner provisioner.Client,
	composer Composer,
	sender notify.Sender,
	zaplog *zap.Logger) Service {

	if cfg.FulfillTimeout <= 0 {
		cfg.FulfillTimeout = defaultFulfillTimeout
	}

	return &service{
		cfg:         cfg,
		store:       store,
		guard:       guard,
		catalog:     catalog,
		provisioner: provisioner,
		composer:    composer,
		sender:      sender,
		zaplog:      zaplog,
		now:         time.Now,
	}
}

func (service *service) Fulfill(ctx context.Context, req Request) (Outcome, error) {
	if req.Flow != model.FlowOrder && req.Flow != model.FlowTrial {
		return Outcome{}, fmt.Errorf("%w: flow %q", ErrUnsupported, req.Flow)
	}
	norm, err := normalizer.For(req.Shape)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	// Received -> Normalized
	order, err := norm.Normalize(req.Payload)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if err = validate(req.Flow, order); err != nil {
		return Outcome{}, err
	}

	log := service.zaplog.With(
		zap.String("flow", string(req.Flow)),
		zap.String("email", order.CustomerEmail),
		zap.String("order", order.OrderID))

	// Normalized -> DuplicateChecked
	key := guard.Key(req.Flow, order)
	if service.guard.IsDuplicate(ctx, req.Flow, key) {
		log.Info("duplicate request rejected")
		return Outcome{}, ErrDuplicateRequest
	}

	// DuplicateChecked -> Persisted
	order.Reference = uuid.NewString()
	order.CreatedAt = service.now().UTC()
	order, err = service.persist(ctx, req.Flow, order)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Info("duplicate request rejected by store")
			return Outcome{}, ErrDuplicateRequest
		}
		log.Error("order persistence failed", zap.Error(err))
		return Outcome{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	log = log.With(zap.String("reference", order.Reference))
	log.Info("order persisted")

	// Заказ записан: дальше отмена запроса не должна оставить клиента без письма
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), service.cfg.FulfillTimeout)
	defer cancel()

	service.guard.Remember(ctx, req.Flow, key)

	outcome := Outcome{
		Reference: order.Reference,
		Flow:      req.Flow,
		State:     StateDone,
		Order:     order,
	}

	// Persisted -> Provisioned
	outcome.Provisioning = service.provision(ctx, req.Flow, order)
	log.Info("provisioning finished",
		zap.String("outcome", string(outcome.Provisioning.Outcome)),
		zap.String("error", outcome.Provisioning.ErrorMessage))

	// Provisioned -> Notified
	if err = service.notify(ctx, req.Flow, order, outcome.Provisioning); err != nil {
		log.Error("notification failed", zap.Error(err))
		outcome.State = StateDoneDegraded
		return outcome, nil
	}
	outcome.Notified = true
	log.Info("notification sent")

	return outcome, nil
}

func validate(flow model.Flow, order model.Order) error {
	if !emailPattern.MatchString(order.CustomerEmail) {
		return fmt.Errorf("%w: invalid email %q", ErrValidation, order.CustomerEmail)
	}
	if order.FullName == "" {
		return fmt.Errorf("%w: full name is required", ErrValidation)
	}
	// Для пробного доступа имя обязательно
	if flow == model.FlowTrial && order.FullName == model.NotAvailable {
		return fmt.Errorf("%w: full name is required", ErrValidation)
	}
	return nil
}

func (service *service) persist(ctx context.Context, flow model.Flow, order model.Order) (model.Order, error) {
	if flow == model.FlowTrial {
		trial, err := service.store.TrialInsert(ctx, model.TrialRecordFromOrder(order))
		if err != nil {
			return model.Order{}, err
		}
		order.CreatedAt = trial.Timestamp
		return order, nil
	}
	return service.store.OrderInsert(ctx, order)
}

func (service *service) provision(ctx context.Context, flow model.Flow, order model.Order) model.ProvisioningResult {
	packageID, ok := service.catalog.PackageFor(flow, order)
	if !ok {
		return model.ProvisioningResult{
			Outcome:      model.ProvisioningSkipped,
			ErrorMessage: fmt.Sprintf("no package for product %q / %q", order.ProductID, order.ProductTitle),
		}
	}
	note := order.FullName + " - " + order.CustomerEmail
	return service.provisioner.Provision(ctx, packageID, note, order.Country)
}

func (service *service) notify(ctx context.Context, flow model.Flow, order model.Order, result model.ProvisioningResult) error {
	msg, err := service.composer.Compose(flow, order, result)
	if err != nil {
		// несогласованный результат выдачи - шлём письмо без данных доступа
		service.zaplog.Error("compose failed, sending confirmation without credentials",
			zap.String("reference", order.Reference),
			zap.Error(err))
		msg, err = service.composer.Compose(flow, order, model.ProvisioningResult{Outcome: model.ProvisioningUnknown})
		if err != nil {
			return fmt.Errorf("compose: %w", err)
		}
	}
	return service.sender.Send(ctx, order.CustomerEmail, msg)
}
