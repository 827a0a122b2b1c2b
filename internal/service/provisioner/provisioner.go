package provisioner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/iurnickita/iptvshop/internal/model"
	"github.com/iurnickita/iptvshop/internal/service/provisioner/config"
)

// Отказ по лимиту: "limit" отдельным словом, не "unlimited".
var limitMessage = regexp.MustCompile(`(?i)\blimits?\b|\brate[- ]limited\b`)

const (
	apiPath        = "/api/dev_api.php"
	defaultTimeout = 15 * time.Second
)

// JSON ответ API выдачи доступа (элемент массива)
type Answer struct {
	Status   json.RawMessage `json:"status"`
	URL      string          `json:"url"`
	Username string          `json:"username"`
	Password string          `json:"password"`
	Message  string          `json:"message"`
}

// Client запрашивает учётные данные у внешнего API.
// Любой сбой возвращается как итог в ProvisioningResult, а не как ошибка.
//
//go:generate mockgen -destination=../../mocks/provisioner.go -package=mocks -mock_names=Client=MockProvisioner . Client
type Client interface {
	Provision(ctx context.Context, packageID, note, country string) model.ProvisioningResult
}

type client struct {
	cfg    config.Config
	resty  *resty.Client
	zaplog *zap.Logger
}

func NewClient(cfg config.Config, zaplog *zap.Logger) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	r := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout)

	return &client{cfg: cfg, resty: r, zaplog: zaplog}
}

func (c *client) Provision(ctx context.Context, packageID, note, country string) model.ProvisioningResult {
	params := map[string]string{
		"action":     "user",
		"type":       "create",
		"package_id": packageID,
		"api_key":    c.cfg.APIKey,
	}
	if note != "" {
		params["note"] = note
	}
	if country != "" && country != model.NotAvailable {
		params["country"] = country
	}
	if c.cfg.TemplateID != "" {
		params["template_id"] = c.cfg.TemplateID
	}

	resp, err := c.resty.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(apiPath)
	if err != nil {
		// таймаут сюда же
		c.zaplog.Warn("provisioning request failed",
			zap.String("package", packageID),
			zap.Error(err))
		return model.ProvisioningResult{
			Outcome:      model.ProvisioningNetworkError,
			ErrorMessage: err.Error(),
		}
	}

	result := parse(resp.StatusCode(), resp.Body())
	c.zaplog.Info("provisioning answer",
		zap.String("package", packageID),
		zap.Int("code", resp.StatusCode()),
		zap.String("outcome", string(result.Outcome)))
	return result
}

func parse(code int, body []byte) model.ProvisioningResult {
	switch {
	case code == http.StatusTooManyRequests:
		return model.ProvisioningResult{
			Outcome:      model.ProvisioningRateLimited,
			ErrorMessage: fmt.Sprintf("provisioning request status: %d", code),
		}
	case code < 200 || code > 299:
		return model.ProvisioningResult{
			Outcome:      model.ProvisioningFailed,
			ErrorMessage: fmt.Sprintf("provisioning request status: %d", code),
		}
	}

	answer, err := decode(body)
	if err != nil {
		return model.ProvisioningResult{
			Outcome:      model.ProvisioningUnknown,
			ErrorMessage: err.Error(),
		}
	}

	ok, known := truthy(answer.Status)
	switch {
	case !known:
		return model.ProvisioningResult{
			Outcome:      model.ProvisioningUnknown,
			ErrorMessage: fmt.Sprintf("unexpected status value %s", string(answer.Status)),
		}
	case ok && (answer.URL == "" || answer.Username == "" || answer.Password == ""):
		return model.ProvisioningResult{
			Outcome:      model.ProvisioningUnknown,
			ErrorMessage: "success reported without credentials",
		}
	case ok:
		return model.ProvisioningResult{
			Outcome:  model.ProvisioningSucceeded,
			URL:      answer.URL,
			Username: answer.Username,
			Password: answer.Password,
		}
	case limitMessage.MatchString(answer.Message):
		return model.ProvisioningResult{
			Outcome:      model.ProvisioningRateLimited,
			ErrorMessage: answer.Message,
		}
	default:
		return model.ProvisioningResult{
			Outcome:      model.ProvisioningFailed,
			ErrorMessage: answer.Message,
		}
	}
}

// decode берёт первый элемент массива. Одиночный объект тоже принимается.
func decode(body []byte) (Answer, error) {
	var answers []Answer
	if err := json.Unmarshal(body, &answers); err == nil {
		if len(answers) == 0 {
			return Answer{}, fmt.Errorf("empty provisioning answer")
		}
		return answers[0], nil
	}

	var answer Answer
	if err := json.Unmarshal(body, &answer); err != nil {
		return Answer{}, fmt.Errorf("decode provisioning answer: %w", err)
	}
	return answer, nil
}

// truthy толкует поле status: true, 1, "true", "1", "success", "ok".
func truthy(raw json.RawMessage) (value bool, known bool) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, true
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "success", "ok":
			return true, true
		case "false", "0", "error", "fail", "failed":
			return false, true
		}
	}
	return false, false
}
