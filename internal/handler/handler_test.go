package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iurnickita/iptvshop/internal/auth"
	"github.com/iurnickita/iptvshop/internal/model"
	"github.com/iurnickita/iptvshop/internal/service"
)

type fakeService struct {
	fulfill func(ctx context.Context, req service.Request) (service.Outcome, error)
}

func (f *fakeService) Fulfill(ctx context.Context, req service.Request) (service.Outcome, error) {
	return f.fulfill(ctx, req)
}

func newTestServer(t *testing.T, secret string, svc service.Service) *httptest.Server {
	h := newHandler(auth.NewAuth(secret), svc, zap.NewNop())
	srv := httptest.NewServer(h.newRouter())
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, resp *http.Response) response {
	t.Helper()
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var body response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestPostWebhook(t *testing.T) {
	var got service.Request
	svc := &fakeService{fulfill: func(ctx context.Context, req service.Request) (service.Outcome, error) {
		got = req
		return service.Outcome{
			Reference:    "ref-1",
			Flow:         req.Flow,
			State:        service.StateDone,
			Provisioning: model.ProvisioningResult{Outcome: model.ProvisioningSucceeded},
			Notified:     true,
		}, nil
	}}
	srv := newTestServer(t, "", svc)

	resp, err := http.Post(srv.URL+"/api/webhooks/order/event", "application/json", strings.NewReader(`{"data":{}}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, statusSuccess, body.Status)
	require.NotNil(t, body.Data)
	assert.Equal(t, "ref-1", body.Data.Reference)
	assert.Equal(t, "succeeded", body.Data.Provisioning)
	assert.True(t, body.Data.Notified)

	assert.Equal(t, model.FlowOrder, got.Flow)
	assert.Equal(t, model.ShapeEvent, got.Shape)
	assert.Equal(t, `{"data":{}}`, string(got.Payload))
}

func TestPostWebhookErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unsupported", err: service.ErrUnsupported, wantStatus: http.StatusNotFound},
		{name: "malformed", err: service.ErrMalformedPayload, wantStatus: http.StatusBadRequest},
		{name: "validation", err: service.ErrValidation, wantStatus: http.StatusBadRequest},
		{name: "duplicate", err: service.ErrDuplicateRequest, wantStatus: http.StatusBadRequest},
		{name: "persistence", err: service.ErrPersistence, wantStatus: http.StatusInternalServerError},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{fulfill: func(ctx context.Context, req service.Request) (service.Outcome, error) {
				return service.Outcome{}, tt.err
			}}
			srv := newTestServer(t, "", svc)

			resp, err := http.Post(srv.URL+"/api/webhooks/trial/form", "application/json", strings.NewReader(`{}`))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decode(t, resp)
			assert.Equal(t, statusError, body.Status)
			assert.Nil(t, body.Data)
		})
	}
}

func TestWebhookMethodNotAllowed(t *testing.T) {
	called := false
	svc := &fakeService{fulfill: func(ctx context.Context, req service.Request) (service.Outcome, error) {
		called = true
		return service.Outcome{}, nil
	}}
	srv := newTestServer(t, "secret", svc)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req, err := http.NewRequest(method, srv.URL+"/api/webhooks/order/event", nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, method)

		body := decode(t, resp)
		assert.Equal(t, "Method Not Allowed", body.Message)
	}
	assert.False(t, called)
}

func TestWebhookAuth(t *testing.T) {
	svc := &fakeService{fulfill: func(ctx context.Context, req service.Request) (service.Outcome, error) {
		assert.Equal(t, "sellix", auth.Provider(ctx))
		return service.Outcome{Reference: "ref-2", State: service.StateDone}, nil
	}}
	srv := newTestServer(t, "secret", svc)

	resp, err := http.Post(srv.URL+"/api/webhooks/order/checkout", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	token, err := auth.NewToken("secret", "sellix", time.Hour)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/webhooks/order/checkout", strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ref-2", decode(t, resp).Data.Reference)
}

func TestWebhookBodyLimit(t *testing.T) {
	svc := &fakeService{fulfill: func(ctx context.Context, req service.Request) (service.Outcome, error) {
		t.Error("service must not be called")
		return service.Outcome{}, nil
	}}
	srv := newTestServer(t, "", svc)

	big := strings.NewReader(`{"pad":"` + strings.Repeat("x", maxBodySize) + `"}`)
	resp, err := http.Post(srv.URL+"/api/webhooks/order/event", "application/json", big)
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthAndNotFound(t *testing.T) {
	srv := newTestServer(t, "", &fakeService{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, statusSuccess, decode(t, resp).Status)

	resp, err = http.Get(srv.URL + "/api/unknown")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, statusError, decode(t, resp).Status)
}
