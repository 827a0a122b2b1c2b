package logger

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/iurnickita/iptvshop/internal/logger/config"
)

func NewZapLog(cfg config.Config) (*zap.Logger, error) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	// преобразуем текстовый уровень логирования в zap.AtomicLevel
	lvl, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	// создаём новую конфигурацию логера
	zapcfg := zap.NewProductionConfig()
	// устанавливаем уровень
	zapcfg.Level = lvl
	// создаём логер на основе конфигурации
	zl, err := zapcfg.Build()
	if err != nil {
		return nil, err
	}
	return zl, nil
}

// middleware-логер для входящих HTTP-запросов.
// Тело запроса пишется только на уровне debug: в нём персональные данные покупателя.
func RequestLogMdlw(zaplog *zap.Logger) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fields := []zap.Field{
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			}
			if ce := zaplog.Check(zap.DebugLevel, "incoming HTTP request body"); ce != nil && r.Body != nil {
				bodyBytes, _ := io.ReadAll(r.Body)
				r.Body.Close() //  must close
				r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
				ce.Write(append(fields, zap.String("body", string(bodyBytes)))...)
			}
			zaplog.Info("got incoming HTTP request", fields...)

			wl := NewResponseWriterLogger(w)

			handlerStart := time.Now()
			h.ServeHTTP(wl, r)
			handlerDuration := time.Since(handlerStart)

			zaplog.Info("send HTTP response",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("code", strconv.Itoa(wl.statusCode)),
				zap.String("body", string(wl.body)),
				zap.String("length", strconv.Itoa(wl.length)),
				zap.String("duration", handlerDuration.String()),
			)
		})
	}
}

type responseWriterLogger struct {
	http.ResponseWriter
	statusCode int
	length     int
	body       []byte
}

func NewResponseWriterLogger(w http.ResponseWriter) *responseWriterLogger {
	return &responseWriterLogger{w, http.StatusOK, 0, []byte{}}
}

func (wl *responseWriterLogger) WriteHeader(code int) {
	wl.statusCode = code
	wl.ResponseWriter.WriteHeader(code)
}

func (wl *responseWriterLogger) Write(b []byte) (n int, err error) {
	wl.body = append(wl.body, b...)
	n, err = wl.ResponseWriter.Write(b)
	wl.length += n
	return
}
