package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Auth проверяет подпись уведомлений провайдера.
type Auth interface {
	Middleware(h http.Handler) http.Handler
}

var (
	ErrNoToken      = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

type contextKey string

const providerKey contextKey = "provider"

// Claims - содержимое токена провайдера
type Claims struct {
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

type auth struct {
	secret []byte
}

// NewAuth возвращает проверку по общему секрету.
// При пустом секрете проверка выключена.
func NewAuth(secret string) Auth {
	return &auth{secret: []byte(secret)}
}

func (a *auth) Middleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(a.secret) == 0 {
			h.ServeHTTP(w, r)
			return
		}

		// имя провайдера из токена
		provider, err := a.getProvider(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprintf(w, `{"status":"error","message":%q}`, err.Error())
			return
		}

		// передаём управление хендлеру
		h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), providerKey, provider)))
	})
}

func (a *auth) getProvider(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return "", ErrNoToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Provider == "" {
		return "", fmt.Errorf("%w: provider claim is empty", ErrInvalidToken)
	}
	return claims.Provider, nil
}

// Provider возвращает провайдера, подписавшего запрос.
func Provider(ctx context.Context) string {
	provider, _ := ctx.Value(providerKey).(string)
	return provider
}

// NewToken выпускает токен для провайдера. Используется при настройке вебхуков и в тестах.
func NewToken(secret, provider string, ttl time.Duration) (string, error) {
	claims := Claims{
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
