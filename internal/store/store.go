package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/iurnickita/iptvshop/internal/model"
	"github.com/iurnickita/iptvshop/internal/store/config"
)

// Store - только вставка и проверка наличия. Обновлений и удалений нет.
//
//go:generate mockgen -destination=../mocks/store.go -package=mocks . Store
type Store interface {
	OrderInsert(ctx context.Context, order model.Order) (model.Order, error)
	OrderExists(ctx context.Context, orderID string) (bool, error)
	TrialInsert(ctx context.Context, trial model.TrialRecord) (model.TrialRecord, error)
	TrialExists(ctx context.Context, email string) (bool, error)
	Close() error
}

var (
	ErrAlreadyExists = errors.New("already exists")
)

const pgUniqueViolation = "23505"

type store struct {
	database *sql.DB
}

func NewStore(cfg config.Config) (Store, error) {
	db, err := sql.Open("pgx", cfg.DBDsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	// Таблица заказов.
	// Одна строка на уведомление. Повтор уведомления с тем же order_id
	// отсекается уникальным индексом; "N/A" в индекс не попадает.
	_, err = db.Exec(
		"CREATE TABLE IF NOT EXISTS orders (" +
			" id SERIAL PRIMARY KEY," +
			" reference UUID UNIQUE NOT NULL," +
			" order_id TEXT NOT NULL," +
			" product_id TEXT NOT NULL," +
			" product_title TEXT NOT NULL," +
			" full_name TEXT NOT NULL," +
			" country TEXT NOT NULL," +
			" whatsapp TEXT NOT NULL," +
			" customer_email TEXT NOT NULL," +
			" total TEXT NOT NULL," +
			" currency TEXT NOT NULL," +
			" status TEXT NOT NULL," +
			" created_at TIMESTAMPTZ NOT NULL" +
			" );" +
			" CREATE UNIQUE INDEX IF NOT EXISTS orders_order_id_key" +
			" ON orders (order_id) WHERE order_id <> 'N/A';")
	if err != nil {
		db.Close()
		return nil, err
	}

	// Таблица пробных доступов.
	// Один пробный доступ на email, без учёта регистра.
	_, err = db.Exec(
		"CREATE TABLE IF NOT EXISTS trials (" +
			" id SERIAL PRIMARY KEY," +
			" reference UUID UNIQUE NOT NULL," +
			" full_name TEXT NOT NULL," +
			" email TEXT NOT NULL," +
			" country TEXT NOT NULL," +
			" whatsapp TEXT NOT NULL," +
			" status TEXT NOT NULL," +
			" created_at TIMESTAMPTZ NOT NULL" +
			" );" +
			" CREATE UNIQUE INDEX IF NOT EXISTS trials_email_key" +
			" ON trials (lower(email));")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &store{
		database: db,
	}, nil
}

func (store *store) OrderInsert(ctx context.Context, order model.Order) (model.Order, error) {
	//Запись нового заказа
	row := store.database.QueryRowContext(ctx,
		"INSERT INTO orders (reference, order_id, product_id, product_title, full_name, country,"+
			" whatsapp, customer_email, total, currency, status, created_at)"+
			" VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)"+
			" RETURNING created_at",
		order.Reference,
		order.OrderID,
		order.ProductID,
		order.ProductTitle,
		order.FullName,
		order.Country,
		order.Whatsapp,
		order.CustomerEmail,
		order.Total,
		order.Currency,
		order.Status,
		order.CreatedAt)
	if err := row.Scan(&order.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return model.Order{}, ErrAlreadyExists
		}
		return model.Order{}, err
	}
	return order, nil
}

func (store *store) OrderExists(ctx context.Context, orderID string) (bool, error) {
	var exists bool
	err := store.database.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1)",
		orderID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (store *store) TrialInsert(ctx context.Context, trial model.TrialRecord) (model.TrialRecord, error) {
	//Запись пробного доступа
	row := store.database.QueryRowContext(ctx,
		"INSERT INTO trials (reference, full_name, email, country, whatsapp, status, created_at)"+
			" VALUES ($1, $2, $3, $4, $5, $6, $7)"+
			" RETURNING created_at",
		trial.Reference,
		trial.FullName,
		trial.Email,
		trial.Country,
		trial.Whatsapp,
		trial.Status,
		trial.Timestamp)
	if err := row.Scan(&trial.Timestamp); err != nil {
		if isUniqueViolation(err) {
			return model.TrialRecord{}, ErrAlreadyExists
		}
		return model.TrialRecord{}, err
	}
	return trial, nil
}

func (store *store) TrialExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := store.database.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM trials WHERE lower(email) = $1)",
		strings.ToLower(email)).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (store *store) Close() error {
	return store.database.Close()
}

// Проверка: нарушение уникальности
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
