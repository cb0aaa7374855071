package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"foodplatform/pkg/order/domain/model"
)

const (
	queryTimeout         = 5 * time.Second
	mysqlDuplicateKeyErr = 1062
)

//go:embed migrations/*.sql
var migrations embed.FS

type orderRow struct {
	ID                    string    `db:"id"`
	CustomerID            string    `db:"customer_id"`
	CustomerName          string    `db:"customer_name"`
	CustomerEmail         string    `db:"customer_email"`
	CustomerPhone         string    `db:"customer_phone"`
	RestaurantID          string    `db:"restaurant_id"`
	Items                 []byte    `db:"items"`
	DeliveryAddress       string    `db:"delivery_address"`
	SpecialInstructions   string    `db:"special_instructions"`
	Status                int32     `db:"status"`
	TotalAmount           float64   `db:"total_amount"`
	RejectionReason       string    `db:"rejection_reason"`
	EstimatedDeliveryTime time.Time `db:"estimated_delivery_time"`
	Version               int       `db:"version"`
	CreatedAt             time.Time `db:"created_at"`
	UpdatedAt             time.Time `db:"updated_at"`
}

type itemRow struct {
	ItemID         string   `json:"item_id"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	Quantity       int      `json:"quantity"`
	Customizations []string `json:"customizations,omitempty"`
}

type mysqlRepository struct {
	db *sqlx.DB
}

// NewMySQLRepository opens the database, applies the embedded migrations and
// returns a repository backed by the orders table.
func NewMySQLRepository(dsn string) (model.OrderRepository, func() error, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parse mysql dsn")
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	db, err := sqlx.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, nil, errors.Wrap(err, "open mysql")
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, errors.Wrap(err, "ping mysql")
	}
	if err := migrateUp(db.DB); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return &mysqlRepository{db: db}, db.Close, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "load migrations")
	}
	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		return errors.Wrap(err, "create migration driver")
	}
	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		return errors.Wrap(err, "create migrator")
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}

func (r *mysqlRepository) NextID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (r *mysqlRepository) Create(order *model.Order) error {
	row, err := toRow(order)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO orders (
			id, customer_id, customer_name, customer_email, customer_phone, restaurant_id,
			items, delivery_address, special_instructions, status, total_amount,
			rejection_reason, estimated_delivery_time, version, created_at, updated_at
		) VALUES (
			:id, :customer_id, :customer_name, :customer_email, :customer_phone, :restaurant_id,
			:items, :delivery_address, :special_instructions, :status, :total_amount,
			:rejection_reason, :estimated_delivery_time, :version, :created_at, :updated_at
		)`, row)
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateKeyErr {
		return errors.Wrapf(model.ErrOrderExists, "order %s", order.ID)
	}
	return errors.Wrapf(err, "insert order %s", order.ID)
}

func (r *mysqlRepository) Find(id string) (*model.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var row orderRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(model.ErrOrderNotFound, "order %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select order %s", id)
	}
	return fromRow(row)
}

func (r *mysqlRepository) Update(order *model.Order) error {
	row, err := toRow(order)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = ?, rejection_reason = ?, items = ?, version = ?, updated_at = ?
		WHERE id = ? AND version = ?`,
		row.Status, row.RejectionReason, row.Items, row.Version, row.UpdatedAt, row.ID, row.Version-1)
	if err != nil {
		return errors.Wrapf(err, "update order %s", order.ID)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "update order %s", order.ID)
	}
	if affected == 1 {
		return nil
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = ?)`, order.ID); err != nil {
		return errors.Wrapf(err, "check order %s", order.ID)
	}
	if !exists {
		return errors.Wrapf(model.ErrOrderNotFound, "order %s", order.ID)
	}
	return errors.Wrapf(model.ErrOptimisticLock, "order %s", order.ID)
}

func toRow(o *model.Order) (orderRow, error) {
	items := make([]itemRow, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, itemRow(item))
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return orderRow{}, errors.Wrapf(err, "encode items of order %s", o.ID)
	}
	return orderRow{
		ID:                    o.ID,
		CustomerID:            o.Customer.ID,
		CustomerName:          o.Customer.Name,
		CustomerEmail:         o.Customer.Email,
		CustomerPhone:         o.Customer.Phone,
		RestaurantID:          o.RestaurantID,
		Items:                 encoded,
		DeliveryAddress:       o.DeliveryAddress,
		SpecialInstructions:   o.SpecialInstructions,
		Status:                int32(o.Status),
		TotalAmount:           o.TotalAmount,
		RejectionReason:       o.RejectionReason,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		Version:               o.Version,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}, nil
}

func fromRow(row orderRow) (*model.Order, error) {
	var items []itemRow
	if err := json.Unmarshal(row.Items, &items); err != nil {
		return nil, errors.Wrapf(err, "decode items of order %s", row.ID)
	}
	order := &model.Order{
		ID: row.ID,
		Customer: model.Customer{
			ID:    row.CustomerID,
			Name:  row.CustomerName,
			Email: row.CustomerEmail,
			Phone: row.CustomerPhone,
		},
		RestaurantID:          row.RestaurantID,
		Items:                 make([]model.Item, 0, len(items)),
		DeliveryAddress:       row.DeliveryAddress,
		SpecialInstructions:   row.SpecialInstructions,
		Status:                model.OrderStatus(row.Status),
		TotalAmount:           row.TotalAmount,
		RejectionReason:       row.RejectionReason,
		EstimatedDeliveryTime: row.EstimatedDeliveryTime,
		Version:               row.Version,
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             row.UpdatedAt,
	}
	for _, item := range items {
		order.Items = append(order.Items, model.Item(item))
	}
	return order, nil
}
