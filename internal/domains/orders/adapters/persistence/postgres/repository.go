package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. Schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to the orders table.
type orderRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	ProductID int64     `gorm:"column:product_id;index"`
	Quantity  int64     `gorm:"column:quantity"`
	Amount    int64     `gorm:"column:amount"`
	Status    string    `gorm:"column:status;type:varchar(32);index"`
	OrderDate time.Time `gorm:"column:order_date"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts a new order when ID is zero, letting the database assign it, and upserts otherwise.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	tx := r.db.WithContext(ctx)
	if record.ID != 0 {
		tx = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"product_id": record.ProductID,
				"quantity":   record.Quantity,
				"amount":     record.Amount,
				"status":     record.Status,
				"order_date": record.OrderDate,
				"updated_at": gorm.Expr("NOW()"),
			}),
		})
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByID reports (nil, false, nil) when no row matches.
func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Order, bool, error) {
	if err := r.ensureDB(); err != nil {
		return nil, false, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return record.toDomain(), true, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:        order.ID,
		ProductID: order.ProductID,
		Quantity:  order.Quantity,
		Amount:    order.Amount,
		Status:    string(order.Status),
		OrderDate: order.OrderDate.UTC(),
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:        r.ID,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		Amount:    r.Amount,
		Status:    domain.Status(r.Status),
		OrderDate: r.OrderDate,
	}
}
