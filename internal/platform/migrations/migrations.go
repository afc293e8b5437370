package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the orders store.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&orderRecord{})
}

// Order schema mirrors the orders Postgres adapter.
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
