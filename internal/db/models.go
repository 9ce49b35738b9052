package db

import "time"

// Order status values.
const (
	OrderStatusPending = "pending"
	OrderStatusOrdered = "ordered"
)

// Category is a named grouping that items belong to. Deleting a category
// cascades to its items (see repo.CategoryRepository.Delete).
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);not null;uniqueIndex:idx_categories_name" json:"name"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}

// Item is a single inventory record. CategoryID must reference an existing
// category; callers resolve or create the category before writing the item.
type Item struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"type:varchar(255);not null;index:idx_items_name" json:"name"`
	ModelNumber   string `gorm:"type:varchar(255);index:idx_items_model_number" json:"modelNumber"`
	CategoryID    uint   `gorm:"not null;index:idx_items_category_id" json:"categoryId"`
	Quantity      int    `gorm:"not null;default:0;index:idx_items_quantity" json:"quantity"`
	ShelfLocation string `gorm:"type:varchar(255)" json:"shelfLocation"`
	Notes         string `gorm:"type:text" json:"notes"`
	AddedDate     string `gorm:"type:varchar(10)" json:"addedDate,omitempty"` // YYYY-MM-DD
}

// TableName specifies the table name for Item model
func (Item) TableName() string {
	return "items"
}

// Order is a free-text purchase request, independent of Item records.
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemName  string    `gorm:"type:varchar(255);not null;index:idx_orders_item_name" json:"itemName"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Status    string    `gorm:"type:varchar(16);not null;default:'pending';index:idx_orders_status" json:"status"`
	CreatedAt time.Time `gorm:"not null;index:idx_orders_created_at" json:"createdAt"`
}

// TableName specifies the table name for Order model
func (Order) TableName() string {
	return "orders"
}
