package repo

import (
	"context"
	"errors"
	"time"

	"github.com/pavan1045/myStore/internal/db"
	"github.com/pavan1045/myStore/internal/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrOrderNotFound is returned when an order is not found
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidStatus is returned when an order status is neither pending nor ordered
	ErrInvalidStatus = errors.New("invalid order status")
)

// OrderPatch lists the order fields a partial update may overwrite.
// CreatedAt is stamped at insertion and immutable.
type OrderPatch struct {
	ItemName *string
	Quantity *int
	Status   *string
}

// OrderRepository handles purchase-order operations
type OrderRepository struct {
	db  *db.DB
	log *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(database *db.DB, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{
		db:  database,
		log: logger,
	}
}

// List returns all orders, newest first
func (r *OrderRepository) List(ctx context.Context) ([]*db.Order, error) {
	var orders []*db.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		r.log.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// Get retrieves an order by id
func (r *OrderRepository) Get(ctx context.Context, id uint) (*db.Order, error) {
	var order db.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		r.log.Error("Failed to get order", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &order, nil
}

// Add creates a new order. Status defaults to pending when unset, and
// CreatedAt is always stamped here, never taken from the caller.
func (r *OrderRepository) Add(ctx context.Context, order *db.Order) error {
	if order.ItemName == "" {
		return ErrNameRequired
	}
	if order.Quantity < 1 {
		order.Quantity = 1
	}
	if order.Status == "" {
		order.Status = db.OrderStatusPending
	}
	if !validStatus(order.Status) {
		return ErrInvalidStatus
	}
	order.CreatedAt = time.Now()

	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		r.log.Error("Failed to create order", zap.String("item_name", order.ItemName), zap.Error(err))
		return err
	}

	metrics.RecordOrderOperation("add")
	r.log.Info("Order created", zap.Uint("id", order.ID), zap.String("item_name", order.ItemName))
	return nil
}

// Update merges the patch's supplied fields into the stored order. The
// pending/ordered toggle on the purchase-order screen goes through here.
func (r *OrderRepository) Update(ctx context.Context, id uint, patch OrderPatch) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if patch.ItemName != nil {
		if *patch.ItemName == "" {
			return ErrNameRequired
		}
		updates["item_name"] = *patch.ItemName
	}
	if patch.Quantity != nil {
		updates["quantity"] = *patch.Quantity
	}
	if patch.Status != nil {
		if !validStatus(*patch.Status) {
			return ErrInvalidStatus
		}
		updates["status"] = *patch.Status
	}

	if len(updates) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Model(&db.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		r.log.Error("Failed to update order", zap.Uint("id", id), zap.Error(err))
		return err
	}

	metrics.RecordOrderOperation("update")
	r.log.Info("Order updated", zap.Uint("id", id))
	return nil
}

// Delete removes an order by id
func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&db.Order{}, id)
	if result.Error != nil {
		r.log.Error("Failed to delete order", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}

	metrics.RecordOrderOperation("delete")
	r.log.Info("Order deleted", zap.Uint("id", id))
	return nil
}

func validStatus(status string) bool {
	return status == db.OrderStatusPending || status == db.OrderStatusOrdered
}
