package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"fern-and-paper/db"
	"fern-and-paper/logger"
	"fern-and-paper/models"
)

// OrderRepository handles database operations for orders
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

const orderColumns = `o.id, o.user_id, o.order_items, o.shipping_address, o.payment_method,
	o.payment_result, o.items_price, o.shipping_price, o.tax_price, o.total_price,
	o.is_paid, o.paid_at, o.is_dispatched, o.dispatched_at, o.created_at, u.name, u.email`

func scanOrder(row interface{ Scan(...interface{}) error }) (*models.Order, error) {
	var o models.Order
	var items, address, payment []byte
	err := row.Scan(
		&o.ID, &o.UserID, &items, &address, &o.PaymentMethod,
		&payment, &o.ItemsPrice, &o.ShippingPrice, &o.TaxPrice, &o.TotalPrice,
		&o.IsPaid, &o.PaidAt, &o.IsDispatched, &o.DispatchedAt, &o.CreatedAt,
		&o.UserName, &o.UserEmail,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &o.OrderItems); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	if err := json.Unmarshal(address, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("failed to decode shipping address: %w", err)
	}
	if payment != nil {
		o.PaymentResult = &models.PaymentResult{}
		if err := json.Unmarshal(payment, o.PaymentResult); err != nil {
			return nil, fmt.Errorf("failed to decode payment result: %w", err)
		}
	}
	return &o, nil
}

// Create persists a fully priced order.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	logger.L.Infof("📥 Create order %s: user=%s items=%d total=%s",
		order.ID, order.UserID, len(order.OrderItems), order.TotalPrice.StringFixed(2))

	var payment []byte
	if order.PaymentResult != nil {
		payment = mustJSON(order.PaymentResult)
	}

	query := `
		INSERT INTO orders (id, user_id, order_items, shipping_address, payment_method,
			payment_result, items_price, shipping_price, tax_price, total_price,
			is_paid, paid_at, is_dispatched, dispatched_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := db.DB.ExecContext(ctx, query,
		order.ID, order.UserID, mustJSON(order.OrderItems), mustJSON(order.ShippingAddress),
		order.PaymentMethod, payment,
		order.ItemsPrice, order.ShippingPrice, order.TaxPrice, order.TotalPrice,
		order.IsPaid, order.PaidAt, order.IsDispatched, order.DispatchedAt, order.CreatedAt,
	)
	if err != nil {
		logger.L.Errorf("❌ Error creating order: %v", err)
		return fmt.Errorf("failed to create order: %w", err)
	}

	logger.L.Infof("✓ Order %s created", order.ID)
	return nil
}

// GetByID fetches one order joined with its owner's name and email.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders o JOIN users u ON u.id = o.user_id WHERE o.id = $1`, orderColumns)
	order, err := scanOrder(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		logger.L.Errorf("❌ Error fetching order %s: %v", id, err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (r *OrderRepository) list(ctx context.Context, where string, args ...interface{}) ([]models.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders o JOIN users u ON u.id = o.user_id %s ORDER BY o.created_at DESC`,
		orderColumns, where)
	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// ListByUser returns the orders of one account, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.list(ctx, "WHERE o.user_id = $1", userID)
}

// ListAll returns every order for the admin back office.
func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.list(ctx, "")
}

// MarkPaid records the payment result and flips the paid flag. Already paid
// orders are left untouched and reported as a conflict.
func (r *OrderRepository) MarkPaid(ctx context.Context, id string, result models.PaymentResult) (*models.Order, error) {
	logger.L.Infof("💰 MarkPaid: order=%s provider_id=%s status=%s", id, result.ID, result.Status)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var isPaid bool
	err = tx.QueryRowContext(ctx, "SELECT is_paid FROM orders WHERE id = $1 FOR UPDATE", id).Scan(&isPaid)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}
	if isPaid {
		return nil, models.ErrConflict
	}

	paidAt := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		"UPDATE orders SET is_paid = TRUE, paid_at = $2, payment_result = $3 WHERE id = $1",
		id, paidAt, mustJSON(result))
	if err != nil {
		logger.L.Errorf("❌ Error marking order %s paid: %v", id, err)
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.L.Infof("✓ Order %s marked paid", id)
	return r.GetByID(ctx, id)
}

// MarkDispatched flips the dispatched flag. Dispatch does not require the
// order to be paid; made-to-order items ship on the maker's schedule.
func (r *OrderRepository) MarkDispatched(ctx context.Context, id string) (*models.Order, error) {
	logger.L.Infof("📦 MarkDispatched: order=%s", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var isDispatched bool
	err = tx.QueryRowContext(ctx, "SELECT is_dispatched FROM orders WHERE id = $1 FOR UPDATE", id).Scan(&isDispatched)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}
	if isDispatched {
		return nil, models.ErrConflict
	}

	dispatchedAt := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		"UPDATE orders SET is_dispatched = TRUE, dispatched_at = $2 WHERE id = $1", id, dispatchedAt)
	if err != nil {
		logger.L.Errorf("❌ Error marking order %s dispatched: %v", id, err)
		return nil, fmt.Errorf("failed to mark order dispatched: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.L.Infof("✓ Order %s marked dispatched", id)
	return r.GetByID(ctx, id)
}
