package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// errNotFound signals that the targeted order or item does not exist remotely.
	errNotFound = errors.New("pedidos: record not found")
)

// orderRepository is the external collaborator that owns durable order state.
// The grid never writes locally; every mutation is a remote single-field
// update and the in-memory list is only touched after the remote store
// accepted the value.
type orderRepository interface {
	FetchOrders(ctx context.Context) ([]Order, error)
	UpdateItemFabrication(ctx context.Context, itemID string, state FabricationState) error
	UpdateItemSale(ctx context.Context, itemID string, state SaleState) error
	UpdateItemShipping(ctx context.Context, itemID string, state ShippingState) error
	UpdateItemStampType(ctx context.Context, itemID string, stampType StampType) error
	UpdateOrderCarrier(ctx context.Context, orderID string, carrier ShippingCarrier) error
	CreateOrder(ctx context.Context, draft newOrderDraft) (string, error)
}

// newOrderDraft carries the creation wizard's output. One customer, one
// initial item; additional items are added by the workshop later.
type newOrderDraft struct {
	Customer          Customer
	ContactChannel    string
	DesignName        string
	RequestedWidthMM  int
	RequestedHeightMM int
	StampType         StampType
	Notes             string
	IsPriority        bool
	ItemValue         float64
	DepositValue      float64
	Fabrication       FabricationState
	Sale              SaleState
	Shipping          ShippingState
	Carrier           ShippingCarrier
	Service           string
	DeadlineAt        *time.Time
}

// pgOrderRepository implements orderRepository against PostgreSQL. Totals
// come from the orders_with_totals view; the client never recomputes them.
type pgOrderRepository struct {
	pool *pgxpool.Pool
}

func newPGOrderRepository(pool *pgxpool.Pool) *pgOrderRepository {
	return &pgOrderRepository{pool: pool}
}

func (r *pgOrderRepository) FetchOrders(ctx context.Context) ([]Order, error) {
	const ordersSQL = `
		SELECT o.id, o.order_date, o.deadline_at,
		       o.shipping_carrier, o.shipping_service, o.tracking_number,
		       o.total_value, o.total_deposit, o.total_balance,
		       c.id, c.first_name, c.last_name, c.email, c.phone_e164
		FROM orders_with_totals o
		JOIN customers c ON c.id = o.customer_id
		ORDER BY o.order_date DESC
	`
	rows, err := r.pool.Query(ctx, ordersSQL)
	if err != nil {
		return nil, fmt.Errorf("pedidos: fetch orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	index := make(map[string]int)
	var ids []string
	for rows.Next() {
		var (
			o                          Order
			deadline                   *time.Time
			carrier, service, tracking *string
			email                      *string
		)
		if err := rows.Scan(
			&o.ID, &o.OrderDate, &deadline,
			&carrier, &service, &tracking,
			&o.TotalValue, &o.PaidAmount, &o.Balance,
			&o.Customer.ID, &o.Customer.FirstName, &o.Customer.LastName, &email, &o.Customer.PhoneE164,
		); err != nil {
			return nil, fmt.Errorf("pedidos: scan order: %w", err)
		}
		o.DeadlineAt = deadline
		o.Shipping = ShippingInfo{
			Carrier:        ShippingCarrier(deref(carrier)),
			Service:        deref(service),
			TrackingNumber: deref(tracking),
		}
		o.Customer.Email = deref(email)
		index[o.ID] = len(orders)
		ids = append(ids, o.ID)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pedidos: fetch orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	if err := r.attachItems(ctx, ids, index, orders); err != nil {
		return nil, err
	}
	if err := r.attachTasks(ctx, ids, index, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *pgOrderRepository) attachItems(ctx context.Context, ids []string, index map[string]int, orders []Order) error {
	const itemsSQL = `
		SELECT id, order_id, design_name, requested_width_mm, requested_height_mm,
		       stamp_type, notes, is_priority,
		       fabrication_state, sale_state, shipping_state,
		       item_value, deposit_value_item,
		       contact_channel, contact_phone_e164,
		       file_base_url, file_vector_url, file_photo_url
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.pool.Query(ctx, itemsSQL, ids)
	if err != nil {
		return fmt.Errorf("pedidos: fetch items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it                           Item
			notes, channel, phone        *string
			baseURL, vectorURL, photoURL *string
			width, height                *int
		)
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.DesignName, &width, &height,
			&it.StampType, &notes, &it.IsPriority,
			&it.FabricationState, &it.SaleState, &it.ShippingState,
			&it.ItemValue, &it.DepositValue,
			&channel, &phone,
			&baseURL, &vectorURL, &photoURL,
		); err != nil {
			return fmt.Errorf("pedidos: scan item: %w", err)
		}
		if width != nil {
			it.RequestedWidthMM = *width
		}
		if height != nil {
			it.RequestedHeightMM = *height
		}
		it.Notes = deref(notes)
		it.Contact = ContactInfo{Channel: deref(channel), PhoneE164: deref(phone)}
		it.Files = FileRefs{BaseURL: deref(baseURL), VectorURL: deref(vectorURL), PhotoURL: deref(photoURL)}
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return rows.Err()
}

func (r *pgOrderRepository) attachTasks(ctx context.Context, ids []string, index map[string]int, orders []Order) error {
	const tasksSQL = `
		SELECT id, order_id, title, description, due_at, is_done
		FROM tasks
		WHERE order_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.pool.Query(ctx, tasksSQL, ids)
	if err != nil {
		return fmt.Errorf("pedidos: fetch tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			task        Task
			description *string
			dueAt       *time.Time
		)
		if err := rows.Scan(&task.ID, &task.OrderID, &task.Title, &description, &dueAt, &task.Done); err != nil {
			return fmt.Errorf("pedidos: scan task: %w", err)
		}
		task.Description = deref(description)
		task.DueAt = dueAt
		if i, ok := index[task.OrderID]; ok {
			orders[i].Tasks = append(orders[i].Tasks, task)
		}
	}
	return rows.Err()
}

func (r *pgOrderRepository) UpdateItemFabrication(ctx context.Context, itemID string, state FabricationState) error {
	return r.updateItemField(ctx, itemID, "fabrication_state", string(state))
}

func (r *pgOrderRepository) UpdateItemSale(ctx context.Context, itemID string, state SaleState) error {
	return r.updateItemField(ctx, itemID, "sale_state", string(state))
}

func (r *pgOrderRepository) UpdateItemShipping(ctx context.Context, itemID string, state ShippingState) error {
	return r.updateItemField(ctx, itemID, "shipping_state", string(state))
}

func (r *pgOrderRepository) UpdateItemStampType(ctx context.Context, itemID string, stampType StampType) error {
	return r.updateItemField(ctx, itemID, "stamp_type", string(stampType))
}

// updateItemField issues the single-field UPDATE the mutation protocol is
// built on. The column name is always one of our own constants, never input.
func (r *pgOrderRepository) updateItemField(ctx context.Context, itemID, column, value string) error {
	sql := fmt.Sprintf(`UPDATE order_items SET %s = $1, updated_at = now() WHERE id = $2`, column)
	tag, err := r.pool.Exec(ctx, sql, value, itemID)
	if err != nil {
		return fmt.Errorf("pedidos: update %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *pgOrderRepository) UpdateOrderCarrier(ctx context.Context, orderID string, carrier ShippingCarrier) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET shipping_carrier = $1, updated_at = now() WHERE id = $2`,
		string(carrier), orderID)
	if err != nil {
		return fmt.Errorf("pedidos: update shipping_carrier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

// CreateOrder runs the creation flow as one transaction: upsert the customer
// by phone, insert the order, insert its first item.
func (r *pgOrderRepository) CreateOrder(ctx context.Context, draft newOrderDraft) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("pedidos: create order: %w", err)
	}
	defer tx.Rollback(ctx)

	var customerID string
	err = tx.QueryRow(ctx, `
		INSERT INTO customers (id, phone_e164, first_name, last_name, email)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (phone_e164) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email
		RETURNING id
	`, uuid.NewString(), draft.Customer.PhoneE164, draft.Customer.FirstName, draft.Customer.LastName, nullable(draft.Customer.Email)).Scan(&customerID)
	if err != nil {
		return "", fmt.Errorf("pedidos: upsert customer: %w", err)
	}

	orderID := uuid.NewString()
	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, customer_id, order_date, deadline_at, shipping_carrier, shipping_service)
		VALUES ($1, $2, now(), $3, $4, $5)
	`, orderID, customerID, draft.DeadlineAt, string(draft.Carrier), nullable(draft.Service))
	if err != nil {
		return "", fmt.Errorf("pedidos: insert order: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO order_items (
			id, order_id, design_name, requested_width_mm, requested_height_mm,
			stamp_type, notes, is_priority,
			fabrication_state, sale_state, shipping_state,
			item_value, deposit_value_item,
			contact_channel, contact_phone_e164
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, uuid.NewString(), orderID, draft.DesignName, draft.RequestedWidthMM, draft.RequestedHeightMM,
		string(draft.StampType), nullable(draft.Notes), draft.IsPriority,
		string(draft.Fabrication), string(draft.Sale), string(draft.Shipping),
		draft.ItemValue, draft.DepositValue,
		nullable(draft.ContactChannel), draft.Customer.PhoneE164)
	if err != nil {
		return "", fmt.Errorf("pedidos: insert item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("pedidos: create order: %w", err)
	}
	return orderID, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
