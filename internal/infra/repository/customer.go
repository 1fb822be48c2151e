package repository

import (
	"context"
	"time"

	"pos-backoffice/internal/domain/customer"
	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/infra/db"
	"pos-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CustomerRepository struct {
	dbtx db.DBTX
}

func NewCustomerRepository(dbtx db.DBTX) *CustomerRepository {
	return &CustomerRepository{dbtx: dbtx}
}

// GetOrCreateByPhone creates the customer lazily on first rental. The insert
// tolerates a concurrent creation of the same phone number; the follow-up
// read then observes whichever row won.
func (r *CustomerRepository) GetOrCreateByPhone(ctx context.Context, phone customer.PhoneNumber, now time.Time) (*customer.Customer, error) {
	if existing, err := r.findByPhone(ctx, phone); err == nil {
		return existing, nil
	} else if !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}

	created := customer.NewCustomer(phone, now)
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO customers (id, phone_number, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone_number) DO NOTHING
	`, created.ID(), created.PhoneNumber().String(), created.CreatedAt())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create customer", err)
	}

	return r.findByPhone(ctx, phone)
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	var (
		rawPhone  string
		createdAt time.Time
	)
	err := r.dbtx.QueryRow(ctx, `
		SELECT phone_number, created_at FROM customers WHERE id = $1
	`, id).Scan(&rawPhone, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer", err)
	}
	phone, err := customer.NewPhoneNumber(rawPhone)
	if err != nil {
		return nil, infra.WrapRepoErr("stored phone number is malformed", err)
	}
	return customer.Reconstruct(id, phone, createdAt), nil
}

func (r *CustomerRepository) findByPhone(ctx context.Context, phone customer.PhoneNumber) (*customer.Customer, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
	)
	err := r.dbtx.QueryRow(ctx, `
		SELECT id, created_at FROM customers WHERE phone_number = $1
	`, phone.String()).Scan(&id, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer by phone", err)
	}
	return customer.Reconstruct(id, phone, createdAt), nil
}
