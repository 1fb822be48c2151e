package commands

import (
	"context"
	"errors"
	"time"

	"pos-backoffice/internal/domain/customer"
	"pos-backoffice/internal/domain/item"
	"pos-backoffice/internal/domain/rental"
	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/pkg/clock"
	"pos-backoffice/internal/pkg/errs"
	"pos-backoffice/internal/usecase/queries"
	"pos-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	actionRentalCreated  = "rental_created"
	actionRentalReturned = "rental_returned"
)

type CreateRentalInput struct {
	CustomerPhone string
	ItemID        int64
	Quantity      int
	EmployeeID    *uuid.UUID
}

// ReturnResult reports one processed return. Returns never refund the rental
// price; the only money that moves is the late fee.
type ReturnResult struct {
	Rental   *queries.RentalView `json:"rental"`
	DaysLate int                 `json:"days_late"`
	LateFee  decimal.Decimal     `json:"late_fee"`
}

// RentalCommands checks items out and back in. Unlike sales, a rental
// reserves rental-pool stock at creation, and a return both releases the
// stock and settles the late fee in the same transaction.
type RentalCommands interface {
	Create(ctx context.Context, input CreateRentalInput) (*queries.RentalView, error)
	ProcessReturn(ctx context.Context, rentalID uuid.UUID, employeeID *uuid.UUID) (*ReturnResult, error)
}

type rentalCommandsImpl struct {
	uow      shared.UnitOfWork
	activity shared.ActivityLogger
	settings shared.EngineSettings
	clock    clock.Clock
}

func NewRentalCommands(
	uow shared.UnitOfWork,
	activity shared.ActivityLogger,
	settings shared.EngineSettings,
	clock clock.Clock,
) RentalCommands {
	return &rentalCommandsImpl{
		uow:      uow,
		activity: activity,
		settings: settings,
		clock:    clock,
	}
}

func (c *rentalCommandsImpl) Create(ctx context.Context, input CreateRentalInput) (*queries.RentalView, error) {
	phone, err := customer.NewPhoneNumber(input.CustomerPhone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidPhoneNumber)
	}
	if input.Quantity <= 0 {
		return nil, errs.ErrInvalidQuantity
	}

	now := c.clock.Now()
	var result *queries.RentalView
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cust, err := tx.Customers().GetOrCreateByPhone(ctx, phone, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		it, err := tx.Items().FindByID(ctx, input.ItemID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrItemNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		// Sale-only items have a rental counter of zero in effect: the type
		// gate keeps them out of the rental pool regardless of the column.
		if !it.SupportsPool(item.PoolRental) {
			return errs.Mark(
				&item.InsufficientStockError{ItemID: input.ItemID, Pool: item.PoolRental},
				errs.ErrInsufficientStock,
			)
		}

		if err := tx.Ledger().Reserve(ctx, input.ItemID, item.PoolRental, input.Quantity); err != nil {
			return mapLedgerErr(err)
		}

		r, err := rental.NewRental(cust.ID(), input.ItemID, input.Quantity, it.Price(), now, c.settings.RentalPeriodDays)
		if err != nil {
			return mapRentalDomainErr(err)
		}
		if err := tx.Rentals().Create(ctx, r); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = rentalViewFromDomain(r, phone.String(), it.Name())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.EmployeeID != nil {
		c.activity.Log(ctx, *input.EmployeeID, actionRentalCreated)
	}
	return result, nil
}

// ProcessReturn closes the rental, releases its rental-pool stock and records
// a return transaction with the late fee owed. Returning an already-returned
// rental fails with AlreadyReturned and changes nothing, so retried requests
// are safe.
func (c *rentalCommandsImpl) ProcessReturn(ctx context.Context, rentalID uuid.UUID, employeeID *uuid.UUID) (*ReturnResult, error) {
	now := c.clock.Now()
	var result *ReturnResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Rentals().FindByIDForUpdate(ctx, rentalID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrRentalNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		daysLate := r.DaysLate(now)
		if err := r.MarkReturned(now, c.settings.LateFeeRate); err != nil {
			return mapRentalDomainErr(err)
		}
		if err := tx.Rentals().Save(ctx, r); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := tx.Ledger().Release(ctx, r.ItemID(), item.PoolRental, r.Quantity()); err != nil {
			return mapLedgerErr(err)
		}

		ret := rental.NewReturnTransaction(r, daysLate, employeeID, now)
		if err := tx.Returns().Create(ctx, ret); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		it, err := tx.Items().FindByID(ctx, r.ItemID())
		itemName := ""
		if err == nil {
			itemName = it.Name()
		}
		phone := ""
		if cust, err := tx.Customers().FindByID(ctx, r.CustomerID()); err == nil {
			phone = cust.PhoneNumber().String()
		}

		result = &ReturnResult{
			Rental:   rentalViewFromDomain(r, phone, itemName),
			DaysLate: daysLate,
			LateFee:  r.LateFee(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if employeeID != nil {
		c.activity.Log(ctx, *employeeID, actionRentalReturned)
	}
	return result, nil
}

func mapRentalDomainErr(err error) error {
	switch {
	case errors.Is(err, rental.ErrAlreadyReturned):
		return errs.Mark(err, errs.ErrAlreadyReturned)
	case errors.Is(err, rental.ErrInvalidQuantity):
		return errs.Mark(err, errs.ErrInvalidQuantity)
	default:
		return err
	}
}

func rentalViewFromDomain(r *rental.Rental, phone, itemName string) *queries.RentalView {
	var returnDate *time.Time
	if r.ReturnDate() != nil {
		d := *r.ReturnDate()
		returnDate = &d
	}
	return &queries.RentalView{
		ID:            r.ID(),
		CustomerPhone: phone,
		ItemID:        r.ItemID(),
		ItemName:      itemName,
		Quantity:      r.Quantity(),
		UnitPrice:     r.UnitPrice(),
		RentalDate:    r.RentalDate(),
		DueDate:       r.DueDate(),
		ReturnDate:    returnDate,
		IsReturned:    r.IsReturned(),
		LateFee:       r.LateFee(),
	}
}
