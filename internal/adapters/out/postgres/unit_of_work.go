// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// The Unit of Work pattern maintains a list of objects affected by a business
// transaction and coordinates writing out changes and resolving concurrency problems.
//
// Key Features:
//   - Transaction management across the shipment leg, confirmation,
//     alternate recipient and age verification repositories
//   - Aggregate tracking for post-commit processing
//   - Row locks taken by the repositories live as long as the transaction
//
// Usage Patterns:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	record, err := uow.ConfirmationRepository().GetOrCreateForUpdate(ctx, candidate)
//	if err != nil {
//	    return err
//	}
//	// mutate record
//	if err := uow.ConfirmationRepository().Update(ctx, record); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and
// changes nothing, so the deferred rollback above is safe on every path.
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
package postgres

import (
	"context"

	"handoff/internal/adapters/out/postgres/ageverificationrepo"
	"handoff/internal/adapters/out/postgres/confirmationrepo"
	"handoff/internal/adapters/out/postgres/recipientrepo"
	"handoff/internal/adapters/out/postgres/shipmentrepo"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations.
//
// Repositories obtained before Begin run on the plain connection, so reads made
// that way see committed data only and take no locks.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or if the commit operation fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or if the rollback operation fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) ShipmentLegRepository() ports.ShipmentLegRepository {
	return shipmentrepo.NewGormShipmentLegRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ConfirmationRepository() ports.ConfirmationRepository {
	return confirmationrepo.NewGormConfirmationRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AlternateRecipientRepository() ports.AlternateRecipientRepository {
	return recipientrepo.NewGormAlternateRecipientRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AgeVerificationRepository() ports.AgeVerificationRepository {
	return ageverificationrepo.NewGormAgeVerificationRepository(uow.conn(), uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// Repository implementations call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregateCount reports how many writes the current unit of work has seen.
func (uow *GormUnitOfWork) TrackedAggregateCount() int {
	return len(uow.trackedAggregates)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
