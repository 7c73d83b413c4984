package booking

import (
	"context"
	"errors"
	"fmt"

	"agendly/models"
	"agendly/services/catalog"
	"agendly/services/credits"
	"agendly/services/scheduling"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create books a new appointment for the calling consumer.
//
// The whole read-validate-write sequence runs under the provider's lock:
// the conflict check is only meaningful if no other booking for the same
// provider can commit between the check and the insert. With the lock held,
// two concurrent requests for overlapping ranges serialize and exactly one
// wins; the loser sees the winner's row and fails with SLOT_UNAVAILABLE.
func (svc *DefaultAppointmentService) Create(actor Actor, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	if actor.Role != RoleConsumer {
		return nil, NewBookingError(CodeForbidden, "only consumers can book appointments")
	}
	plan, ok := paymentPlans[req.PaymentMethod]
	if !ok {
		return nil, NewBookingError(CodeInvalidPaymentMethod, fmt.Sprintf("unknown payment method %q", req.PaymentMethod))
	}

	svc.Locks.Lock(req.ProviderID)
	defer svc.Locks.Unlock(req.ProviderID)

	service, err := svc.Catalog.GetService(req.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			return nil, NewBookingError(CodeServiceNotFound, fmt.Sprintf("service %s not found", req.ServiceID))
		case errors.Is(err, catalog.ErrCatalogUnavailable):
			return nil, NewBookingError(CodeCatalogUnavailable, "service catalog is unreachable")
		default:
			return nil, err
		}
	}

	start := req.Start
	end := start.Add(minutesDuration(service.DurationMinutes))

	conflict, err := svc.Scheduler.HasConflict(req.ProviderID, start, end, "")
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidTimeRange) {
			return nil, NewBookingError(CodeInvalidTimeRange, err.Error())
		}
		return nil, fmt.Errorf("conflict check failed: %w", err)
	}
	if conflict {
		return nil, NewBookingError(CodeSlotUnavailable, "slot no longer available")
	}

	now := svc.now()
	appt := &models.Appointment{
		ID:         uuid.New().String(),
		ProviderID: req.ProviderID,
		ConsumerID: actor.ID,
		ServiceID:  req.ServiceID,
		// Snapshot: never re-read from the catalog after this point.
		ServiceName:   service.Name,
		Price:         service.Price,
		Currency:      service.Currency,
		Start:         start,
		End:           end,
		Status:        models.StatusScheduled,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: plan.initialStatus,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if plan.paidUpfront {
		appt.AmountPaid = service.Price
	}

	// The redemption and the insert commit in the same transaction: a
	// booking can never consume a credit without producing a record, and
	// a failed insert never leaves a spent credit behind.
	err = svc.Tx(context.Background(), func(sc mongo.SessionContext) error {
		if plan.redeemsCredit {
			balance, err := svc.Ledger.Redeem(sc, actor.ID, req.ProviderID, req.ServiceID)
			if err != nil {
				return err
			}
			appt.PackageBalanceID = balance.ID
		}
		return svc.Repo.Create(sc, appt)
	})
	if err != nil {
		if errors.Is(err, credits.ErrNoCreditsAvailable) {
			return nil, NewBookingError(CodeNoCreditsAvailable, "no package credits available for this service")
		}
		return nil, fmt.Errorf("error creating appointment: %w", err)
	}

	svc.emit(models.EventAppointmentCreated, *appt)
	if svc.Reminders != nil {
		svc.Reminders.ScheduleReminder(*appt)
	}
	return appt, nil
}
