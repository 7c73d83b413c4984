package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agendly/models"
	"agendly/services/scheduling"

	"go.mongodb.org/mongo-driver/mongo"
)

// Complete marks a scheduled appointment as done. Only the owning provider
// may invoke it. Pending cash/insurance payments auto-settle here: the
// consumer is assumed to have paid in person.
func (svc *DefaultAppointmentService) Complete(actor Actor, appointmentID string) (*models.Appointment, error) {
	appt, err := svc.load(appointmentID)
	if err != nil {
		return nil, err
	}
	if actor.Role != RoleProvider || actor.ID != appt.ProviderID {
		return nil, NewBookingError(CodeForbidden, "only the owning provider can complete an appointment")
	}

	svc.Locks.Lock(appt.ProviderID)
	defer svc.Locks.Unlock(appt.ProviderID)

	// Re-read under the lock: a concurrent cancel may have landed between
	// the ownership check and here.
	appt, err = svc.load(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.StatusScheduled {
		return nil, NewBookingError(CodeInvalidTransition, fmt.Sprintf("cannot complete an appointment in status %q", appt.Status))
	}

	if appt.PaymentStatus == models.PaymentStatusPending {
		appt.PaymentStatus = models.PaymentStatusSettled
		appt.AmountPaid = appt.Price
	}
	appt.Status = models.StatusCompleted
	appt.UpdatedAt = svc.now()

	if err := svc.Repo.Update(context.Background(), appt); err != nil {
		return nil, fmt.Errorf("error completing appointment %s: %w", appointmentID, err)
	}

	svc.emit(models.EventAppointmentCompleted, *appt)
	return appt, nil
}

// Cancel moves a scheduled appointment into the canceled state matching the
// caller's role. Package-paid appointments get their credit back; expiry of
// the balance does not block the refund.
func (svc *DefaultAppointmentService) Cancel(actor Actor, appointmentID string) (*models.Appointment, error) {
	appt, err := svc.load(appointmentID)
	if err != nil {
		return nil, err
	}

	var newStatus string
	switch {
	case actor.Role == RoleProvider && actor.ID == appt.ProviderID:
		newStatus = models.StatusCanceledByProvider
	case actor.Role == RoleConsumer && actor.ID == appt.ConsumerID:
		newStatus = models.StatusCanceledByPatient
	default:
		return nil, NewBookingError(CodeForbidden, "caller does not own this appointment")
	}

	svc.Locks.Lock(appt.ProviderID)
	defer svc.Locks.Unlock(appt.ProviderID)

	// Re-read under the lock: a concurrent transition may have landed.
	appt, err = svc.load(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.StatusScheduled {
		return nil, NewBookingError(CodeInvalidTransition, fmt.Sprintf("cannot cancel an appointment in status %q", appt.Status))
	}

	refunds := appt.PaymentMethod == models.PaymentPackageRedemption && appt.PackageBalanceID != ""

	appt.Status = newStatus
	if refunds {
		appt.PaymentStatus = models.PaymentStatusRefunded
	}
	appt.UpdatedAt = svc.now()

	// Status change and credit restitution commit together: a canceled
	// package booking always gets its credit back, and a failed refund
	// leaves the record scheduled.
	err = svc.Tx(context.Background(), func(sc mongo.SessionContext) error {
		if err := svc.Repo.Update(sc, appt); err != nil {
			return err
		}
		if refunds {
			return svc.Ledger.Refund(sc, appt.PackageBalanceID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error canceling appointment %s: %w", appointmentID, err)
	}

	svc.emit(models.EventAppointmentCanceled, *appt)
	return appt, nil
}

// Reschedule moves a scheduled appointment to a new start, preserving its
// original duration. The conflict check excludes the appointment's own
// current range; on conflict the record is left untouched.
func (svc *DefaultAppointmentService) Reschedule(actor Actor, appointmentID string, newStart time.Time) (*models.Appointment, error) {
	appt, err := svc.load(appointmentID)
	if err != nil {
		return nil, err
	}

	ownedByCaller := (actor.Role == RoleProvider && actor.ID == appt.ProviderID) ||
		(actor.Role == RoleConsumer && actor.ID == appt.ConsumerID)
	if !ownedByCaller {
		return nil, NewBookingError(CodeForbidden, "caller does not own this appointment")
	}

	svc.Locks.Lock(appt.ProviderID)
	defer svc.Locks.Unlock(appt.ProviderID)

	appt, err = svc.load(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.StatusScheduled {
		return nil, NewBookingError(CodeInvalidTransition, fmt.Sprintf("cannot reschedule an appointment in status %q", appt.Status))
	}

	duration := appt.End.Sub(appt.Start)
	newEnd := newStart.Add(duration)

	conflict, err := svc.Scheduler.HasConflict(appt.ProviderID, newStart, newEnd, appt.ID)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidTimeRange) {
			return nil, NewBookingError(CodeInvalidTimeRange, err.Error())
		}
		return nil, fmt.Errorf("conflict check failed: %w", err)
	}
	if conflict {
		return nil, NewBookingError(CodeSlotUnavailable, "requested slot is not available")
	}

	now := svc.now()
	appt.Start = newStart
	appt.End = newEnd
	// The record stays effectively active: rescheduling is an audit flag on
	// a scheduled appointment, not a terminal state.
	appt.Rescheduled = true
	appt.RescheduledAt = &now
	appt.UpdatedAt = now

	if err := svc.Repo.Update(context.Background(), appt); err != nil {
		return nil, fmt.Errorf("error rescheduling appointment %s: %w", appointmentID, err)
	}

	svc.emit(models.EventAppointmentRescheduled, *appt)
	return appt, nil
}

// ProviderHistory returns a provider's appointments, newest first.
func (svc *DefaultAppointmentService) ProviderHistory(providerID string, page, limit int64) ([]models.Appointment, error) {
	return svc.Repo.ListByProvider(providerID, page, limit)
}

// ConsumerHistory returns a consumer's appointments, newest first.
func (svc *DefaultAppointmentService) ConsumerHistory(consumerID string, page, limit int64) ([]models.Appointment, error) {
	return svc.Repo.ListByConsumer(consumerID, page, limit)
}

func (svc *DefaultAppointmentService) load(appointmentID string) (*models.Appointment, error) {
	appt, err := svc.Repo.GetByID(appointmentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewBookingError(CodeNotFound, fmt.Sprintf("appointment %s not found", appointmentID))
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", appointmentID, err)
	}
	return appt, nil
}
