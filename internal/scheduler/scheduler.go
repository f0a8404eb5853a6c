// Package scheduler decides whether a proposed appointment may be
// committed. Every booking and reschedule runs an ordered sequence of
// availability checks against the store; the first violated rule wins.
package scheduler

import (
	"context"
	"strings"
	"time"

	"hospital-booking-api/internal/model"
)

// maxDailyPerDoctor caps a doctor's appointments per calendar date.
// The cap is inclusive: 8 existing bookings already reject the next.
const maxDailyPerDoctor = 8

// patientSpacing is the minimum separation between two appointments of
// the same patient, applied to the raw timestamps as an open interval.
const patientSpacing = 2 * time.Hour

// SearchFilter narrows Search results. Zero-valued fields are ignored;
// set fields combine with logical AND. The date filter matches any
// appointment on that calendar day.
type SearchFilter struct {
	Date     *time.Time
	DoctorID string
	RoomID   string
}

// Store is the persistence contract the scheduler decides against.
// excludeID, when non-empty, removes that appointment from the
// conflict search so a record never conflicts with its own saved
// state. Lookups return (nil, nil) when the row does not exist.
type Store interface {
	RoomBusy(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error)
	DoctorBusy(ctx context.Context, doctorID string, start, end time.Time, excludeID string) (bool, error)
	PatientAppointments(ctx context.Context, patientName string, from, to time.Time, excludeID string) ([]model.Appointment, error)
	DoctorDailyCount(ctx context.Context, doctorID string, dayStart, dayEnd time.Time, excludeID string) (int, error)

	GetDoctor(ctx context.Context, id string) (*model.Doctor, error)
	GetRoom(ctx context.Context, id string) (*model.Room, error)

	CreateAppointment(ctx context.Context, a *model.Appointment) error
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	UpdateAppointment(ctx context.Context, a *model.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
	SearchAppointments(ctx context.Context, f SearchFilter) ([]model.Appointment, error)

	// InTx runs fn with every store call bound to one consistent
	// snapshot. The conflict checks and the write that follows them
	// must not observe rows committed in between.
	InTx(ctx context.Context, fn func(Store) error) error
}

type Scheduler struct {
	store Store
}

func New(store Store) *Scheduler {
	return &Scheduler{store: store}
}

// Book validates a new appointment and commits it. On success the
// store has assigned a.ID.
func (s *Scheduler) Book(ctx context.Context, a *model.Appointment) error {
	if a.RoomID == "" || a.DoctorID == "" || a.ScheduledAt.IsZero() || strings.TrimSpace(a.PatientName) == "" {
		return errf(KindInvalidInput, "room, doctor, time and patient name are all required")
	}
	return s.store.InTx(ctx, func(tx Store) error {
		if err := runChecks(ctx, tx, a, ""); err != nil {
			return err
		}
		return tx.CreateAppointment(ctx, a)
	})
}

// Reschedule replaces the room, doctor, time and patient name of an
// existing appointment. The stored appointment must still be in the
// future. Conflict rules re-run, with the record excluded from its own
// searches, only when the requested time differs from the stored one;
// without a time change no time-based conflict can newly arise.
func (s *Scheduler) Reschedule(ctx context.Context, id string, upd *model.Appointment) (*model.Appointment, error) {
	var out *model.Appointment
	err := s.store.InTx(ctx, func(tx Store) error {
		existing, err := tx.GetAppointment(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return errf(KindNotFound, "appointment %s not found", id)
		}
		if !existing.ScheduledAt.After(time.Now()) {
			return errf(KindPastAppointment, "appointment %s already took place and can no longer be modified", id)
		}
		if !upd.ScheduledAt.Equal(existing.ScheduledAt) {
			if err := runChecks(ctx, tx, upd, id); err != nil {
				return err
			}
		}
		existing.RoomID = upd.RoomID
		existing.DoctorID = upd.DoctorID
		existing.ScheduledAt = upd.ScheduledAt
		existing.PatientName = upd.PatientName
		if err := tx.UpdateAppointment(ctx, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	return out, err
}

// Cancel removes an appointment. Only future appointments can be
// cancelled; a past one stays on record.
func (s *Scheduler) Cancel(ctx context.Context, id string) error {
	return s.store.InTx(ctx, func(tx Store) error {
		a, err := tx.GetAppointment(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return errf(KindNotFound, "appointment %s not found", id)
		}
		if !a.ScheduledAt.After(time.Now()) {
			return errf(KindPastAppointment, "appointment %s already took place and can no longer be cancelled", id)
		}
		return tx.DeleteAppointment(ctx, id)
	})
}

func (s *Scheduler) Get(ctx context.Context, id string) (*model.Appointment, error) {
	a, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errf(KindNotFound, "appointment %s not found", id)
	}
	return a, nil
}

func (s *Scheduler) Search(ctx context.Context, f SearchFilter) ([]model.Appointment, error) {
	return s.store.SearchAppointments(ctx, f)
}

// runChecks is the shared conflict sequence for booking and
// rescheduling. Order matters: room, doctor, patient spacing, daily
// cap. The first violation short-circuits the rest.
func runChecks(ctx context.Context, st Store, a *model.Appointment, excludeID string) error {
	room, err := st.GetRoom(ctx, a.RoomID)
	if err != nil {
		return err
	}
	if room == nil {
		return errf(KindNotFound, "room %s not found", a.RoomID)
	}
	doctor, err := st.GetDoctor(ctx, a.DoctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return errf(KindNotFound, "doctor %s not found", a.DoctorID)
	}

	start, end := HourWindow(a.ScheduledAt)

	busy, err := st.RoomBusy(ctx, a.RoomID, start, end, excludeID)
	if err != nil {
		return err
	}
	if busy {
		return errf(KindRoomConflict, "room %d already has an appointment between %s and %s",
			room.Number, start.Format("15:04"), end.Format("15:04"))
	}

	busy, err = st.DoctorBusy(ctx, a.DoctorID, start, end, excludeID)
	if err != nil {
		return err
	}
	if busy {
		return errf(KindDoctorConflict, "Dr. %s already has an appointment between %s and %s",
			doctor.LastName, start.Format("15:04"), end.Format("15:04"))
	}

	near, err := st.PatientAppointments(ctx, a.PatientName,
		a.ScheduledAt.Add(-patientSpacing), a.ScheduledAt.Add(patientSpacing), excludeID)
	if err != nil {
		return err
	}
	if len(near) > 0 {
		return errf(KindPatientConflict, "patient %s has appointments too close to the requested time (minimum 2 hours apart)",
			a.PatientName)
	}

	dayStart := time.Date(a.ScheduledAt.Year(), a.ScheduledAt.Month(), a.ScheduledAt.Day(), 0, 0, 0, 0, a.ScheduledAt.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	n, err := st.DoctorDailyCount(ctx, a.DoctorID, dayStart, dayEnd, excludeID)
	if err != nil {
		return err
	}
	if n >= maxDailyPerDoctor {
		return errf(KindCapacityConflict, "Dr. %s already has the maximum of %d appointments on %s",
			doctor.LastName, maxDailyPerDoctor, dayStart.Format("2006-01-02"))
	}
	return nil
}
