package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hospital-booking-api/internal/model"
	"hospital-booking-api/internal/scheduler"
)

const apptCols = `id, room_id, doctor_id, scheduled_at, patient_name, created_at, updated_at`

// RoomBusy reports whether any appointment other than excludeID sits
// in the room within [start, end).
func (s *Store) RoomBusy(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error) {
	q := `SELECT EXISTS(
		SELECT 1 FROM appointments
		WHERE room_id = $1
		  AND scheduled_at >= $2 AND scheduled_at < $3`
	args := []any{roomID, start, end}

	if excludeID != "" {
		q += ` AND id != $4`
		args = append(args, excludeID)
	}
	q += `)`

	var exists bool
	err := s.q.QueryRow(ctx, q, args...).Scan(&exists)
	return exists, err
}

func (s *Store) DoctorBusy(ctx context.Context, doctorID string, start, end time.Time, excludeID string) (bool, error) {
	q := `SELECT EXISTS(
		SELECT 1 FROM appointments
		WHERE doctor_id = $1
		  AND scheduled_at >= $2 AND scheduled_at < $3`
	args := []any{doctorID, start, end}

	if excludeID != "" {
		q += ` AND id != $4`
		args = append(args, excludeID)
	}
	q += `)`

	var exists bool
	err := s.q.QueryRow(ctx, q, args...).Scan(&exists)
	return exists, err
}

// PatientAppointments lists the patient's appointments strictly inside
// (from, to), excluding excludeID. Bounds are exclusive: an
// appointment exactly two hours away does not violate the spacing
// rule.
func (s *Store) PatientAppointments(ctx context.Context, patientName string, from, to time.Time, excludeID string) ([]model.Appointment, error) {
	q := `SELECT ` + apptCols + ` FROM appointments
		WHERE patient_name = $1
		  AND scheduled_at > $2 AND scheduled_at < $3`
	args := []any{patientName, from, to}

	if excludeID != "" {
		q += ` AND id != $4`
		args = append(args, excludeID)
	}
	q += ` ORDER BY scheduled_at`

	rows, err := s.q.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (s *Store) DoctorDailyCount(ctx context.Context, doctorID string, dayStart, dayEnd time.Time, excludeID string) (int, error) {
	q := `SELECT COUNT(*) FROM appointments
		WHERE doctor_id = $1
		  AND scheduled_at >= $2 AND scheduled_at < $3`
	args := []any{doctorID, dayStart, dayEnd}

	if excludeID != "" {
		q += ` AND id != $4`
		args = append(args, excludeID)
	}

	var n int
	err := s.q.QueryRow(ctx, q, args...).Scan(&n)
	return n, err
}

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	err := s.q.QueryRow(ctx,
		`INSERT INTO appointments (id, room_id, doctor_id, scheduled_at, patient_name)
		 VALUES ($1,$2,$3,$4,$5)
		 RETURNING created_at, updated_at`,
		a.ID, a.RoomID, a.DoctorID, a.ScheduledAt, a.PatientName,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	return slotConflict(err)
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.q.QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.RoomID, &a.DoctorID, &a.ScheduledAt, &a.PatientName, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.q.Exec(ctx,
		`UPDATE appointments
		 SET room_id=$1, doctor_id=$2, scheduled_at=$3, patient_name=$4, updated_at=NOW()
		 WHERE id=$5`,
		a.RoomID, a.DoctorID, a.ScheduledAt, a.PatientName, a.ID,
	)
	return slotConflict(err)
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	_, err := s.q.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}

func (s *Store) SearchAppointments(ctx context.Context, f scheduler.SearchFilter) ([]model.Appointment, error) {
	q := `SELECT ` + apptCols + ` FROM appointments WHERE true`
	var args []any

	if f.Date != nil {
		day := time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), 0, 0, 0, 0, f.Date.Location())
		args = append(args, day, day.AddDate(0, 0, 1))
		q += fmt.Sprintf(` AND scheduled_at >= $%d AND scheduled_at < $%d`, len(args)-1, len(args))
	}
	if f.DoctorID != "" {
		args = append(args, f.DoctorID)
		q += fmt.Sprintf(` AND doctor_id = $%d`, len(args))
	}
	if f.RoomID != "" {
		args = append(args, f.RoomID)
		q += fmt.Sprintf(` AND room_id = $%d`, len(args))
	}
	q += ` ORDER BY scheduled_at`

	rows, err := s.q.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func scanAppointments(rows pgx.Rows) ([]model.Appointment, error) {
	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.RoomID, &a.DoctorID, &a.ScheduledAt, &a.PatientName, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// slotConflict translates a unique violation on one of the slot
// indexes into the conflict the validator would have reported had the
// competing row been visible. Two racing transactions can both pass
// the checks; the index is the tie-breaker.
func slotConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "appointments_room_slot_idx":
		return &scheduler.Error{Kind: scheduler.KindRoomConflict, Message: "room already has an appointment in that hour"}
	case "appointments_doctor_slot_idx":
		return &scheduler.Error{Kind: scheduler.KindDoctorConflict, Message: "doctor already has an appointment in that hour"}
	}
	return err
}
