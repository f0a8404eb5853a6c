package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hospital-booking-api/internal/model"
)

func (s *Store) GetDoctor(ctx context.Context, id string) (*model.Doctor, error) {
	d := &model.Doctor{}
	err := s.q.QueryRow(ctx,
		`SELECT id, first_name, last_name, second_last_name, specialty, created_at
		 FROM doctors WHERE id = $1`, id,
	).Scan(&d.ID, &d.FirstName, &d.LastName, &d.SecondLastName, &d.Specialty, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	rows, err := s.q.Query(ctx,
		`SELECT id, first_name, last_name, second_last_name, specialty, created_at
		 FROM doctors ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Doctor
	for rows.Next() {
		var d model.Doctor
		if err := rows.Scan(&d.ID, &d.FirstName, &d.LastName, &d.SecondLastName, &d.Specialty, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	r := &model.Room{}
	err := s.q.QueryRow(ctx,
		`SELECT id, room_number, floor, created_at FROM rooms WHERE id = $1`, id,
	).Scan(&r.ID, &r.Number, &r.Floor, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) ListRooms(ctx context.Context) ([]model.Room, error) {
	rows, err := s.q.Query(ctx,
		`SELECT id, room_number, floor, created_at FROM rooms ORDER BY room_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Room
	for rows.Next() {
		var r model.Room
		if err := rows.Scan(&r.ID, &r.Number, &r.Floor, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
