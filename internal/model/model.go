package model

import "time"

// Doctor and Room are reference data managed outside this service; the
// API only reads them.

type Doctor struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	SecondLastName string    `json:"second_last_name"`
	Specialty      string    `json:"specialty"`
	CreatedAt      time.Time `json:"created_at"`
}

type Room struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	Floor     int       `json:"floor"`
	CreatedAt time.Time `json:"created_at"`
}

type Appointment struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"room_id"`
	DoctorID    string    `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	PatientName string    `json:"patient_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
