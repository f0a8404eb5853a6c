package scheduler

import "fmt"

// Kind classifies a booking failure. The four *_conflict kinds plus
// past_appointment map to HTTP 409 at the boundary; all of them are
// correctable by the caller and leave no state behind.
type Kind string

const (
	KindInvalidInput     Kind = "invalid_input"
	KindRoomConflict     Kind = "room_conflict"
	KindDoctorConflict   Kind = "doctor_conflict"
	KindPatientConflict  Kind = "patient_conflict"
	KindCapacityConflict Kind = "capacity_conflict"
	KindPastAppointment  Kind = "past_appointment"
	KindNotFound         Kind = "not_found"
)

// Error carries the violated rule and a message naming the offending
// resource and time window.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func errf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}
