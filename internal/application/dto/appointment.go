package dto

import "barberbook/internal/domain/entity"

// AppointmentResponse is the DTO for sending one appointment to the client.
type AppointmentResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Time  string `json:"time"`
	Sent  bool   `json:"sent,omitempty"`
}

// DaySnapshot is the wholesale projection of one day bucket: the full sorted
// appointment list plus the derived lock flag. It replaces any previous
// snapshot entirely, there is no incremental patching.
type DaySnapshot struct {
	UserID       string                `json:"user_id"`
	Date         string                `json:"date"`
	Count        int                   `json:"count"`
	Locked       bool                  `json:"locked"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// CreateAppointmentRequest is the DTO for creating a new appointment.
type CreateAppointmentRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"` // raw, normalized by the schedule service
	Time  string `json:"time"`  // HH:MM
}

// EditAppointmentTimeRequest is the DTO for rescheduling an appointment
// within its day.
type EditAppointmentTimeRequest struct {
	Time string `json:"time"` // HH:MM
}

// DuplicateResponse reports where a duplicated appointment landed.
type DuplicateResponse struct {
	TargetDate  string              `json:"target_date"`
	Appointment AppointmentResponse `json:"appointment"`
}

// ToAppointmentResponse converts an entity.Appointment to its DTO.
func ToAppointmentResponse(a entity.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:    a.ID,
		Name:  a.Name,
		Phone: a.Phone,
		Time:  a.Time,
		Sent:  a.Sent,
	}
}

// ToAppointmentResponseList converts a slice of appointments, preserving order.
func ToAppointmentResponseList(appts []entity.Appointment) []AppointmentResponse {
	list := make([]AppointmentResponse, len(appts))
	for i, a := range appts {
		list[i] = ToAppointmentResponse(a)
	}
	return list
}
