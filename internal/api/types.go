package api

import "time"

// ListParams carries the paging and search parameters list endpoints accept.
type ListParams struct {
	Page   int
	Size   int
	Search string
}

// Doctor is a doctor record as returned by the API.
type Doctor struct {
	ID             string `json:"id"`
	Username       string `json:"username,omitempty"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Specialization string `json:"specialization"`
	Qualification  string `json:"qualification,omitempty"`
	Available      bool   `json:"available"`
}

// DoctorInput is the payload for creating or updating a doctor.
type DoctorInput struct {
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Specialization string `json:"specialization"`
	Qualification  string `json:"qualification,omitempty"`
	Available      bool   `json:"available"`
}

// Patient is a patient record.
type Patient struct {
	ID          string `json:"id"`
	Username    string `json:"username,omitempty"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ProfileInput is the payload for updating the caller's own profile.
type ProfileInput struct {
	FullName    string `json:"fullName,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Appointment is a booking between a patient and a doctor.
type Appointment struct {
	ID          string    `json:"id"`
	DoctorID    string    `json:"doctorId"`
	DoctorName  string    `json:"doctorName,omitempty"`
	PatientID   string    `json:"patientId"`
	PatientName string    `json:"patientName,omitempty"`
	Date        string    `json:"appointmentDate"`
	TimeSlot    string    `json:"timeSlot"`
	Status      string    `json:"status"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// AppointmentInput is the payload for booking an appointment.
type AppointmentInput struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"appointmentDate"`
	TimeSlot string `json:"timeSlot"`
	Reason   string `json:"reason,omitempty"`
}

// Treatment is a treatment record attached to an appointment.
type Treatment struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointmentId"`
	PatientID     string    `json:"patientId,omitempty"`
	PatientName   string    `json:"patientName,omitempty"`
	DoctorName    string    `json:"doctorName,omitempty"`
	Diagnosis     string    `json:"diagnosis"`
	Prescription  string    `json:"prescription,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
}

// TreatmentInput is the payload for recording a treatment.
type TreatmentInput struct {
	AppointmentID string `json:"appointmentId"`
	Diagnosis     string `json:"diagnosis"`
	Prescription  string `json:"prescription,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Feedback is a patient feedback entry.
type Feedback struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patientName,omitempty"`
	DoctorName  string    `json:"doctorName,omitempty"`
	Rating      int       `json:"rating"`
	Message     string    `json:"message"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// FeedbackInput is the payload for submitting feedback.
type FeedbackInput struct {
	DoctorID string `json:"doctorId,omitempty"`
	Rating   int    `json:"rating"`
	Message  string `json:"message"`
}

// PasswordChange is the payload for the change-password endpoint.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
