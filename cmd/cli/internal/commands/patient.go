package commands

import (
	"context"
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/session"
)

// PatientCmd groups the patient dashboard behind the PATIENT scope guard.
type PatientCmd struct {
	Profile      PatientProfileCmd      `cmd:"" help:"Show or update your profile"`
	Doctors      PatientDoctorsCmd      `cmd:"" help:"Browse doctors"`
	Appointments PatientAppointmentsCmd `cmd:"" help:"Book and manage appointments"`
	Treatments   PatientTreatmentsCmd   `cmd:"" help:"View your treatments"`
	Feedback     PatientFeedbackCmd     `cmd:"" help:"Submit and list feedback"`
	Password     PatientPasswordCmd     `cmd:"" help:"Change your password"`
}

func patientClient(globals *Globals, server string) (*api.PatientService, error) {
	rt, err := newRuntime(globals, server)
	if err != nil {
		return nil, err
	}

	client, err := rt.enterScope(session.RolePatient)
	if err != nil {
		return nil, err
	}

	return client.Patient(), nil
}

type PatientProfileCmd struct {
	Show   PatientProfileShowCmd   `cmd:"" help:"Show your profile"`
	Update PatientProfileUpdateCmd `cmd:"" help:"Update your profile"`
}

type PatientProfileShowCmd struct {
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *PatientProfileShowCmd) Run(ctx context.Context, globals *Globals) error {
	patient, err := patientClient(globals, c.Server)
	if err != nil {
		return err
	}

	profile, err := patient.Profile(ctx)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	fmt.Printf("Name:    %s\n", profile.FullName)
	fmt.Printf("Email:   %s\n", profile.Email)
	fmt.Printf("Phone:   %s\n", profile.Phone)
	fmt.Printf("Born:    %s\n", profile.DateOfBirth)
	fmt.Printf("Address: %s\n", profile.Address)

	return nil
}

type PatientProfileUpdateCmd struct {
	FullName string `help:"Full name" default:""`
	Email    string `help:"Email address" default:""`
	Phone    string `help:"Phone number" default:""`
	Address  string `help:"Address" default:""`
	Server   string `help:"API base URL (overrides config file)" default:""`
}

func (c *PatientProfileUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	patient, err := patientClient(globals, c.Server)
	if err != nil {
		return err
	}

	profile, err := patient.UpdateProfile(ctx, api.ProfileInput{
		FullName: c.FullName,
		Email:    c.Email,
		Phone:    c.Phone,
		Address:  c.Address,
	})
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	fmt.Printf("Updated profile for %s\n", profile.FullName)
	return nil
}

type PatientDoctorsCmd struct {
	List PatientDoctorsListCmd `cmd:"" help:"List doctors accepting appointments"`
}

type PatientDoctorsListCmd struct {
	Search string `help:"Filter by name or specialization" default:""`
	Page   int    `help:"Page number" default:"1"`
	Size   int    `help:"Page size" default:"20"`
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *PatientDoctorsListCmd) Run(ctx context.Context, globals *Globals) error {
	patient, err := patientClient(globals, c.Server)
	if err != nil {
		return err
	}

	doctors, err := patient.ListDoctors(ctx, api.ListParams{Page: c.Page, Size: c.Size, Search: c.Search})
	if err != nil {
		return fmt.Errorf("failed to list doctors: %w", err)
	}

	printDoctors(doctors)
	return nil
}

type PatientAppointmentsCmd struct {
	Book   PatientAppointmentsBookCmd   `cmd:"" help:"Book an appointment"`
	List   PatientAppointmentsListCmd   `cmd:"" help:"List your appointments"`
	Cancel PatientAppointmentsCancelCmd `cmd:"" help:"Cancel an appointment"`
}

type PatientAppointmentsBookCmd struct {
	Doctor string `help:"Doctor ID" required:""`
	Date   string `help:"Appointment date (YYYY-MM-DD)" required:""`
	Slot   string `help:"Time slot (e.g. 10:00-10:30)" required:""`
	Reason string `help:"Reason for the visit" default:""`
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *PatientAppointmentsBookCmd) Run(ctx context.Context, globals *Globals) error {
	patient, err := patientClient(globals, c.Server)
	if err != nil {
		return err
	}

	appointment, err := patient.BookAppointment(ctx, api.AppointmentInput{
		DoctorID: c.Doctor,
		Date:     c.Date,
		TimeSlot: c.Slot,
		Reason:   c.Reason,
	})
	if err != nil {
		return fmt.Errorf("failed to book appointment: %w", err)
	}

	fmt.Printf("Booked appointment %s with %s on %s %s\n",
		appointment.ID, appointment.DoctorName, appointment.Date, appointment.TimeSlot)
	return nil
}

type PatientAppointmentsListCmd struct {
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *PatientAppointmentsListCmd) Run(ctx context.Context, globals *Globals) error {
	patient, err := patientClient(globals, c.Server)
	if err != nil {
		return err
	}

	appointments, err := patient.ListAppointments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list appointments: %w", err)
	}

	printAppointments(appointments)
	return nil
}

type PatientAppointmentsCancelCmd struct {
	ID     string `arg:"" help:"Appointment ID"`
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *PatientAppointmentsCancelCmd) Run(ctx context.Context, globals *Globals) error {
	patient, err := patientClient(globals, c.Server)
	if err != nil {
		return err
	}

	if err := patient.CancelAppointment(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	fmt.Printf("Cancelled appointment %s\n", c.ID)
	return nil
}

type PatientTreatmentsCmd struct {
	List PatientTreatmentsListCmd `cmd:"" help:"List your treatments"`
}

type PatientTreatmentsListCmd struct {
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *PatientTreatmentsListCmd) Run(ctx context.Context, globals *Globals) error {
	patient, err := patientClient(globals, c.Server)
	if err != nil {
		return err
	}

	treatments, err := patient.ListTreatments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list treatments: %w", err)
	}

	printTreatments(treatments)
	return nil
}

type PatientFeedbackCmd struct {
	Add  PatientFeedbackAddCmd  `cmd:"" help:"Submit feedback"`
	List PatientFeedbackListCmd `cmd:"" help:"List your feedback"`
}

type PatientFeedbackAddCmd struct {
	Doctor  string `help:"Doctor ID the feedback is about" default:""`
	Rating  int    `help:"Rating from 1 to 5" required:""`
	Message string `help:"Feedback message" required:""`
	Server  string `help:"API base URL (overrides config file)" default:""`
}

func (c *PatientFeedbackAddCmd) Run(ctx context.Context, globals *Globals) error {
	patient, err := patientClient(globals, c.Server)
	if err != nil {
		return err
	}

	feedback, err := patient.CreateFeedback(ctx, api.FeedbackInput{
		DoctorID: c.Doctor,
		Rating:   c.Rating,
		Message:  c.Message,
	})
	if err != nil {
		return fmt.Errorf("failed to submit feedback: %w", err)
	}

	fmt.Printf("Submitted feedback %s\n", feedback.ID)
	return nil
}

type PatientFeedbackListCmd struct {
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *PatientFeedbackListCmd) Run(ctx context.Context, globals *Globals) error {
	patient, err := patientClient(globals, c.Server)
	if err != nil {
		return err
	}

	feedbacks, err := patient.ListFeedbacks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list feedback: %w", err)
	}

	printFeedbacks(feedbacks)
	return nil
}

type PatientPasswordCmd struct {
	Current string `help:"Current password" required:""`
	New     string `help:"New password" required:""`
	Server  string `help:"API base URL (overrides config file)" default:""`
}

func (c *PatientPasswordCmd) Run(ctx context.Context, globals *Globals) error {
	patient, err := patientClient(globals, c.Server)
	if err != nil {
		return err
	}

	if err := patient.ChangePassword(ctx, api.PasswordChange{
		CurrentPassword: c.Current,
		NewPassword:     c.New,
	}); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	fmt.Println("Password changed.")
	return nil
}
