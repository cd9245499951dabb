package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/session"
)

// DoctorCmd groups the doctor dashboard behind the DOCTOR scope guard.
type DoctorCmd struct {
	Profile      DoctorProfileCmd      `cmd:"" help:"Show your profile"`
	Appointments DoctorAppointmentsCmd `cmd:"" help:"Manage your appointments"`
	Patients     DoctorPatientsCmd     `cmd:"" help:"Search patients"`
	Treatments   DoctorTreatmentsCmd   `cmd:"" help:"Record and list treatments"`
}

func doctorClient(globals *Globals, server string) (*api.DoctorService, error) {
	rt, err := newRuntime(globals, server)
	if err != nil {
		return nil, err
	}

	client, err := rt.enterScope(session.RoleDoctor)
	if err != nil {
		return nil, err
	}

	return client.Doctor(), nil
}

type DoctorProfileCmd struct {
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *DoctorProfileCmd) Run(ctx context.Context, globals *Globals) error {
	doctor, err := doctorClient(globals, c.Server)
	if err != nil {
		return err
	}

	profile, err := doctor.Profile(ctx)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	fmt.Printf("Name:           %s\n", profile.FullName)
	fmt.Printf("Email:          %s\n", profile.Email)
	fmt.Printf("Specialization: %s\n", profile.Specialization)
	fmt.Printf("Phone:          %s\n", profile.Phone)
	fmt.Printf("Available:      %v\n", profile.Available)

	return nil
}

type DoctorAppointmentsCmd struct {
	List   DoctorAppointmentsListCmd   `cmd:"" help:"List your appointments"`
	Status DoctorAppointmentsStatusCmd `cmd:"" help:"Update an appointment's status"`
}

type DoctorAppointmentsListCmd struct {
	Page   int    `help:"Page number" default:"1"`
	Size   int    `help:"Page size" default:"20"`
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *DoctorAppointmentsListCmd) Run(ctx context.Context, globals *Globals) error {
	doctor, err := doctorClient(globals, c.Server)
	if err != nil {
		return err
	}

	appointments, err := doctor.ListAppointments(ctx, api.ListParams{Page: c.Page, Size: c.Size})
	if err != nil {
		return fmt.Errorf("failed to list appointments: %w", err)
	}

	printAppointments(appointments)
	return nil
}

type DoctorAppointmentsStatusCmd struct {
	ID     string `arg:"" help:"Appointment ID"`
	Status string `arg:"" help:"New status (CONFIRMED, COMPLETED, CANCELLED)"`
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *DoctorAppointmentsStatusCmd) Run(ctx context.Context, globals *Globals) error {
	doctor, err := doctorClient(globals, c.Server)
	if err != nil {
		return err
	}

	appointment, err := doctor.UpdateAppointmentStatus(ctx, c.ID, strings.ToUpper(c.Status))
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	fmt.Printf("Appointment %s is now %s\n", appointment.ID, appointment.Status)
	return nil
}

type DoctorPatientsCmd struct {
	Search DoctorPatientsSearchCmd `cmd:"" help:"Search patients by name"`
}

type DoctorPatientsSearchCmd struct {
	Query  string `arg:"" help:"Name to search for"`
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *DoctorPatientsSearchCmd) Run(ctx context.Context, globals *Globals) error {
	doctor, err := doctorClient(globals, c.Server)
	if err != nil {
		return err
	}

	patients, err := doctor.SearchPatients(ctx, api.ListParams{Search: c.Query})
	if err != nil {
		return fmt.Errorf("failed to search patients: %w", err)
	}

	printPatients(patients)
	return nil
}

type DoctorTreatmentsCmd struct {
	List DoctorTreatmentsListCmd `cmd:"" help:"List treatments you recorded"`
	Add  DoctorTreatmentsAddCmd  `cmd:"" help:"Record a treatment for an appointment"`
}

type DoctorTreatmentsListCmd struct {
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *DoctorTreatmentsListCmd) Run(ctx context.Context, globals *Globals) error {
	doctor, err := doctorClient(globals, c.Server)
	if err != nil {
		return err
	}

	treatments, err := doctor.ListTreatments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list treatments: %w", err)
	}

	printTreatments(treatments)
	return nil
}

type DoctorTreatmentsAddCmd struct {
	Appointment  string `help:"Appointment ID the treatment belongs to" required:""`
	Diagnosis    string `help:"Diagnosis" required:""`
	Prescription string `help:"Prescription" default:""`
	Notes        string `help:"Additional notes" default:""`
	Server       string `help:"API base URL (overrides config file)" default:""`
}

func (c *DoctorTreatmentsAddCmd) Run(ctx context.Context, globals *Globals) error {
	doctor, err := doctorClient(globals, c.Server)
	if err != nil {
		return err
	}

	treatment, err := doctor.CreateTreatment(ctx, api.TreatmentInput{
		AppointmentID: c.Appointment,
		Diagnosis:     c.Diagnosis,
		Prescription:  c.Prescription,
		Notes:         c.Notes,
	})
	if err != nil {
		return fmt.Errorf("failed to record treatment: %w", err)
	}

	fmt.Printf("Recorded treatment %s\n", treatment.ID)
	return nil
}

func printTreatments(treatments []api.Treatment) {
	if len(treatments) == 0 {
		fmt.Println("No treatments found.")
		return
	}

	fmt.Printf("%-36s %-20s %-30s %-25s\n", "ID", "Patient", "Diagnosis", "Prescription")
	fmt.Println(strings.Repeat("─", 114))

	for _, t := range treatments {
		fmt.Printf("%-36s %-20s %-30s %-25s\n",
			t.ID,
			truncate(t.PatientName, 20),
			truncate(t.Diagnosis, 30),
			truncate(t.Prescription, 25))
	}
}
