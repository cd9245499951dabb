package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/session"
)

// AdminCmd groups the admin dashboard. Every subcommand passes the guard for
// the ADMIN scope before touching the API.
type AdminCmd struct {
	Doctors      AdminDoctorsCmd      `cmd:"" help:"Manage doctors"`
	Patients     AdminPatientsCmd     `cmd:"" help:"Browse patients"`
	Appointments AdminAppointmentsCmd `cmd:"" help:"Browse appointments"`
	Feedbacks    AdminFeedbacksCmd    `cmd:"" help:"Review patient feedback"`
}

func adminClient(globals *Globals, server string) (*api.AdminService, error) {
	rt, err := newRuntime(globals, server)
	if err != nil {
		return nil, err
	}

	client, err := rt.enterScope(session.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return client.Admin(), nil
}

type AdminDoctorsCmd struct {
	List   AdminDoctorsListCmd   `cmd:"" help:"List doctors"`
	Add    AdminDoctorsAddCmd    `cmd:"" help:"Add a doctor"`
	Update AdminDoctorsUpdateCmd `cmd:"" help:"Update a doctor"`
	Remove AdminDoctorsRemoveCmd `cmd:"" help:"Remove a doctor"`
}

type AdminDoctorsListCmd struct {
	Search string `help:"Filter by name or specialization" default:""`
	Page   int    `help:"Page number" default:"1"`
	Size   int    `help:"Page size" default:"20"`
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *AdminDoctorsListCmd) Run(ctx context.Context, globals *Globals) error {
	admin, err := adminClient(globals, c.Server)
	if err != nil {
		return err
	}

	doctors, err := admin.ListDoctors(ctx, api.ListParams{Page: c.Page, Size: c.Size, Search: c.Search})
	if err != nil {
		return fmt.Errorf("failed to list doctors: %w", err)
	}

	printDoctors(doctors)
	return nil
}

type AdminDoctorsAddCmd struct {
	Username       string `help:"Login username for the doctor" required:""`
	Password       string `help:"Initial password" required:""`
	FullName       string `help:"Full name" required:""`
	Email          string `help:"Email address" required:""`
	Specialization string `help:"Medical specialization" required:""`
	Phone          string `help:"Phone number" default:""`
	Server         string `help:"API base URL (overrides config file)" default:""`
}

func (c *AdminDoctorsAddCmd) Run(ctx context.Context, globals *Globals) error {
	admin, err := adminClient(globals, c.Server)
	if err != nil {
		return err
	}

	doctor, err := admin.CreateDoctor(ctx, api.DoctorInput{
		Username:       c.Username,
		Password:       c.Password,
		FullName:       c.FullName,
		Email:          c.Email,
		Specialization: c.Specialization,
		Phone:          c.Phone,
		Available:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to add doctor: %w", err)
	}

	fmt.Printf("Added doctor %s (%s)\n", doctor.FullName, doctor.ID)
	return nil
}

type AdminDoctorsUpdateCmd struct {
	ID             string `arg:"" help:"Doctor ID"`
	FullName       string `help:"Full name" default:""`
	Email          string `help:"Email address" default:""`
	Specialization string `help:"Medical specialization" default:""`
	Phone          string `help:"Phone number" default:""`
	Available      bool   `help:"Accepting appointments" default:"true" negatable:""`
	Server         string `help:"API base URL (overrides config file)" default:""`
}

func (c *AdminDoctorsUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	admin, err := adminClient(globals, c.Server)
	if err != nil {
		return err
	}

	doctor, err := admin.UpdateDoctor(ctx, c.ID, api.DoctorInput{
		FullName:       c.FullName,
		Email:          c.Email,
		Specialization: c.Specialization,
		Phone:          c.Phone,
		Available:      c.Available,
	})
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}

	fmt.Printf("Updated doctor %s (%s)\n", doctor.FullName, doctor.ID)
	return nil
}

type AdminDoctorsRemoveCmd struct {
	ID     string `arg:"" help:"Doctor ID"`
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *AdminDoctorsRemoveCmd) Run(ctx context.Context, globals *Globals) error {
	admin, err := adminClient(globals, c.Server)
	if err != nil {
		return err
	}

	if err := admin.DeleteDoctor(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to remove doctor: %w", err)
	}

	fmt.Printf("Removed doctor %s\n", c.ID)
	return nil
}

type AdminPatientsCmd struct {
	List AdminPatientsListCmd `cmd:"" help:"List patients"`
	Show AdminPatientsShowCmd `cmd:"" help:"Show one patient"`
}

type AdminPatientsListCmd struct {
	Search string `help:"Filter by name" default:""`
	Page   int    `help:"Page number" default:"1"`
	Size   int    `help:"Page size" default:"20"`
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *AdminPatientsListCmd) Run(ctx context.Context, globals *Globals) error {
	admin, err := adminClient(globals, c.Server)
	if err != nil {
		return err
	}

	patients, err := admin.ListPatients(ctx, api.ListParams{Page: c.Page, Size: c.Size, Search: c.Search})
	if err != nil {
		return fmt.Errorf("failed to list patients: %w", err)
	}

	printPatients(patients)
	return nil
}

type AdminPatientsShowCmd struct {
	ID     string `arg:"" help:"Patient ID"`
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *AdminPatientsShowCmd) Run(ctx context.Context, globals *Globals) error {
	admin, err := adminClient(globals, c.Server)
	if err != nil {
		return err
	}

	patient, err := admin.GetPatient(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to get patient: %w", err)
	}

	printPatients([]api.Patient{*patient})
	return nil
}

type AdminAppointmentsCmd struct {
	List AdminAppointmentsListCmd `cmd:"" help:"List appointments"`
}

type AdminAppointmentsListCmd struct {
	Page   int    `help:"Page number" default:"1"`
	Size   int    `help:"Page size" default:"20"`
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *AdminAppointmentsListCmd) Run(ctx context.Context, globals *Globals) error {
	admin, err := adminClient(globals, c.Server)
	if err != nil {
		return err
	}

	appointments, err := admin.ListAppointments(ctx, api.ListParams{Page: c.Page, Size: c.Size})
	if err != nil {
		return fmt.Errorf("failed to list appointments: %w", err)
	}

	printAppointments(appointments)
	return nil
}

type AdminFeedbacksCmd struct {
	List AdminFeedbacksListCmd `cmd:"" help:"List feedback entries"`
	Read AdminFeedbacksReadCmd `cmd:"" help:"Mark a feedback entry as read"`
}

type AdminFeedbacksListCmd struct {
	Page   int    `help:"Page number" default:"1"`
	Size   int    `help:"Page size" default:"20"`
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *AdminFeedbacksListCmd) Run(ctx context.Context, globals *Globals) error {
	admin, err := adminClient(globals, c.Server)
	if err != nil {
		return err
	}

	feedbacks, err := admin.ListFeedbacks(ctx, api.ListParams{Page: c.Page, Size: c.Size})
	if err != nil {
		return fmt.Errorf("failed to list feedback: %w", err)
	}

	printFeedbacks(feedbacks)
	return nil
}

type AdminFeedbacksReadCmd struct {
	ID     string `arg:"" help:"Feedback ID"`
	Server string `help:"API base URL (overrides config file)" default:""`
}

func (c *AdminFeedbacksReadCmd) Run(ctx context.Context, globals *Globals) error {
	admin, err := adminClient(globals, c.Server)
	if err != nil {
		return err
	}

	if err := admin.MarkFeedbackRead(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to mark feedback read: %w", err)
	}

	fmt.Printf("Marked feedback %s as read\n", c.ID)
	return nil
}

func printDoctors(doctors []api.Doctor) {
	if len(doctors) == 0 {
		fmt.Println("No doctors found.")
		return
	}

	fmt.Printf("%-36s %-25s %-20s %-25s %-9s\n",
		"ID", "Name", "Specialization", "Email", "Available")
	fmt.Println(strings.Repeat("─", 118))

	for _, d := range doctors {
		available := "no"
		if d.Available {
			available = "yes"
		}
		fmt.Printf("%-36s %-25s %-20s %-25s %-9s\n",
			d.ID,
			truncate(d.FullName, 25),
			truncate(d.Specialization, 20),
			truncate(d.Email, 25),
			available)
	}
}

func printPatients(patients []api.Patient) {
	if len(patients) == 0 {
		fmt.Println("No patients found.")
		return
	}

	fmt.Printf("%-36s %-25s %-25s %-15s\n", "ID", "Name", "Email", "Phone")
	fmt.Println(strings.Repeat("─", 103))

	for _, p := range patients {
		fmt.Printf("%-36s %-25s %-25s %-15s\n",
			p.ID,
			truncate(p.FullName, 25),
			truncate(p.Email, 25),
			truncate(p.Phone, 15))
	}
}

func printAppointments(appointments []api.Appointment) {
	if len(appointments) == 0 {
		fmt.Println("No appointments found.")
		return
	}

	fmt.Printf("%-36s %-20s %-20s %-12s %-11s %-10s\n",
		"ID", "Doctor", "Patient", "Date", "Time", "Status")
	fmt.Println(strings.Repeat("─", 112))

	for _, a := range appointments {
		fmt.Printf("%-36s %-20s %-20s %-12s %-11s %-10s\n",
			a.ID,
			truncate(a.DoctorName, 20),
			truncate(a.PatientName, 20),
			a.Date,
			a.TimeSlot,
			a.Status)
	}
}

func printFeedbacks(feedbacks []api.Feedback) {
	if len(feedbacks) == 0 {
		fmt.Println("No feedback found.")
		return
	}

	fmt.Printf("%-36s %-20s %-6s %-5s %-40s\n", "ID", "Patient", "Rating", "Read", "Message")
	fmt.Println(strings.Repeat("─", 110))

	for _, f := range feedbacks {
		read := "no"
		if f.Read {
			read = "yes"
		}
		fmt.Printf("%-36s %-20s %-6d %-5s %-40s\n",
			f.ID,
			truncate(f.PatientName, 20),
			f.Rating,
			read,
			truncate(f.Message, 40))
	}
}
