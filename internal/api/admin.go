package api

import (
	"context"
	"fmt"
)

// AdminService covers the admin dashboard surface.
type AdminService struct {
	c *Client
}

func (s *AdminService) ListDoctors(ctx context.Context, p ListParams) ([]Doctor, error) {
	var out []Doctor
	err := s.c.get(ctx, "/admin/doctors", p.query(), &out)
	return out, err
}

func (s *AdminService) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	var out Doctor
	if err := s.c.get(ctx, "/admin/doctors/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) CreateDoctor(ctx context.Context, in DoctorInput) (*Doctor, error) {
	var out Doctor
	if err := s.c.post(ctx, "/admin/doctors", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) UpdateDoctor(ctx context.Context, id string, in DoctorInput) (*Doctor, error) {
	var out Doctor
	if err := s.c.put(ctx, "/admin/doctors/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) DeleteDoctor(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/admin/doctors/"+id)
}

func (s *AdminService) ListPatients(ctx context.Context, p ListParams) ([]Patient, error) {
	var out []Patient
	err := s.c.get(ctx, "/admin/patients", p.query(), &out)
	return out, err
}

func (s *AdminService) GetPatient(ctx context.Context, id string) (*Patient, error) {
	var out Patient
	if err := s.c.get(ctx, "/admin/patients/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) ListAppointments(ctx context.Context, p ListParams) ([]Appointment, error) {
	var out []Appointment
	err := s.c.get(ctx, "/admin/appointments", p.query(), &out)
	return out, err
}

func (s *AdminService) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	var out Appointment
	if err := s.c.get(ctx, "/admin/appointments/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) ListFeedbacks(ctx context.Context, p ListParams) ([]Feedback, error) {
	var out []Feedback
	err := s.c.get(ctx, "/admin/feedbacks", p.query(), &out)
	return out, err
}

func (s *AdminService) MarkFeedbackRead(ctx context.Context, id string) error {
	return s.c.put(ctx, fmt.Sprintf("/admin/feedbacks/%s/read", id), nil, nil)
}
