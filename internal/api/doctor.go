package api

import "context"

// DoctorService covers the doctor dashboard surface.
type DoctorService struct {
	c *Client
}

func (s *DoctorService) Profile(ctx context.Context) (*Doctor, error) {
	var out Doctor
	if err := s.c.get(ctx, "/doctor/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DoctorService) UpdateProfile(ctx context.Context, in ProfileInput) (*Doctor, error) {
	var out Doctor
	if err := s.c.put(ctx, "/doctor/profile", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DoctorService) ListAppointments(ctx context.Context, p ListParams) ([]Appointment, error) {
	var out []Appointment
	err := s.c.get(ctx, "/doctor/appointments", p.query(), &out)
	return out, err
}

func (s *DoctorService) UpdateAppointmentStatus(ctx context.Context, id, status string) (*Appointment, error) {
	var out Appointment
	in := struct {
		Status string `json:"status"`
	}{Status: status}
	if err := s.c.put(ctx, "/doctor/appointments/"+id+"/status", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DoctorService) SearchPatients(ctx context.Context, p ListParams) ([]Patient, error) {
	var out []Patient
	err := s.c.get(ctx, "/doctor/patients", p.query(), &out)
	return out, err
}

func (s *DoctorService) ListTreatments(ctx context.Context) ([]Treatment, error) {
	var out []Treatment
	err := s.c.get(ctx, "/doctor/treatments", nil, &out)
	return out, err
}

func (s *DoctorService) CreateTreatment(ctx context.Context, in TreatmentInput) (*Treatment, error) {
	var out Treatment
	if err := s.c.post(ctx, "/doctor/treatments", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
