package api

import "context"

// PatientService covers the patient dashboard surface.
type PatientService struct {
	c *Client
}

func (s *PatientService) Profile(ctx context.Context) (*Patient, error) {
	var out Patient
	if err := s.c.get(ctx, "/patient/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PatientService) UpdateProfile(ctx context.Context, in ProfileInput) (*Patient, error) {
	var out Patient
	if err := s.c.put(ctx, "/patient/profile", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PatientService) ChangePassword(ctx context.Context, in PasswordChange) error {
	return s.c.post(ctx, "/patient/change-password", in, nil)
}

func (s *PatientService) BookAppointment(ctx context.Context, in AppointmentInput) (*Appointment, error) {
	var out Appointment
	if err := s.c.post(ctx, "/patient/appointments", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PatientService) ListAppointments(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	err := s.c.get(ctx, "/patient/appointments", nil, &out)
	return out, err
}

func (s *PatientService) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	var out Appointment
	if err := s.c.get(ctx, "/patient/appointments/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PatientService) CancelAppointment(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/patient/appointments/"+id)
}

func (s *PatientService) ListDoctors(ctx context.Context, p ListParams) ([]Doctor, error) {
	var out []Doctor
	err := s.c.get(ctx, "/patient/doctors", p.query(), &out)
	return out, err
}

func (s *PatientService) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	var out Doctor
	if err := s.c.get(ctx, "/patient/doctors/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PatientService) ListTreatments(ctx context.Context) ([]Treatment, error) {
	var out []Treatment
	err := s.c.get(ctx, "/patient/treatments", nil, &out)
	return out, err
}

func (s *PatientService) GetTreatment(ctx context.Context, id string) (*Treatment, error) {
	var out Treatment
	if err := s.c.get(ctx, "/patient/treatments/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PatientService) CreateFeedback(ctx context.Context, in FeedbackInput) (*Feedback, error) {
	var out Feedback
	if err := s.c.post(ctx, "/patient/feedbacks", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PatientService) ListFeedbacks(ctx context.Context) ([]Feedback, error) {
	var out []Feedback
	err := s.c.get(ctx, "/patient/feedbacks", nil, &out)
	return out, err
}
