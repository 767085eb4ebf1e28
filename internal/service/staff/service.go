package staff

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/staff"
)

type StaffServiceImpl struct {
	staff.StaffRepository
}

func NewStaffService(repo staff.StaffRepository) staff.StaffService {
	return &StaffServiceImpl{StaffRepository: repo}
}

// Create implements staff.StaffService.
func (s *StaffServiceImpl) Create(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}

	member := staff.StaffMember{
		Name:       strings.TrimSpace(req.Name),
		Department: strings.TrimSpace(req.Department),
		Position:   strings.TrimSpace(req.Position),
		Email:      trimmed(req.Email),
		Phone:      trimmed(req.Phone),
		JoinedOn:   parseDate(req.JoinedOn),
	}

	created, err := s.StaffRepository.Create(ctx, member)
	if err != nil {
		slog.Error("Failed to create staff member", "name", member.Name, "error", err)
		return staff.StaffResponse{}, fmt.Errorf("failed to create staff member: %w", err)
	}
	return staff.ToResponse(created), nil
}

// GetByID implements staff.StaffService.
func (s *StaffServiceImpl) GetByID(ctx context.Context, id string) (staff.StaffResponse, error) {
	m, err := s.StaffRepository.GetByID(ctx, id)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.ToResponse(m), nil
}

// List implements staff.StaffService.
func (s *StaffServiceImpl) List(ctx context.Context, filter staff.StaffFilter) ([]staff.StaffResponse, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Department = strings.TrimSpace(filter.Department)

	members, err := s.StaffRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	resp := make([]staff.StaffResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, staff.ToResponse(m))
	}
	return resp, nil
}

// Update implements staff.StaffService.
func (s *StaffServiceImpl) Update(ctx context.Context, id string, req staff.UpdateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}

	m, err := s.StaffRepository.GetByID(ctx, id)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	if req.Name != nil {
		m.Name = strings.TrimSpace(*req.Name)
	}
	if req.Department != nil {
		m.Department = strings.TrimSpace(*req.Department)
	}
	if req.Position != nil {
		m.Position = strings.TrimSpace(*req.Position)
	}
	if req.Email != nil {
		m.Email = trimmed(req.Email)
	}
	if req.Phone != nil {
		m.Phone = trimmed(req.Phone)
	}
	if req.JoinedOn != nil {
		// An empty string clears the join date.
		m.JoinedOn = parseDate(req.JoinedOn)
	}

	updated, err := s.StaffRepository.Update(ctx, m)
	if err != nil {
		slog.Error("Failed to update staff member", "staff_id", id, "error", err)
		return staff.StaffResponse{}, fmt.Errorf("failed to update staff member: %w", err)
	}
	return staff.ToResponse(updated), nil
}

// Delete implements staff.StaffService. Members with attendance rows are kept.
func (s *StaffServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.StaffRepository.GetByID(ctx, id); err != nil {
		return err
	}

	referenced, err := s.StaffRepository.HasAttendance(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check attendance references: %w", err)
	}
	if referenced {
		return staff.ErrStaffHasAttendance
	}
	return s.StaffRepository.Delete(ctx, id)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	d, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &d
}
