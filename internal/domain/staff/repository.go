package staff

import "context"

type StaffRepository interface {
	Create(ctx context.Context, member StaffMember) (StaffMember, error)
	GetByID(ctx context.Context, id string) (StaffMember, error)
	List(ctx context.Context, filter StaffFilter) ([]StaffMember, error)
	Update(ctx context.Context, member StaffMember) (StaffMember, error)
	Delete(ctx context.Context, id string) error
	HasAttendance(ctx context.Context, id string) (bool, error)
}
