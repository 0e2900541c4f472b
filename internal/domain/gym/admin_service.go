package gym

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

type AdminService struct {
	admins  AdminRepository
	ids     IDAllocator
	metrics Metrics
}

func NewAdminService(admins AdminRepository, ids IDAllocator, opts ...Option) *AdminService {
	o := buildOptions(opts)
	return &AdminService{
		admins:  admins,
		ids:     ids,
		metrics: o.metrics,
	}
}

// EnsureDefaultAdmin registers the bootstrap admin when no admin exists, so
// the system is never unreachable. It reports whether an admin was created.
func (s *AdminService) EnsureDefaultAdmin(ctx context.Context, input CreateAdminInput) (bool, error) {
	admins, err := s.admins.LoadAll(ctx)
	if err != nil {
		return false, fmt.Errorf("load admins: %w", err)
	}
	if len(admins) > 0 {
		return false, nil
	}

	if _, err := s.RegisterAdmin(ctx, input); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AdminService) RegisterAdmin(ctx context.Context, input CreateAdminInput) (*Admin, error) {
	input.normalize()
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	admins, err := s.admins.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load admins: %w", err)
	}
	if slices.IndexFunc(admins, func(a Admin) bool { return a.Email == input.Email }) != -1 {
		return nil, ErrEmailTaken
	}

	admin := Admin{
		User: User{
			ID:       s.ids.NextID(KindAdmin),
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
		},
	}

	if err := s.admins.Add(ctx, &admin); err != nil {
		return nil, fmt.Errorf("add admin: %w", err)
	}

	s.metrics.AccountCreated(KindAdmin)
	return &admin, nil
}

// Login compares the plain-text password. Admins restored from file or
// database storage only match through the repository's credential set.
func (s *AdminService) Login(ctx context.Context, email, password string) (*Admin, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		s.metrics.LoginAttempt(false)
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	admin, err := s.admins.Authenticate(ctx, email, password)
	if err != nil {
		s.metrics.LoginAttempt(false)
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	s.metrics.LoginAttempt(true)
	return admin, nil
}

func (s *AdminService) FindAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	return s.admins.FindByEmail(ctx, strings.TrimSpace(email))
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]Admin, error) {
	return s.admins.LoadAll(ctx)
}

// DeleteAdmin refuses to remove the last admin.
func (s *AdminService) DeleteAdmin(ctx context.Context, id int) error {
	admins, err := s.admins.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load admins: %w", err)
	}
	if slices.IndexFunc(admins, func(a Admin) bool { return a.ID == id }) == -1 {
		return ErrAdminNotFound
	}
	if len(admins) == 1 {
		return fmt.Errorf("%w: cannot delete the last admin", ErrValidation)
	}

	if err := s.admins.Delete(ctx, id, admins); err != nil {
		return fmt.Errorf("delete admin %d: %w", id, err)
	}

	s.metrics.AccountDeleted(KindAdmin)
	return nil
}
