package filestore

import (
	"context"

	"gym-app-go/internal/domain/gym"
	"gym-app-go/internal/repository/credentials"
	"gym-app-go/pkg/logger"
)

var _ gym.AdminRepository = (*AdminRepository)(nil)

// AdminRepository stores admins without passwords. Authenticate only succeeds
// for emails present in both the file and the credential set, which holds the
// bootstrap admin and admins added by this process.
type AdminRepository struct {
	table       *table[gym.Admin]
	credentials *credentials.Set
}

func NewAdminRepository(path string, ids gym.IDAllocator, creds *credentials.Set, log logger.Logger) *AdminRepository {
	if creds == nil {
		creds = credentials.NewSet()
	}
	return &AdminRepository{
		table:       newTable(path, gym.KindAdmin, ids, adminCodec, gym.ErrAdminNotFound, log),
		credentials: creds,
	}
}

func (r *AdminRepository) LoadAll(ctx context.Context) ([]gym.Admin, error) {
	return r.table.loadAll()
}

func (r *AdminRepository) SaveAll(ctx context.Context, admins []gym.Admin) error {
	if err := r.table.saveAll(admins); err != nil {
		return err
	}
	for _, admin := range admins {
		r.remember(admin)
	}
	return nil
}

func (r *AdminRepository) Add(ctx context.Context, admin *gym.Admin) error {
	if err := r.table.add(*admin); err != nil {
		return err
	}
	r.remember(*admin)
	return nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id int) (*gym.Admin, error) {
	return r.table.findByID(id)
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*gym.Admin, error) {
	return r.table.findByEmail(email)
}

func (r *AdminRepository) Update(ctx context.Context, admins []gym.Admin) error {
	return r.SaveAll(ctx, admins)
}

func (r *AdminRepository) Delete(ctx context.Context, id int, admins []gym.Admin) error {
	removed, err := r.table.delete(id, admins)
	if err != nil {
		return err
	}
	r.credentials.Forget(removed.Email)
	return nil
}

// Authenticate never compares the stored placeholder.
func (r *AdminRepository) Authenticate(ctx context.Context, email, password string) (*gym.Admin, error) {
	admins, err := r.table.loadAll()
	if err != nil {
		return nil, err
	}

	for i := range admins {
		if admins[i].Email == email && r.credentials.Match(email, password) {
			return &admins[i], nil
		}
	}
	return nil, gym.ErrInvalidCredentials
}

func (r *AdminRepository) remember(admin gym.Admin) {
	if admin.Password == gym.PasswordPlaceholder {
		return
	}
	r.credentials.Remember(admin.Email, admin.Password)
}
