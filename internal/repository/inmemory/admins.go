package inmemory

import (
	"context"

	"gym-app-go/internal/domain/gym"
)

var _ gym.AdminRepository = (*AdminRepository)(nil)

// AdminRepository keeps real passwords in memory, so every stored admin can
// authenticate.
type AdminRepository struct {
	records *records[gym.Admin]
}

func NewAdminRepository(ids gym.IDAllocator, seed ...gym.Admin) *AdminRepository {
	r := &AdminRepository{
		records: &records[gym.Admin]{
			kind:     gym.KindAdmin,
			ids:      ids,
			idOf:     func(a gym.Admin) int { return a.ID },
			emailOf:  func(a gym.Admin) string { return a.Email },
			clone:    identity[gym.Admin],
			notFound: gym.ErrAdminNotFound,
		},
	}
	_ = r.records.saveAll(seed)
	return r
}

func (r *AdminRepository) LoadAll(ctx context.Context) ([]gym.Admin, error) {
	return r.records.loadAll()
}

func (r *AdminRepository) SaveAll(ctx context.Context, admins []gym.Admin) error {
	return r.records.saveAll(admins)
}

func (r *AdminRepository) Add(ctx context.Context, admin *gym.Admin) error {
	return r.records.add(*admin)
}

func (r *AdminRepository) FindByID(ctx context.Context, id int) (*gym.Admin, error) {
	return r.records.findByID(id)
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*gym.Admin, error) {
	return r.records.findByEmail(email)
}

func (r *AdminRepository) Update(ctx context.Context, admins []gym.Admin) error {
	return r.records.saveAll(admins)
}

func (r *AdminRepository) Delete(ctx context.Context, id int, admins []gym.Admin) error {
	return r.records.delete(id, admins)
}

// Authenticate returns the first admin whose email and password both match.
func (r *AdminRepository) Authenticate(ctx context.Context, email, password string) (*gym.Admin, error) {
	admin, err := r.records.find(func(a gym.Admin) bool {
		return a.Email == email && a.Password == password
	})
	if err != nil {
		return nil, gym.ErrInvalidCredentials
	}
	return admin, nil
}
