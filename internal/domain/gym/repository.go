package gym

import "context"

// IDAllocator hands out per-kind IDs. Repositories report the highest ID they
// load or save; services ask for the next one when creating.
type IDAllocator interface {
	LastID(kind Kind) int
	SaveLastID(kind Kind, lastID int) error
	NextID(kind Kind) int
}

// Every repository returns copies. Callers mutate the copies and write them
// back with Update or SaveAll.

type AdminRepository interface {
	LoadAll(ctx context.Context) ([]Admin, error)
	SaveAll(ctx context.Context, admins []Admin) error
	Add(ctx context.Context, admin *Admin) error
	FindByID(ctx context.Context, id int) (*Admin, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	Update(ctx context.Context, admins []Admin) error
	Delete(ctx context.Context, id int, admins []Admin) error
	Authenticate(ctx context.Context, email, password string) (*Admin, error)
}

type MemberRepository interface {
	LoadAll(ctx context.Context) ([]Member, error)
	SaveAll(ctx context.Context, members []Member) error
	Add(ctx context.Context, member *Member) error
	FindByID(ctx context.Context, id int) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	Update(ctx context.Context, members []Member) error
	Delete(ctx context.Context, id int, members []Member) error
}

type TrainerRepository interface {
	LoadAll(ctx context.Context) ([]Trainer, error)
	SaveAll(ctx context.Context, trainers []Trainer) error
	Add(ctx context.Context, trainer *Trainer) error
	FindByID(ctx context.Context, id int) (*Trainer, error)
	FindByEmail(ctx context.Context, email string) (*Trainer, error)
	Update(ctx context.Context, trainers []Trainer) error
	Delete(ctx context.Context, id int, trainers []Trainer) error
}
