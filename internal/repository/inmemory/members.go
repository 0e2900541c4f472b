package inmemory

import (
	"context"

	"gym-app-go/internal/domain/gym"
)

var _ gym.MemberRepository = (*MemberRepository)(nil)

type MemberRepository struct {
	records *records[gym.Member]
}

// NewMemberRepository keeps members for the lifetime of the process, starting
// from seed. Seed records keep their IDs.
func NewMemberRepository(ids gym.IDAllocator, seed ...gym.Member) *MemberRepository {
	r := &MemberRepository{
		records: &records[gym.Member]{
			kind:     gym.KindMember,
			ids:      ids,
			idOf:     func(m gym.Member) int { return m.ID },
			emailOf:  func(m gym.Member) string { return m.Email },
			clone:    identity[gym.Member],
			notFound: gym.ErrMemberNotFound,
		},
	}
	_ = r.records.saveAll(seed)
	return r
}

func (r *MemberRepository) LoadAll(ctx context.Context) ([]gym.Member, error) {
	return r.records.loadAll()
}

func (r *MemberRepository) SaveAll(ctx context.Context, members []gym.Member) error {
	return r.records.saveAll(members)
}

func (r *MemberRepository) Add(ctx context.Context, member *gym.Member) error {
	return r.records.add(*member)
}

func (r *MemberRepository) FindByID(ctx context.Context, id int) (*gym.Member, error) {
	return r.records.findByID(id)
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*gym.Member, error) {
	return r.records.findByEmail(email)
}

func (r *MemberRepository) Update(ctx context.Context, members []gym.Member) error {
	return r.records.saveAll(members)
}

func (r *MemberRepository) Delete(ctx context.Context, id int, members []gym.Member) error {
	return r.records.delete(id, members)
}
