package filestore

import (
	"context"

	"gym-app-go/internal/domain/gym"
	"gym-app-go/pkg/logger"
)

var _ gym.MemberRepository = (*MemberRepository)(nil)

type MemberRepository struct {
	table *table[gym.Member]
}

func NewMemberRepository(path string, ids gym.IDAllocator, log logger.Logger) *MemberRepository {
	return &MemberRepository{
		table: newTable(path, gym.KindMember, ids, memberCodec, gym.ErrMemberNotFound, log),
	}
}

func (r *MemberRepository) LoadAll(ctx context.Context) ([]gym.Member, error) {
	return r.table.loadAll()
}

func (r *MemberRepository) SaveAll(ctx context.Context, members []gym.Member) error {
	return r.table.saveAll(members)
}

func (r *MemberRepository) Add(ctx context.Context, member *gym.Member) error {
	return r.table.add(*member)
}

func (r *MemberRepository) FindByID(ctx context.Context, id int) (*gym.Member, error) {
	return r.table.findByID(id)
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*gym.Member, error) {
	return r.table.findByEmail(email)
}

func (r *MemberRepository) Update(ctx context.Context, members []gym.Member) error {
	return r.table.saveAll(members)
}

func (r *MemberRepository) Delete(ctx context.Context, id int, members []gym.Member) error {
	_, err := r.table.delete(id, members)
	return err
}
