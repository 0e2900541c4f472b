package inmemory

import (
	"context"

	"gym-app-go/internal/domain/gym"
)

var _ gym.TrainerRepository = (*TrainerRepository)(nil)

type TrainerRepository struct {
	records *records[gym.Trainer]
}

func NewTrainerRepository(ids gym.IDAllocator, seed ...gym.Trainer) *TrainerRepository {
	r := &TrainerRepository{
		records: &records[gym.Trainer]{
			kind:     gym.KindTrainer,
			ids:      ids,
			idOf:     func(t gym.Trainer) int { return t.ID },
			emailOf:  func(t gym.Trainer) string { return t.Email },
			clone:    gym.Trainer.Clone,
			notFound: gym.ErrTrainerNotFound,
		},
	}
	_ = r.records.saveAll(seed)
	return r
}

func (r *TrainerRepository) LoadAll(ctx context.Context) ([]gym.Trainer, error) {
	return r.records.loadAll()
}

func (r *TrainerRepository) SaveAll(ctx context.Context, trainers []gym.Trainer) error {
	if err := gym.CheckCapacity(trainers...); err != nil {
		return err
	}
	return r.records.saveAll(trainers)
}

func (r *TrainerRepository) Add(ctx context.Context, trainer *gym.Trainer) error {
	if err := gym.CheckCapacity(*trainer); err != nil {
		return err
	}
	return r.records.add(*trainer)
}

func (r *TrainerRepository) FindByID(ctx context.Context, id int) (*gym.Trainer, error) {
	return r.records.findByID(id)
}

func (r *TrainerRepository) FindByEmail(ctx context.Context, email string) (*gym.Trainer, error) {
	return r.records.findByEmail(email)
}

func (r *TrainerRepository) Update(ctx context.Context, trainers []gym.Trainer) error {
	return r.SaveAll(ctx, trainers)
}

func (r *TrainerRepository) Delete(ctx context.Context, id int, trainers []gym.Trainer) error {
	return r.records.delete(id, trainers)
}
