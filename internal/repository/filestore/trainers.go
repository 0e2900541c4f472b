package filestore

import (
	"context"

	"gym-app-go/internal/domain/gym"
	"gym-app-go/pkg/logger"
)

var _ gym.TrainerRepository = (*TrainerRepository)(nil)

type TrainerRepository struct {
	table *table[gym.Trainer]
}

func NewTrainerRepository(path string, ids gym.IDAllocator, log logger.Logger) *TrainerRepository {
	return &TrainerRepository{
		table: newTable(path, gym.KindTrainer, ids, trainerCodec, gym.ErrTrainerNotFound, log),
	}
}

func (r *TrainerRepository) LoadAll(ctx context.Context) ([]gym.Trainer, error) {
	return r.table.loadAll()
}

func (r *TrainerRepository) SaveAll(ctx context.Context, trainers []gym.Trainer) error {
	if err := gym.CheckCapacity(trainers...); err != nil {
		return err
	}
	return r.table.saveAll(trainers)
}

func (r *TrainerRepository) Add(ctx context.Context, trainer *gym.Trainer) error {
	if err := gym.CheckCapacity(*trainer); err != nil {
		return err
	}
	return r.table.add(*trainer)
}

func (r *TrainerRepository) FindByID(ctx context.Context, id int) (*gym.Trainer, error) {
	return r.table.findByID(id)
}

func (r *TrainerRepository) FindByEmail(ctx context.Context, email string) (*gym.Trainer, error) {
	return r.table.findByEmail(email)
}

func (r *TrainerRepository) Update(ctx context.Context, trainers []gym.Trainer) error {
	return r.SaveAll(ctx, trainers)
}

func (r *TrainerRepository) Delete(ctx context.Context, id int, trainers []gym.Trainer) error {
	_, err := r.table.delete(id, trainers)
	return err
}
