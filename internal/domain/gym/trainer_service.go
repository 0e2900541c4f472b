package gym

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

type TrainerService struct {
	trainers TrainerRepository
	members  MemberRepository
	ids      IDAllocator
	metrics  Metrics
}

func NewTrainerService(trainers TrainerRepository, members MemberRepository, ids IDAllocator, opts ...Option) *TrainerService {
	o := buildOptions(opts)
	return &TrainerService{
		trainers: trainers,
		members:  members,
		ids:      ids,
		metrics:  o.metrics,
	}
}

func (s *TrainerService) AddTrainer(ctx context.Context, input CreateTrainerInput) (*Trainer, error) {
	input.normalize()
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	trainers, err := s.trainers.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trainers: %w", err)
	}
	if slices.IndexFunc(trainers, func(t Trainer) bool { return t.Email == input.Email }) != -1 {
		return nil, ErrEmailTaken
	}

	trainer := Trainer{
		User: User{
			ID:       s.ids.NextID(KindTrainer),
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
		},
		Specialty: input.Specialty,
	}

	if err := s.trainers.Add(ctx, &trainer); err != nil {
		return nil, fmt.Errorf("add trainer: %w", err)
	}

	s.metrics.AccountCreated(KindTrainer)
	return &trainer, nil
}

func (s *TrainerService) ListTrainers(ctx context.Context) ([]Trainer, error) {
	return s.trainers.LoadAll(ctx)
}

func (s *TrainerService) GetTrainer(ctx context.Context, id int) (*Trainer, error) {
	return s.trainers.FindByID(ctx, id)
}

func (s *TrainerService) SetSpecialty(ctx context.Context, id int, specialty string) (*Trainer, error) {
	specialty = strings.TrimSpace(specialty)
	if err := validateSpecialty(specialty); err != nil {
		return nil, err
	}

	return s.mutateTrainer(ctx, id, func(trainer *Trainer) error {
		trainer.Specialty = specialty
		return nil
	})
}

// AssignMember adds an existing member to the trainer's list. The eighth
// assignment is rejected with ErrCapacityExceeded and the list stays at seven.
func (s *TrainerService) AssignMember(ctx context.Context, trainerID, memberID int) (*Trainer, error) {
	if _, err := s.members.FindByID(ctx, memberID); err != nil {
		return nil, err
	}

	trainer, err := s.mutateTrainer(ctx, trainerID, func(trainer *Trainer) error {
		return trainer.Assign(memberID)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrCapacityExceeded):
			s.metrics.AssignmentRejected("capacity")
		case errors.Is(err, ErrAlreadyAssigned):
			s.metrics.AssignmentRejected("duplicate")
		}
		return nil, err
	}
	return trainer, nil
}

func (s *TrainerService) UnassignMember(ctx context.Context, trainerID, memberID int) (*Trainer, error) {
	return s.mutateTrainer(ctx, trainerID, func(trainer *Trainer) error {
		if !trainer.Unassign(memberID) {
			return ErrNotAssigned
		}
		return nil
	})
}

// ListAssignedMembers resolves the trainer's member IDs in assignment order.
func (s *TrainerService) ListAssignedMembers(ctx context.Context, trainerID int) ([]Member, error) {
	trainer, err := s.trainers.FindByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	if len(trainer.AssignedMembers) == 0 {
		return []Member{}, nil
	}

	members, err := s.members.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}

	byID := make(map[int]Member, len(members))
	for _, member := range members {
		byID[member.ID] = member
	}

	assigned := make([]Member, 0, len(trainer.AssignedMembers))
	for _, memberID := range trainer.AssignedMembers {
		if member, ok := byID[memberID]; ok {
			assigned = append(assigned, member)
		}
	}
	return assigned, nil
}

// DeleteTrainer removes only the trainer. Members are independent of their
// trainer and simply lose the assignment.
func (s *TrainerService) DeleteTrainer(ctx context.Context, id int) error {
	trainers, err := s.trainers.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load trainers: %w", err)
	}
	if slices.IndexFunc(trainers, func(t Trainer) bool { return t.ID == id }) == -1 {
		return ErrTrainerNotFound
	}

	if err := s.trainers.Delete(ctx, id, trainers); err != nil {
		return fmt.Errorf("delete trainer %d: %w", id, err)
	}

	s.metrics.AccountDeleted(KindTrainer)
	return nil
}

func (s *TrainerService) mutateTrainer(ctx context.Context, id int, mutate func(*Trainer) error) (*Trainer, error) {
	trainers, err := s.trainers.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trainers: %w", err)
	}

	idx := slices.IndexFunc(trainers, func(t Trainer) bool { return t.ID == id })
	if idx == -1 {
		return nil, ErrTrainerNotFound
	}

	if err := mutate(&trainers[idx]); err != nil {
		return nil, err
	}

	if err := s.trainers.Update(ctx, trainers); err != nil {
		return nil, fmt.Errorf("update trainers: %w", err)
	}

	updated := trainers[idx].Clone()
	return &updated, nil
}
