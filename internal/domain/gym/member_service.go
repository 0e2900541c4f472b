package gym

import (
	"context"
	"fmt"
	"slices"
	"time"
)

type MemberService struct {
	members  MemberRepository
	trainers TrainerRepository
	ids      IDAllocator
	metrics  Metrics
	now      func() time.Time
}

// NewMemberService needs the trainer repository because deleting a member
// removes it from every trainer first.
func NewMemberService(members MemberRepository, trainers TrainerRepository, ids IDAllocator, opts ...Option) *MemberService {
	o := buildOptions(opts)
	return &MemberService{
		members:  members,
		trainers: trainers,
		ids:      ids,
		metrics:  o.metrics,
		now:      o.now,
	}
}

func (s *MemberService) AddMember(ctx context.Context, input CreateMemberInput) (*Member, error) {
	input.normalize()
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	tier, err := ParseTier(input.Tier)
	if err != nil {
		return nil, err
	}

	joinDate, err := parseJoinDate(input.JoinDate, s.now())
	if err != nil {
		return nil, err
	}

	// Loading first brings the allocator up to the highest stored ID.
	members, err := s.members.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}
	if slices.IndexFunc(members, func(m Member) bool { return m.Email == input.Email }) != -1 {
		return nil, ErrEmailTaken
	}

	member := Member{
		User: User{
			ID:       s.ids.NextID(KindMember),
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
		},
		JoinDate:         joinDate,
		SubscriptionTier: tier,
	}

	if err := s.members.Add(ctx, &member); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}

	s.metrics.AccountCreated(KindMember)
	return &member, nil
}

func (s *MemberService) ListMembers(ctx context.Context) ([]Member, error) {
	return s.members.LoadAll(ctx)
}

func (s *MemberService) GetMember(ctx context.Context, id int) (*Member, error) {
	return s.members.FindByID(ctx, id)
}

func (s *MemberService) FindMemberByEmail(ctx context.Context, email string) (*Member, error) {
	return s.members.FindByEmail(ctx, email)
}

// SetSubscriptionTier parses input before touching storage, so unrecognized
// tiers leave the member unchanged.
func (s *MemberService) SetSubscriptionTier(ctx context.Context, id int, input string) (*Member, error) {
	tier, err := ParseTier(input)
	if err != nil {
		return nil, err
	}

	members, err := s.members.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}

	idx := slices.IndexFunc(members, func(m Member) bool { return m.ID == id })
	if idx == -1 {
		return nil, ErrMemberNotFound
	}

	members[idx].SubscriptionTier = tier
	if err := s.members.Update(ctx, members); err != nil {
		return nil, fmt.Errorf("update members: %w", err)
	}

	updated := members[idx]
	return &updated, nil
}

func (s *MemberService) UpdateMember(ctx context.Context, input UpdateMemberInput) (*Member, error) {
	input.normalize()
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	members, err := s.members.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}

	idx := slices.IndexFunc(members, func(m Member) bool { return m.ID == input.ID })
	if idx == -1 {
		return nil, ErrMemberNotFound
	}
	if slices.IndexFunc(members, func(m Member) bool { return m.Email == input.Email && m.ID != input.ID }) != -1 {
		return nil, ErrEmailTaken
	}

	members[idx].Name = input.Name
	members[idx].Email = input.Email
	if err := s.members.Update(ctx, members); err != nil {
		return nil, fmt.Errorf("update members: %w", err)
	}

	updated := members[idx]
	return &updated, nil
}

// DeleteMember purges the member from every trainer before removing the
// member record. If the trainers cannot be written the member stays.
func (s *MemberService) DeleteMember(ctx context.Context, id int) error {
	members, err := s.members.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load members: %w", err)
	}
	if slices.IndexFunc(members, func(m Member) bool { return m.ID == id }) == -1 {
		return ErrMemberNotFound
	}

	trainers, err := s.trainers.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load trainers: %w", err)
	}

	changed := false
	for i := range trainers {
		for trainers[i].Unassign(id) {
			changed = true
		}
	}

	if changed {
		if err := s.trainers.Update(ctx, trainers); err != nil {
			return fmt.Errorf("detach member %d from trainers: %w", id, err)
		}
	}

	if err := s.members.Delete(ctx, id, members); err != nil {
		return fmt.Errorf("delete member %d: %w", id, err)
	}

	s.metrics.AccountDeleted(KindMember)
	return nil
}
