package gym_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gym-app-go/internal/domain/gym"
	"gym-app-go/internal/idalloc"
	"gym-app-go/internal/repository/filestore"
	"gym-app-go/internal/repository/inmemory"
	"gym-app-go/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMetrics struct {
	created  map[gym.Kind]int
	deleted  map[gym.Kind]int
	rejected map[string]int
	logins   map[bool]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		created:  make(map[gym.Kind]int),
		deleted:  make(map[gym.Kind]int),
		rejected: make(map[string]int),
		logins:   make(map[bool]int),
	}
}

func (m *recordingMetrics) AccountCreated(kind gym.Kind) { m.created[kind]++ }

func (m *recordingMetrics) AccountDeleted(kind gym.Kind) { m.deleted[kind]++ }

func (m *recordingMetrics) AssignmentRejected(reason string) { m.rejected[reason]++ }

func (m *recordingMetrics) LoginAttempt(success bool) { m.logins[success]++ }

// failingTrainers rejects every write, leaving reads to the embedded repository.
type failingTrainers struct {
	*inmemory.TrainerRepository
}

func (failingTrainers) Update(ctx context.Context, trainers []gym.Trainer) error {
	return gym.ErrStorageUnavailable
}

type fixture struct {
	ids      *idalloc.Allocator
	members  *inmemory.MemberRepository
	trainers *inmemory.TrainerRepository
	admins   *inmemory.AdminRepository
	metrics  *recordingMetrics

	memberSvc  *gym.MemberService
	trainerSvc *gym.TrainerService
	adminSvc   *gym.AdminService
}

// fileFixture runs the services on top of the flat-file repositories.
type fileFixture struct {
	dir        string
	memberSvc  *gym.MemberService
	trainerSvc *gym.TrainerService
	adminSvc   *gym.AdminService
}

func newFileFixture(t *testing.T) *fileFixture {
	t.Helper()
	dir := t.TempDir()
	ids := idalloc.New()
	log := logger.Nop()
	members := filestore.NewMemberRepository(filepath.Join(dir, "members.txt"), ids, log)
	trainers := filestore.NewTrainerRepository(filepath.Join(dir, "trainers.txt"), ids, log)
	admins := filestore.NewAdminRepository(filepath.Join(dir, "admins.txt"), ids, nil, log)

	return &fileFixture{
		dir:        dir,
		memberSvc:  gym.NewMemberService(members, trainers, ids),
		trainerSvc: gym.NewTrainerService(trainers, members, ids),
		adminSvc:   gym.NewAdminService(admins, ids),
	}
}

func (f *fileFixture) lines(t *testing.T, name string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{ids: idalloc.New(), metrics: newRecordingMetrics()}
	f.members = inmemory.NewMemberRepository(f.ids)
	f.trainers = inmemory.NewTrainerRepository(f.ids)
	f.admins = inmemory.NewAdminRepository(f.ids)

	clock := gym.WithClock(func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) })
	metrics := gym.WithMetrics(f.metrics)
	f.memberSvc = gym.NewMemberService(f.members, f.trainers, f.ids, clock, metrics)
	f.trainerSvc = gym.NewTrainerService(f.trainers, f.members, f.ids, metrics)
	f.adminSvc = gym.NewAdminService(f.admins, f.ids, metrics)
	return f
}

func (f *fixture) addMember(t *testing.T, email string) *gym.Member {
	t.Helper()
	member, err := f.memberSvc.AddMember(context.Background(), gym.CreateMemberInput{
		Name:     "Member " + email,
		Email:    email,
		Password: "secret",
	})
	require.NoError(t, err)
	return member
}

func (f *fixture) addTrainer(t *testing.T, email string) *gym.Trainer {
	t.Helper()
	trainer, err := f.trainerSvc.AddTrainer(context.Background(), gym.CreateTrainerInput{
		Name:      "Trainer " + email,
		Email:     email,
		Password:  "secret",
		Specialty: "Cardio",
	})
	require.NoError(t, err)
	return trainer
}

func TestAddMemberAssignsIncreasingIDs(t *testing.T) {
	f := newFixture(t)

	first := f.addMember(t, "a@gmail.com")
	second := f.addMember(t, "b@gmail.com")
	third := f.addMember(t, "c@gmail.com")

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 3, third.ID)
	assert.Equal(t, "2024-06-01", first.JoinDate)
	assert.Equal(t, gym.TierNone, first.SubscriptionTier)
	assert.Equal(t, 3, f.metrics.created[gym.KindMember])
}

func TestAddMemberContinuesAfterHighestStoredID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.members.SaveAll(ctx, []gym.Member{
		{User: gym.User{ID: 3, Email: "a@gmail.com"}},
		{User: gym.User{ID: 7, Email: "b@gmail.com"}},
		{User: gym.User{ID: 2, Email: "c@gmail.com"}},
	}))

	member := f.addMember(t, "d@gmail.com")

	assert.Equal(t, 8, member.ID)
}

func TestAddMemberValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addMember(t, "taken@gmail.com")

	cases := map[string]gym.CreateMemberInput{
		"missing name":  {Email: "x@gmail.com", Password: "pw"},
		"bad email":     {Name: "X", Email: "not-an-email", Password: "pw"},
		"comma in name": {Name: "Doe, John", Email: "x@gmail.com", Password: "pw"},
		"bad tier":      {Name: "X", Email: "x@gmail.com", Password: "pw", Tier: "gold"},
		"bad date":      {Name: "X", Email: "x@gmail.com", Password: "pw", JoinDate: "01/02/2024"},
		"email taken":   {Name: "X", Email: "taken@gmail.com", Password: "pw"},
		"newline":       {Name: "Bob\nSmith", Email: "x@gmail.com", Password: "pw"},
		"carriage ret":  {Name: "Bob\rSmith", Email: "x@gmail.com", Password: "pw"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.memberSvc.AddMember(ctx, input)
			assert.ErrorIs(t, err, gym.ErrValidation)
		})
	}

	members, err := f.memberSvc.ListMembers(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestSetSubscriptionTier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := f.addMember(t, "a@gmail.com")

	updated, err := f.memberSvc.SetSubscriptionTier(ctx, member.ID, " P ")
	require.NoError(t, err)
	assert.Equal(t, gym.TierPremium, updated.SubscriptionTier)

	_, err = f.memberSvc.SetSubscriptionTier(ctx, member.ID, "xyz")
	assert.ErrorIs(t, err, gym.ErrInvalidTier)

	stored, err := f.memberSvc.GetMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, gym.TierPremium, stored.SubscriptionTier)

	_, err = f.memberSvc.SetSubscriptionTier(ctx, 99, "1")
	assert.ErrorIs(t, err, gym.ErrMemberNotFound)
}

func TestUpdateMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := f.addMember(t, "a@gmail.com")
	f.addMember(t, "b@gmail.com")

	updated, err := f.memberSvc.UpdateMember(ctx, gym.UpdateMemberInput{ID: member.ID, Name: " Ana ", Email: "ana@gmail.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)

	found, err := f.memberSvc.FindMemberByEmail(ctx, "ana@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, member.ID, found.ID)

	_, err = f.memberSvc.UpdateMember(ctx, gym.UpdateMemberInput{ID: member.ID, Name: "Ana", Email: "b@gmail.com"})
	assert.ErrorIs(t, err, gym.ErrEmailTaken)
}

func TestAssignMemberCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trainer := f.addTrainer(t, "coach@gmail.com")

	for i := 0; i < gym.MaxAssignedMembers; i++ {
		member := f.addMember(t, string(rune('a'+i))+"@gmail.com")
		_, err := f.trainerSvc.AssignMember(ctx, trainer.ID, member.ID)
		require.NoError(t, err)
	}
	eighth := f.addMember(t, "h@gmail.com")

	_, err := f.trainerSvc.AssignMember(ctx, trainer.ID, eighth.ID)
	assert.ErrorIs(t, err, gym.ErrCapacityExceeded)

	stored, err := f.trainerSvc.GetTrainer(ctx, trainer.ID)
	require.NoError(t, err)
	assert.Len(t, stored.AssignedMembers, gym.MaxAssignedMembers)
	assert.Equal(t, 1, f.metrics.rejected["capacity"])
}

func TestAssignMemberRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trainer := f.addTrainer(t, "coach@gmail.com")
	member := f.addMember(t, "a@gmail.com")

	_, err := f.trainerSvc.AssignMember(ctx, trainer.ID, 42)
	assert.ErrorIs(t, err, gym.ErrMemberNotFound)

	_, err = f.trainerSvc.AssignMember(ctx, 42, member.ID)
	assert.ErrorIs(t, err, gym.ErrTrainerNotFound)

	_, err = f.trainerSvc.AssignMember(ctx, trainer.ID, member.ID)
	require.NoError(t, err)
	_, err = f.trainerSvc.AssignMember(ctx, trainer.ID, member.ID)
	assert.ErrorIs(t, err, gym.ErrAlreadyAssigned)
	assert.Equal(t, 1, f.metrics.rejected["duplicate"])

	_, err = f.trainerSvc.UnassignMember(ctx, trainer.ID, member.ID)
	require.NoError(t, err)
	_, err = f.trainerSvc.UnassignMember(ctx, trainer.ID, member.ID)
	assert.ErrorIs(t, err, gym.ErrNotAssigned)
}

func TestDeleteMemberCascadesToTrainers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.addTrainer(t, "a@coach.com")
	b := f.addTrainer(t, "b@coach.com")

	var target *gym.Member
	for i := 0; i < 5; i++ {
		target = f.addMember(t, string(rune('a'+i))+"@gmail.com")
	}
	require.Equal(t, 5, target.ID)

	for _, trainerID := range []int{a.ID, b.ID} {
		_, err := f.trainerSvc.AssignMember(ctx, trainerID, 1)
		require.NoError(t, err)
		_, err = f.trainerSvc.AssignMember(ctx, trainerID, target.ID)
		require.NoError(t, err)
	}

	require.NoError(t, f.memberSvc.DeleteMember(ctx, target.ID))

	trainers, err := f.trainerSvc.ListTrainers(ctx)
	require.NoError(t, err)
	for _, trainer := range trainers {
		assert.NotContains(t, trainer.AssignedMembers, target.ID)
		assert.Contains(t, trainer.AssignedMembers, 1)
	}

	_, err = f.memberSvc.GetMember(ctx, target.ID)
	assert.ErrorIs(t, err, gym.ErrNotFound)
	assert.Equal(t, 1, f.metrics.deleted[gym.KindMember])
}

func TestDeleteMemberKeepsMemberWhenTrainersCannotBeSaved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trainer := f.addTrainer(t, "coach@gmail.com")
	member := f.addMember(t, "a@gmail.com")
	_, err := f.trainerSvc.AssignMember(ctx, trainer.ID, member.ID)
	require.NoError(t, err)

	svc := gym.NewMemberService(f.members, failingTrainers{f.trainers}, f.ids)
	err = svc.DeleteMember(ctx, member.ID)
	assert.ErrorIs(t, err, gym.ErrStorageUnavailable)

	_, err = f.memberSvc.GetMember(ctx, member.ID)
	assert.NoError(t, err)
}

func TestDeleteMemberNotFound(t *testing.T) {
	f := newFixture(t)
	err := f.memberSvc.DeleteMember(context.Background(), 1)
	assert.ErrorIs(t, err, gym.ErrMemberNotFound)
}

func TestDeleteTrainerLeavesMembers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trainer := f.addTrainer(t, "coach@gmail.com")
	member := f.addMember(t, "a@gmail.com")
	_, err := f.trainerSvc.AssignMember(ctx, trainer.ID, member.ID)
	require.NoError(t, err)

	require.NoError(t, f.trainerSvc.DeleteTrainer(ctx, trainer.ID))

	_, err = f.trainerSvc.GetTrainer(ctx, trainer.ID)
	assert.ErrorIs(t, err, gym.ErrTrainerNotFound)
	_, err = f.memberSvc.GetMember(ctx, member.ID)
	assert.NoError(t, err)
	assert.ErrorIs(t, f.trainerSvc.DeleteTrainer(ctx, trainer.ID), gym.ErrTrainerNotFound)
}

func TestListAssignedMembersSkipsDanglingIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.addMember(t, "a@gmail.com")
	second := f.addMember(t, "b@gmail.com")
	require.NoError(t, f.trainers.SaveAll(ctx, []gym.Trainer{{
		User:            gym.User{ID: 1, Name: "Coach", Email: "coach@gmail.com"},
		Specialty:       "Yoga",
		AssignedMembers: []int{second.ID, 40, first.ID},
	}}))

	assigned, err := f.trainerSvc.ListAssignedMembers(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, []int{second.ID, first.ID}, gym.MemberIDs(assigned))
}

func TestSetSpecialty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trainer := f.addTrainer(t, "coach@gmail.com")

	updated, err := f.trainerSvc.SetSpecialty(ctx, trainer.ID, " Strength Training ")
	require.NoError(t, err)
	assert.Equal(t, "Strength Training", updated.Specialty)

	_, err = f.trainerSvc.SetSpecialty(ctx, trainer.ID, "Yoga, Pilates")
	assert.ErrorIs(t, err, gym.ErrValidation)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.adminSvc.RegisterAdmin(ctx, gym.CreateAdminInput{Name: "Admin", Email: "admin@gmail.com", Password: "admin"})
	require.NoError(t, err)

	admin, err := f.adminSvc.Login(ctx, "admin@gmail.com", "admin")
	require.NoError(t, err)
	assert.Equal(t, "Admin", admin.Name)

	_, err = f.adminSvc.Login(ctx, "admin@gmail.com", "wrong")
	assert.ErrorIs(t, err, gym.ErrInvalidCredentials)
	assert.True(t, errors.Is(err, gym.ErrNotFound))

	_, err = f.adminSvc.Login(ctx, "", "admin")
	assert.ErrorIs(t, err, gym.ErrValidation)

	assert.Equal(t, 1, f.metrics.logins[true])
	assert.Equal(t, 2, f.metrics.logins[false])
}

func TestEnsureDefaultAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := gym.CreateAdminInput{Name: "Admin", Email: "admin@gmail.com", Password: "admin"}

	created, err := f.adminSvc.EnsureDefaultAdmin(ctx, input)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.adminSvc.EnsureDefaultAdmin(ctx, input)
	require.NoError(t, err)
	assert.False(t, created)

	admins, err := f.adminSvc.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, gym.AdminIDs(admins))
}

func TestDeleteAdminKeepsLastAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first, err := f.adminSvc.RegisterAdmin(ctx, gym.CreateAdminInput{Name: "Admin", Email: "admin@gmail.com", Password: "admin"})
	require.NoError(t, err)
	second, err := f.adminSvc.RegisterAdmin(ctx, gym.CreateAdminInput{Name: "Other", Email: "other@gmail.com", Password: "other"})
	require.NoError(t, err)

	_, err = f.adminSvc.RegisterAdmin(ctx, gym.CreateAdminInput{Name: "Dup", Email: "other@gmail.com", Password: "x"})
	assert.ErrorIs(t, err, gym.ErrEmailTaken)

	require.NoError(t, f.adminSvc.DeleteAdmin(ctx, second.ID))
	assert.ErrorIs(t, f.adminSvc.DeleteAdmin(ctx, first.ID), gym.ErrValidation)

	found, err := f.adminSvc.FindAdminByEmail(ctx, "admin@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

func TestLineBreaksNeverReachTheFiles(t *testing.T) {
	f := newFileFixture(t)
	ctx := context.Background()

	_, err := f.memberSvc.AddMember(ctx, gym.CreateMemberInput{Name: "Bob\nSmith", Email: "bob@gmail.com", Password: "pw"})
	assert.ErrorIs(t, err, gym.ErrValidation)

	_, err = f.trainerSvc.AddTrainer(ctx, gym.CreateTrainerInput{Name: "Amir", Email: "amir@gmail.com", Password: "pw", Specialty: "Yoga\nPilates"})
	assert.ErrorIs(t, err, gym.ErrValidation)

	_, err = f.adminSvc.RegisterAdmin(ctx, gym.CreateAdminInput{Name: "Ad\r\nmin", Email: "admin@gmail.com", Password: "pw"})
	assert.ErrorIs(t, err, gym.ErrValidation)

	member, err := f.memberSvc.AddMember(ctx, gym.CreateMemberInput{Name: "Bob Smith", Email: "bob@gmail.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, 1, member.ID)

	_, err = f.memberSvc.UpdateMember(ctx, gym.UpdateMemberInput{ID: member.ID, Name: "Bob\nSmith", Email: "bob@gmail.com"})
	assert.ErrorIs(t, err, gym.ErrValidation)

	trainer, err := f.trainerSvc.AddTrainer(ctx, gym.CreateTrainerInput{Name: "Amir", Email: "amir@gmail.com", Password: "pw", Specialty: "Yoga"})
	require.NoError(t, err)
	_, err = f.trainerSvc.SetSpecialty(ctx, trainer.ID, "Yoga\nPilates")
	assert.ErrorIs(t, err, gym.ErrValidation)

	stored, err := f.memberSvc.GetMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob Smith", stored.Name)
	assert.Len(t, f.lines(t, "members.txt"), 1)
	assert.Len(t, f.lines(t, "trainers.txt"), 1)
	assert.Empty(t, f.lines(t, "admins.txt"))

	next, err := f.memberSvc.AddMember(ctx, gym.CreateMemberInput{Name: "Ana", Email: "ana@gmail.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, 2, next.ID)
}

func TestDeleteAdminKeepsIDsStableInFiles(t *testing.T) {
	f := newFileFixture(t)
	ctx := context.Background()
	for _, email := range []string{"a@gmail.com", "b@gmail.com", "c@gmail.com"} {
		_, err := f.adminSvc.RegisterAdmin(ctx, gym.CreateAdminInput{Name: "Admin", Email: email, Password: "pw"})
		require.NoError(t, err)
	}

	require.NoError(t, f.adminSvc.DeleteAdmin(ctx, 1))
	require.NoError(t, f.adminSvc.DeleteAdmin(ctx, 2))

	admins, err := f.adminSvc.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, 3, admins[0].ID)
	assert.Equal(t, "c@gmail.com", admins[0].Email)
}

func TestDeletingHighestMemberFreesItsID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addMember(t, "a@gmail.com")
	f.addMember(t, "b@gmail.com")
	last := f.addMember(t, "c@gmail.com")

	require.NoError(t, f.memberSvc.DeleteMember(ctx, last.ID))

	// The counter follows the highest stored ID, so the freed ID is issued again.
	reused := f.addMember(t, "d@gmail.com")
	assert.Equal(t, last.ID, reused.ID)
}
