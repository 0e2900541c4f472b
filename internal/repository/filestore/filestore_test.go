package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gym-app-go/internal/domain/gym"
	"gym-app-go/internal/idalloc"
	"gym-app-go/internal/repository/credentials"
	"gym-app-go/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestMemberLoadAllSkipsMalformedLines(t *testing.T) {
	path := writeFile(t, "members.txt",
		"1,John Doe,john@gmail.com,********,2024-01-15,1\n"+
			"two,Broken,broken@gmail.com,********,2024-01-16,1\n"+
			"3,Mike Wilson,mike@gmail.com,********,2024-03-10,0\n")
	ids := idalloc.New()
	repo := NewMemberRepository(path, ids, logger.Nop())

	members, err := repo.LoadAll(context.Background())
	require.NoError(t, err)

	require.Len(t, members, 2)
	assert.Equal(t, 1, members[0].ID)
	assert.Equal(t, gym.TierStandard, members[0].SubscriptionTier)
	assert.Equal(t, 3, members[1].ID)
	assert.Equal(t, "Mike Wilson", members[1].Name)
	assert.Equal(t, 3, ids.LastID(gym.KindMember))
}

func TestMemberLoadAllDropsShortAndEmptyRows(t *testing.T) {
	path := writeFile(t, "members.txt",
		"1,John Doe,john@gmail.com,********,2024-01-15\n"+
			"2,,sarah@gmail.com,********,2024-02-20,2\n"+
			"3,Mike Wilson,mike@gmail.com,********,2024-03-10,9\n"+
			"4,Ana,ana@gmail.com,********,2024-04-01,2\n")
	repo := NewMemberRepository(path, idalloc.New(), logger.Nop())

	members, err := repo.LoadAll(context.Background())
	require.NoError(t, err)

	require.Len(t, members, 1)
	assert.Equal(t, 4, members[0].ID)
}

func TestMemberLoadAllSetsAllocatorToMaxID(t *testing.T) {
	path := writeFile(t, "members.txt",
		"3,A,a@gmail.com,********,2024-01-01,0\n"+
			"7,B,b@gmail.com,********,2024-01-01,0\n"+
			"2,C,c@gmail.com,********,2024-01-01,0\n")
	ids := idalloc.New()
	require.NoError(t, ids.SaveLastID(gym.KindMember, 42))

	_, err := NewMemberRepository(path, ids, logger.Nop()).LoadAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, ids.NextID(gym.KindMember))
}

func TestMemberSaveAllMasksPasswords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.txt")
	repo := NewMemberRepository(path, idalloc.New(), logger.Nop())

	err := repo.SaveAll(context.Background(), []gym.Member{{
		User:             gym.User{ID: 5, Name: "Sarah Johnson", Email: "sarah@gmail.com", Password: "password456"},
		JoinDate:         "2024-02-20",
		SubscriptionTier: gym.TierPremium,
	}})
	require.NoError(t, err)

	assert.Equal(t, "5,Sarah Johnson,sarah@gmail.com,********,2024-02-20,2\n", readFile(t, path))

	reloaded, err := repo.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, gym.PasswordPlaceholder, reloaded.Password)
}

func TestMemberRoundTripIsIdempotent(t *testing.T) {
	contents := "1,John Doe,john@gmail.com,********,2024-01-15,1\n" +
		"2,Sarah Johnson,sarah@gmail.com,********,2024-02-20,2\n"
	path := writeFile(t, "members.txt", contents)
	repo := NewMemberRepository(path, idalloc.New(), logger.Nop())
	ctx := context.Background()

	before, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.SaveAll(ctx, before))
	after, err := repo.LoadAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, before, after)
	assert.Equal(t, contents, readFile(t, path))
}

func TestMemberAddFindDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.txt")
	ids := idalloc.New()
	repo := NewMemberRepository(path, ids, logger.Nop())
	ctx := context.Background()

	member := gym.Member{
		User:     gym.User{ID: 1, Name: "John Doe", Email: "john@gmail.com", Password: "pw"},
		JoinDate: "2024-01-15",
	}
	require.NoError(t, repo.Add(ctx, &member))
	assert.Equal(t, 1, ids.LastID(gym.KindMember))

	found, err := repo.FindByEmail(ctx, "john@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, 1, found.ID)

	_, err = repo.FindByEmail(ctx, "nobody@gmail.com")
	assert.ErrorIs(t, err, gym.ErrNotFound)

	members, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, 1, members))

	_, err = repo.FindByID(ctx, 1)
	assert.ErrorIs(t, err, gym.ErrMemberNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 1, nil), gym.ErrMemberNotFound)
}

func TestTrainerAssignmentsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trainers.txt")
	repo := NewTrainerRepository(path, idalloc.New(), logger.Nop())
	ctx := context.Background()

	trainers := []gym.Trainer{
		{User: gym.User{ID: 1, Name: "Amir", Email: "amir@gmail.com"}, Specialty: "Cardio", AssignedMembers: []int{3, 5}},
		{User: gym.User{ID: 2, Name: "Maged", Email: "maged@gmail.com"}, Specialty: "Yoga"},
	}
	require.NoError(t, repo.SaveAll(ctx, trainers))

	assert.Equal(t,
		"1,Amir,amir@gmail.com,********,Cardio,3;5\n"+
			"2,Maged,maged@gmail.com,********,Yoga\n",
		readFile(t, path))

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, []int{3, 5}, loaded[0].AssignedMembers)
	assert.Empty(t, loaded[1].AssignedMembers)
}

func TestTrainerLoadIgnoresBadAssignments(t *testing.T) {
	path := writeFile(t, "trainers.txt",
		"1,Amir,amir@gmail.com,********,Cardio,1;x;2;2;3;4;5;6;7;8\n"+
			"2,Kareem,kareem@gmail.com,********\n")
	repo := NewTrainerRepository(path, idalloc.New(), logger.Nop())

	trainers, err := repo.LoadAll(context.Background())
	require.NoError(t, err)

	require.Len(t, trainers, 1)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, trainers[0].AssignedMembers)
}

func TestAdminPositionalIDs(t *testing.T) {
	path := writeFile(t, "admins.txt",
		"Admin,admin@gmail.com,********\n"+
			"broken-row\n"+
			"Mohamed Rashad,mohamed@gmail.com,********\n")
	ids := idalloc.New()
	repo := NewAdminRepository(path, ids, nil, logger.Nop())

	admins, err := repo.LoadAll(context.Background())
	require.NoError(t, err)

	require.Len(t, admins, 2)
	assert.Equal(t, 1, admins[0].ID)
	assert.Equal(t, 2, admins[1].ID)
	assert.Equal(t, 2, ids.LastID(gym.KindAdmin))
}

func TestAdminAuthenticateUsesCredentialSet(t *testing.T) {
	path := writeFile(t, "admins.txt", "Restored,restored@gmail.com,********\n")
	creds := credentials.NewSet()
	creds.Remember("admin@gmail.com", "admin")
	repo := NewAdminRepository(path, idalloc.New(), creds, logger.Nop())
	ctx := context.Background()

	// Restored admins never match, not even against the placeholder.
	_, err := repo.Authenticate(ctx, "restored@gmail.com", gym.PasswordPlaceholder)
	assert.ErrorIs(t, err, gym.ErrInvalidCredentials)

	// Credentials alone are not enough; the admin must be on file.
	_, err = repo.Authenticate(ctx, "admin@gmail.com", "admin")
	assert.ErrorIs(t, err, gym.ErrInvalidCredentials)

	admin := gym.Admin{User: gym.User{ID: 2, Name: "Admin", Email: "admin@gmail.com", Password: "admin"}}
	require.NoError(t, repo.Add(ctx, &admin))

	found, err := repo.Authenticate(ctx, "admin@gmail.com", "admin")
	require.NoError(t, err)
	assert.Equal(t, "Admin", found.Name)

	_, err = repo.Authenticate(ctx, "admin@gmail.com", "wrong")
	assert.ErrorIs(t, err, gym.ErrNotFound)

	assert.Contains(t, readFile(t, path), "Admin,admin@gmail.com,********,2\n")
}

func TestAdminDeleteForgetsCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.txt")
	creds := credentials.NewSet()
	repo := NewAdminRepository(path, idalloc.New(), creds, logger.Nop())
	ctx := context.Background()

	first := gym.Admin{User: gym.User{ID: 1, Name: "Admin", Email: "admin@gmail.com", Password: "admin"}}
	second := gym.Admin{User: gym.User{ID: 2, Name: "Other", Email: "other@gmail.com", Password: "other"}}
	require.NoError(t, repo.Add(ctx, &first))
	require.NoError(t, repo.Add(ctx, &second))

	admins, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, 2, admins))

	assert.False(t, creds.Match("other@gmail.com", "other"))
	assert.True(t, creds.Match("admin@gmail.com", "admin"))
}

func TestAddRefusesFieldsThatBreakTheLineFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.txt")
	ids := idalloc.New()
	repo := NewMemberRepository(path, ids, logger.Nop())

	member := gym.Member{User: gym.User{ID: 1, Name: "Bob\nSmith", Email: "bob@gmail.com"}, JoinDate: "2024-01-01"}
	err := repo.Add(context.Background(), &member)

	assert.ErrorIs(t, err, gym.ErrValidation)
	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
	assert.Equal(t, 0, ids.LastID(gym.KindMember))
}

func TestSaveAllRefusesFieldsThatBreakTheLineFormat(t *testing.T) {
	const contents = "1,Ahmed Ali,ahmed@gmail.com,********,2024-01-01,1\n"
	path := writeFile(t, "members.txt", contents)
	repo := NewMemberRepository(path, idalloc.New(), logger.Nop())
	ctx := context.Background()

	members, err := repo.LoadAll(ctx)
	require.NoError(t, err)

	for _, name := range []string{"Ali, Ahmed", "Ahmed\rAli"} {
		changed := gym.Member{User: members[0].User, JoinDate: members[0].JoinDate}
		changed.Name = name
		err := repo.SaveAll(ctx, []gym.Member{changed})
		assert.ErrorIs(t, err, gym.ErrValidation, name)
	}
	assert.Equal(t, contents, readFile(t, path))
}

func TestAdminIDColumn(t *testing.T) {
	path := writeFile(t, "admins.txt",
		"Admin,admin@gmail.com,********,5\n"+
			"Legacy,legacy@gmail.com,********\n"+
			"Other,other@gmail.com,********,2\n"+
			"Broken,broken@gmail.com,********,x\n")
	ids := idalloc.New()
	repo := NewAdminRepository(path, ids, nil, logger.Nop())

	admins, err := repo.LoadAll(context.Background())
	require.NoError(t, err)

	require.Len(t, admins, 3)
	assert.Equal(t, []int{5, 6, 2}, gym.AdminIDs(admins))
	assert.Equal(t, 6, ids.LastID(gym.KindAdmin))
}

func TestAdminDeleteKeepsRemainingIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.txt")
	repo := NewAdminRepository(path, idalloc.New(), nil, logger.Nop())
	ctx := context.Background()

	for i, email := range []string{"a@gmail.com", "b@gmail.com", "c@gmail.com"} {
		admin := gym.Admin{User: gym.User{ID: i + 1, Name: "Admin", Email: email, Password: "pw"}}
		require.NoError(t, repo.Add(ctx, &admin))
	}

	admins, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, 1, admins))

	admins, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, gym.AdminIDs(admins))

	require.NoError(t, repo.Delete(ctx, 2, admins))

	admins, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, 3, admins[0].ID)
	assert.Equal(t, "c@gmail.com", admins[0].Email)
}

func TestTrainerWritesRejectOverCapacity(t *testing.T) {
	const contents = "1,Amir,amir@gmail.com,********,Cardio\n"
	path := writeFile(t, "trainers.txt", contents)
	repo := NewTrainerRepository(path, idalloc.New(), logger.Nop())
	ctx := context.Background()

	over := gym.Trainer{
		User:            gym.User{ID: 1, Name: "Amir", Email: "amir@gmail.com"},
		Specialty:       "Cardio",
		AssignedMembers: []int{1, 2, 3, 4, 5, 6, 7, 8},
	}
	assert.ErrorIs(t, repo.SaveAll(ctx, []gym.Trainer{over}), gym.ErrCapacityExceeded)
	assert.ErrorIs(t, repo.Update(ctx, []gym.Trainer{over}), gym.ErrCapacityExceeded)

	over.ID, over.Email = 2, "kareem@gmail.com"
	assert.ErrorIs(t, repo.Add(ctx, &over), gym.ErrCapacityExceeded)

	assert.Equal(t, contents, readFile(t, path))
}
