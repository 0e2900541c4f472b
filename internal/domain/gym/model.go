package gym

import (
	"fmt"
	"slices"
)

// Kind tags the closed set of account types. Each kind has its own ID namespace.
type Kind string

const (
	KindAdmin   Kind = "admin"
	KindMember  Kind = "member"
	KindTrainer Kind = "trainer"
)

// MaxAssignedMembers is how many members a single trainer can look after.
const MaxAssignedMembers = 7

// PasswordPlaceholder replaces every password that leaves the process.
const PasswordPlaceholder = "********"

// DateLayout is the join date format.
const DateLayout = "2006-01-02"

// CanAuthenticate reports whether accounts of this kind may log in.
func (k Kind) CanAuthenticate() bool {
	return k == KindAdmin
}

func (k Kind) Valid() bool {
	switch k {
	case KindAdmin, KindMember, KindTrainer:
		return true
	}
	return false
}

// User holds the fields shared by every account kind.
type User struct {
	ID       int
	Name     string
	Email    string
	Password string
}

type Admin struct {
	User
}

func (Admin) Kind() Kind { return KindAdmin }

type Member struct {
	User
	JoinDate         string
	SubscriptionTier Tier
}

func (Member) Kind() Kind { return KindMember }

// Trainer keeps the IDs of its assigned members. The references are weak: the
// member repository owns member lifetime.
type Trainer struct {
	User
	Specialty       string
	AssignedMembers []int
}

func (Trainer) Kind() Kind { return KindTrainer }

// Assign appends memberID to the trainer's list. The list never grows past
// MaxAssignedMembers and never holds the same member twice.
func (t *Trainer) Assign(memberID int) error {
	if len(t.AssignedMembers) >= MaxAssignedMembers {
		return ErrCapacityExceeded
	}
	if t.IsAssigned(memberID) {
		return ErrAlreadyAssigned
	}
	t.AssignedMembers = append(t.AssignedMembers, memberID)
	return nil
}

// Unassign drops memberID from the list, reporting whether it was present.
func (t *Trainer) Unassign(memberID int) bool {
	idx := slices.Index(t.AssignedMembers, memberID)
	if idx == -1 {
		return false
	}
	t.AssignedMembers = slices.Delete(t.AssignedMembers, idx, idx+1)
	return true
}

func (t *Trainer) IsAssigned(memberID int) bool {
	return slices.Contains(t.AssignedMembers, memberID)
}

// Clone returns a copy that shares no memory with t.
func (t Trainer) Clone() Trainer {
	t.AssignedMembers = slices.Clone(t.AssignedMembers)
	return t
}

// CheckCapacity fails with ErrCapacityExceeded for the first trainer holding
// more than MaxAssignedMembers. Repositories call it before writing.
func CheckCapacity(trainers ...Trainer) error {
	for _, trainer := range trainers {
		if len(trainer.AssignedMembers) > MaxAssignedMembers {
			return fmt.Errorf("trainer %d: %w", trainer.ID, ErrCapacityExceeded)
		}
	}
	return nil
}

// MaxID returns the highest ID among ids, or 0 for an empty input.
func MaxID(ids ...int) int {
	highest := 0
	for _, id := range ids {
		if id > highest {
			highest = id
		}
	}
	return highest
}

func AdminIDs(admins []Admin) []int {
	ids := make([]int, 0, len(admins))
	for _, admin := range admins {
		ids = append(ids, admin.ID)
	}
	return ids
}

func MemberIDs(members []Member) []int {
	ids := make([]int, 0, len(members))
	for _, member := range members {
		ids = append(ids, member.ID)
	}
	return ids
}

func TrainerIDs(trainers []Trainer) []int {
	ids := make([]int, 0, len(trainers))
	for _, trainer := range trainers {
		ids = append(ids, trainer.ID)
	}
	return ids
}

func CloneTrainers(trainers []Trainer) []Trainer {
	if trainers == nil {
		return nil
	}
	cloned := make([]Trainer, len(trainers))
	for i := range trainers {
		cloned[i] = trainers[i].Clone()
	}
	return cloned
}
