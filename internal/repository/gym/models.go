package gym

import (
	"fmt"

	gymdomain "gym-app-go/internal/domain/gym"
)

// Row types mirror migrations/001_gym_schema.sql. IDs come from the allocator,
// never from a database sequence.

type adminRow struct {
	ID       int `gorm:"primaryKey;autoIncrement:false"`
	Name     string
	Email    string
	Password string
}

func (adminRow) TableName() string { return "admins" }

func newAdminRow(admin gymdomain.Admin) adminRow {
	return adminRow{
		ID:       admin.ID,
		Name:     admin.Name,
		Email:    admin.Email,
		Password: gymdomain.PasswordPlaceholder,
	}
}

func (r adminRow) toDomain() gymdomain.Admin {
	return gymdomain.Admin{User: gymdomain.User{ID: r.ID, Name: r.Name, Email: r.Email, Password: r.Password}}
}

type memberRow struct {
	ID               int `gorm:"primaryKey;autoIncrement:false"`
	Name             string
	Email            string
	Password         string
	JoinDate         string
	SubscriptionTier int
}

func (memberRow) TableName() string { return "members" }

func newMemberRow(member gymdomain.Member) memberRow {
	return memberRow{
		ID:               member.ID,
		Name:             member.Name,
		Email:            member.Email,
		Password:         gymdomain.PasswordPlaceholder,
		JoinDate:         member.JoinDate,
		SubscriptionTier: int(member.SubscriptionTier),
	}
}

func (r memberRow) toDomain() gymdomain.Member {
	return gymdomain.Member{
		User:             gymdomain.User{ID: r.ID, Name: r.Name, Email: r.Email, Password: r.Password},
		JoinDate:         r.JoinDate,
		SubscriptionTier: gymdomain.Tier(r.SubscriptionTier),
	}
}

type trainerRow struct {
	ID        int `gorm:"primaryKey;autoIncrement:false"`
	Name      string
	Email     string
	Password  string
	Specialty string
}

func (trainerRow) TableName() string { return "trainers" }

func newTrainerRow(trainer gymdomain.Trainer) trainerRow {
	return trainerRow{
		ID:        trainer.ID,
		Name:      trainer.Name,
		Email:     trainer.Email,
		Password:  gymdomain.PasswordPlaceholder,
		Specialty: trainer.Specialty,
	}
}

func (r trainerRow) toDomain(assigned []int) gymdomain.Trainer {
	return gymdomain.Trainer{
		User:            gymdomain.User{ID: r.ID, Name: r.Name, Email: r.Email, Password: r.Password},
		Specialty:       r.Specialty,
		AssignedMembers: assigned,
	}
}

// trainerMemberRow has no foreign key to members: a member can be removed while
// still listed here, and readers skip such IDs.
type trainerMemberRow struct {
	TrainerID int `gorm:"primaryKey;autoIncrement:false"`
	Position  int `gorm:"primaryKey;autoIncrement:false"`
	MemberID  int
}

func (trainerMemberRow) TableName() string { return "trainer_members" }

func newTrainerMemberRows(trainer gymdomain.Trainer) []trainerMemberRow {
	rows := make([]trainerMemberRow, 0, len(trainer.AssignedMembers))
	for i, memberID := range trainer.AssignedMembers {
		rows = append(rows, trainerMemberRow{TrainerID: trainer.ID, Position: i, MemberID: memberID})
	}
	return rows
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", gymdomain.ErrStorageUnavailable, err)
}
