package gym

import (
	"context"
	"errors"
	"slices"

	gymdomain "gym-app-go/internal/domain/gym"
	"gym-app-go/internal/repository/credentials"
	"gorm.io/gorm"
)

var (
	_ gymdomain.AdminRepository   = (*AdminRepository)(nil)
	_ gymdomain.MemberRepository  = (*MemberRepository)(nil)
	_ gymdomain.TrainerRepository = (*TrainerRepository)(nil)
)

// Member operations

type MemberRepository struct {
	db  *gorm.DB
	ids gymdomain.IDAllocator
}

func NewMemberRepository(db *gorm.DB, ids gymdomain.IDAllocator) *MemberRepository {
	return &MemberRepository{db: db, ids: ids}
}

func (r *MemberRepository) LoadAll(ctx context.Context) ([]gymdomain.Member, error) {
	var rows []memberRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, unavailable(err)
	}

	members := make([]gymdomain.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, row.toDomain())
	}

	if err := r.ids.SaveLastID(gymdomain.KindMember, gymdomain.MaxID(gymdomain.MemberIDs(members)...)); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *MemberRepository) SaveAll(ctx context.Context, members []gymdomain.Member) error {
	rows := make([]memberRow, 0, len(members))
	for _, member := range members {
		rows = append(rows, newMemberRow(member))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&memberRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return unavailable(err)
	}
	return r.ids.SaveLastID(gymdomain.KindMember, gymdomain.MaxID(gymdomain.MemberIDs(members)...))
}

func (r *MemberRepository) Add(ctx context.Context, member *gymdomain.Member) error {
	row := newMemberRow(*member)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return unavailable(err)
	}
	return bumpID(r.ids, gymdomain.KindMember, member.ID)
}

func (r *MemberRepository) FindByID(ctx context.Context, id int) (*gymdomain.Member, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*gymdomain.Member, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *MemberRepository) Update(ctx context.Context, members []gymdomain.Member) error {
	return r.SaveAll(ctx, members)
}

func (r *MemberRepository) Delete(ctx context.Context, id int, members []gymdomain.Member) error {
	idx := slices.IndexFunc(members, func(m gymdomain.Member) bool { return m.ID == id })
	if idx == -1 {
		return gymdomain.ErrMemberNotFound
	}
	return r.SaveAll(ctx, slices.Delete(slices.Clone(members), idx, idx+1))
}

func (r *MemberRepository) first(ctx context.Context, query string, arg any) (*gymdomain.Member, error) {
	var row memberRow
	if err := r.db.WithContext(ctx).Where(query, arg).Order("id").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gymdomain.ErrMemberNotFound
		}
		return nil, unavailable(err)
	}
	member := row.toDomain()
	return &member, nil
}

// Trainer operations

type TrainerRepository struct {
	db  *gorm.DB
	ids gymdomain.IDAllocator
}

func NewTrainerRepository(db *gorm.DB, ids gymdomain.IDAllocator) *TrainerRepository {
	return &TrainerRepository{db: db, ids: ids}
}

func (r *TrainerRepository) LoadAll(ctx context.Context) ([]gymdomain.Trainer, error) {
	var rows []trainerRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, unavailable(err)
	}

	assigned, err := r.assignments(ctx, nil)
	if err != nil {
		return nil, err
	}

	trainers := make([]gymdomain.Trainer, 0, len(rows))
	for _, row := range rows {
		trainers = append(trainers, row.toDomain(assigned[row.ID]))
	}

	if err := r.ids.SaveLastID(gymdomain.KindTrainer, gymdomain.MaxID(gymdomain.TrainerIDs(trainers)...)); err != nil {
		return nil, err
	}
	return trainers, nil
}

// SaveAll rewrites both the trainers and their assignment rows in one
// transaction.
func (r *TrainerRepository) SaveAll(ctx context.Context, trainers []gymdomain.Trainer) error {
	if err := gymdomain.CheckCapacity(trainers...); err != nil {
		return err
	}

	rows := make([]trainerRow, 0, len(trainers))
	var links []trainerMemberRow
	for _, trainer := range trainers {
		rows = append(rows, newTrainerRow(trainer))
		links = append(links, newTrainerMemberRows(trainer)...)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&trainerMemberRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&trainerRow{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return unavailable(err)
	}
	return r.ids.SaveLastID(gymdomain.KindTrainer, gymdomain.MaxID(gymdomain.TrainerIDs(trainers)...))
}

func (r *TrainerRepository) Add(ctx context.Context, trainer *gymdomain.Trainer) error {
	if err := gymdomain.CheckCapacity(*trainer); err != nil {
		return err
	}

	row := newTrainerRow(*trainer)
	links := newTrainerMemberRows(*trainer)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return unavailable(err)
	}
	return bumpID(r.ids, gymdomain.KindTrainer, trainer.ID)
}

func (r *TrainerRepository) FindByID(ctx context.Context, id int) (*gymdomain.Trainer, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *TrainerRepository) FindByEmail(ctx context.Context, email string) (*gymdomain.Trainer, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *TrainerRepository) Update(ctx context.Context, trainers []gymdomain.Trainer) error {
	return r.SaveAll(ctx, trainers)
}

func (r *TrainerRepository) Delete(ctx context.Context, id int, trainers []gymdomain.Trainer) error {
	idx := slices.IndexFunc(trainers, func(t gymdomain.Trainer) bool { return t.ID == id })
	if idx == -1 {
		return gymdomain.ErrTrainerNotFound
	}
	return r.SaveAll(ctx, slices.Delete(gymdomain.CloneTrainers(trainers), idx, idx+1))
}

func (r *TrainerRepository) first(ctx context.Context, query string, arg any) (*gymdomain.Trainer, error) {
	var row trainerRow
	if err := r.db.WithContext(ctx).Where(query, arg).Order("id").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gymdomain.ErrTrainerNotFound
		}
		return nil, unavailable(err)
	}

	assigned, err := r.assignments(ctx, []int{row.ID})
	if err != nil {
		return nil, err
	}
	trainer := row.toDomain(assigned[row.ID])
	return &trainer, nil
}

// assignments returns member IDs per trainer in assignment order. A nil
// trainerIDs loads every trainer.
func (r *TrainerRepository) assignments(ctx context.Context, trainerIDs []int) (map[int][]int, error) {
	query := r.db.WithContext(ctx).Model(&trainerMemberRow{})
	if trainerIDs != nil {
		query = query.Where("trainer_id IN ?", trainerIDs)
	}

	var links []trainerMemberRow
	if err := query.Order("trainer_id, position").Find(&links).Error; err != nil {
		return nil, unavailable(err)
	}

	result := make(map[int][]int)
	for _, link := range links {
		result[link.TrainerID] = append(result[link.TrainerID], link.MemberID)
	}
	return result, nil
}

// Admin operations

// AdminRepository stores a placeholder instead of the password. Authenticate
// checks the credential set, like the file backend.
type AdminRepository struct {
	db          *gorm.DB
	ids         gymdomain.IDAllocator
	credentials *credentials.Set
}

func NewAdminRepository(db *gorm.DB, ids gymdomain.IDAllocator, creds *credentials.Set) *AdminRepository {
	if creds == nil {
		creds = credentials.NewSet()
	}
	return &AdminRepository{db: db, ids: ids, credentials: creds}
}

func (r *AdminRepository) LoadAll(ctx context.Context) ([]gymdomain.Admin, error) {
	var rows []adminRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, unavailable(err)
	}

	admins := make([]gymdomain.Admin, 0, len(rows))
	for _, row := range rows {
		admins = append(admins, row.toDomain())
	}

	if err := r.ids.SaveLastID(gymdomain.KindAdmin, gymdomain.MaxID(gymdomain.AdminIDs(admins)...)); err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *AdminRepository) SaveAll(ctx context.Context, admins []gymdomain.Admin) error {
	rows := make([]adminRow, 0, len(admins))
	for _, admin := range admins {
		rows = append(rows, newAdminRow(admin))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&adminRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return unavailable(err)
	}

	for _, admin := range admins {
		r.remember(admin)
	}
	return r.ids.SaveLastID(gymdomain.KindAdmin, gymdomain.MaxID(gymdomain.AdminIDs(admins)...))
}

func (r *AdminRepository) Add(ctx context.Context, admin *gymdomain.Admin) error {
	row := newAdminRow(*admin)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return unavailable(err)
	}
	r.remember(*admin)
	return bumpID(r.ids, gymdomain.KindAdmin, admin.ID)
}

func (r *AdminRepository) FindByID(ctx context.Context, id int) (*gymdomain.Admin, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*gymdomain.Admin, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *AdminRepository) Update(ctx context.Context, admins []gymdomain.Admin) error {
	return r.SaveAll(ctx, admins)
}

func (r *AdminRepository) Delete(ctx context.Context, id int, admins []gymdomain.Admin) error {
	idx := slices.IndexFunc(admins, func(a gymdomain.Admin) bool { return a.ID == id })
	if idx == -1 {
		return gymdomain.ErrAdminNotFound
	}
	removed := admins[idx]
	if err := r.SaveAll(ctx, slices.Delete(slices.Clone(admins), idx, idx+1)); err != nil {
		return err
	}
	r.credentials.Forget(removed.Email)
	return nil
}

func (r *AdminRepository) Authenticate(ctx context.Context, email, password string) (*gymdomain.Admin, error) {
	admin, err := r.first(ctx, "email = ?", email)
	if err != nil {
		if errors.Is(err, gymdomain.ErrNotFound) {
			return nil, gymdomain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !r.credentials.Match(email, password) {
		return nil, gymdomain.ErrInvalidCredentials
	}
	return admin, nil
}

func (r *AdminRepository) first(ctx context.Context, query string, arg any) (*gymdomain.Admin, error) {
	var row adminRow
	if err := r.db.WithContext(ctx).Where(query, arg).Order("id").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gymdomain.ErrAdminNotFound
		}
		return nil, unavailable(err)
	}
	admin := row.toDomain()
	return &admin, nil
}

func (r *AdminRepository) remember(admin gymdomain.Admin) {
	if admin.Password == gymdomain.PasswordPlaceholder {
		return
	}
	r.credentials.Remember(admin.Email, admin.Password)
}

func bumpID(ids gymdomain.IDAllocator, kind gymdomain.Kind, id int) error {
	if id > ids.LastID(kind) {
		return ids.SaveLastID(kind, id)
	}
	return nil
}
