package app

import (
	"context"
	"errors"
	"fmt"

	"gym-app-go/internal/config"
	"gym-app-go/internal/db"
	"gym-app-go/internal/domain/gym"
	"gym-app-go/internal/idalloc"
	"gym-app-go/internal/metrics"
	"gym-app-go/internal/repository/credentials"
	"gym-app-go/internal/repository/filestore"
	gymrepo "gym-app-go/internal/repository/gym"
	"gym-app-go/internal/repository/inmemory"
	"gym-app-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg     config.Config
	log     logger.Logger
	db      *gorm.DB
	metrics *metrics.Recorder

	Members  *gym.MemberService
	Trainers *gym.TrainerService
	Admins   *gym.AdminService
}

type repositories struct {
	ids      gym.IDAllocator
	admins   gym.AdminRepository
	members  gym.MemberRepository
	trainers gym.TrainerRepository
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(ctx, cfg, log)
}

// NewWithConfig wires the services for cfg.Storage.Mode and makes sure at least
// one admin exists.
func NewWithConfig(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:     cfg,
		log:     log,
		metrics: metrics.New(),
	}

	creds := credentials.NewSet()
	creds.Remember(cfg.DefaultAdmin.Email, cfg.DefaultAdmin.Password)

	log.Info("app: initializing storage", "mode", cfg.Storage.Mode)
	repos, err := a.initStorage(cfg, creds)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	opts := []gym.Option{gym.WithMetrics(a.metrics)}
	a.Members = gym.NewMemberService(repos.members, repos.trainers, repos.ids, opts...)
	a.Trainers = gym.NewTrainerService(repos.trainers, repos.members, repos.ids, opts...)
	a.Admins = gym.NewAdminService(repos.admins, repos.ids, opts...)

	created, err := a.Admins.EnsureDefaultAdmin(ctx, gym.CreateAdminInput{
		Name:     cfg.DefaultAdmin.Name,
		Email:    cfg.DefaultAdmin.Email,
		Password: cfg.DefaultAdmin.Password,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("bootstrap admin: %w", err), a.Close())
	}
	if created {
		log.Info("app: registered default admin", "email", cfg.DefaultAdmin.Email)
	}

	return a, nil
}

func (a *App) initStorage(cfg config.Config, creds *credentials.Set) (repositories, error) {
	switch cfg.Storage.Mode {
	case config.StorageMemory:
		ids := idalloc.New()
		var members []gym.Member
		var trainers []gym.Trainer
		if cfg.Storage.SeedFixtures {
			members = inmemory.FixtureMembers()
			trainers = inmemory.FixtureTrainers()
		}
		return repositories{
			ids:      ids,
			admins:   inmemory.NewAdminRepository(ids),
			members:  inmemory.NewMemberRepository(ids, members...),
			trainers: inmemory.NewTrainerRepository(ids, trainers...),
		}, nil

	case config.StorageFile:
		ids := idalloc.NewFile(cfg.Storage.IDsPath(), a.log)
		return repositories{
			ids:      ids,
			admins:   filestore.NewAdminRepository(cfg.Storage.AdminsPath(), ids, creds, a.log),
			members:  filestore.NewMemberRepository(cfg.Storage.MembersPath(), ids, a.log),
			trainers: filestore.NewTrainerRepository(cfg.Storage.TrainersPath(), ids, a.log),
		}, nil

	case config.StoragePostgres:
		dbConn, err := db.NewPostgres(cfg.DB, a.log)
		if err != nil {
			return repositories{}, err
		}
		a.db = dbConn
		if err := db.Migrate(dbConn, a.log); err != nil {
			return repositories{}, fmt.Errorf("migrate: %w", err)
		}
		// Every LoadAll sets the counters to the stored maximum, so the
		// allocator needs no table of its own.
		ids := idalloc.New()
		return repositories{
			ids:      ids,
			admins:   gymrepo.NewAdminRepository(dbConn, ids, creds),
			members:  gymrepo.NewMemberRepository(dbConn, ids),
			trainers: gymrepo.NewTrainerRepository(dbConn, ids),
		}, nil
	}
	return repositories{}, fmt.Errorf("unknown storage mode %q", cfg.Storage.Mode)
}

func (a *App) Config() config.Config {
	return a.cfg
}

// Close flushes metrics and releases the database connection.
func (a *App) Close() error {
	var errs []error
	if err := a.metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
		errs = append(errs, fmt.Errorf("write metrics: %w", err))
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			errs = append(errs, err)
		} else if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
