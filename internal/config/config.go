package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gym-app-go/pkg/logger"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type Config struct {
	Env             string `env:"ENV" env-default:"development"`
	MetricsTextfile string `env:"METRICS_TEXTFILE" env-description:"write Prometheus counters to this file on exit"`
	Storage         StorageConfig
	DefaultAdmin    DefaultAdminConfig
	DB              DBConfig
}

type StorageConfig struct {
	Mode         string `env:"STORAGE_MODE" env-default:"file" env-description:"memory, file or postgres"`
	DataDir      string `env:"DATA_DIR" env-default:"data"`
	MembersFile  string `env:"MEMBERS_FILE" env-default:"members.txt"`
	TrainersFile string `env:"TRAINERS_FILE" env-default:"trainers.txt"`
	AdminsFile   string `env:"ADMINS_FILE" env-default:"admins.txt"`
	IDsFile      string `env:"IDS_FILE" env-default:"ids.txt"`
	SeedFixtures bool   `env:"SEED_FIXTURES" env-default:"true" env-description:"seed demo members and trainers into empty memory storage"`
}

type DefaultAdminConfig struct {
	Name     string `env:"DEFAULT_ADMIN_NAME" env-default:"Admin"`
	Email    string `env:"DEFAULT_ADMIN_EMAIL" env-default:"admin@gmail.com"`
	Password string `env:"DEFAULT_ADMIN_PASSWORD" env-default:"admin"`
}

type DBConfig struct {
	DSN             string        `env:"DB_DSN"`
	Host            string        `env:"DB_HOST" env-default:"localhost"`
	Port            string        `env:"DB_PORT" env-default:"5432"`
	User            string        `env:"DB_USER" env-default:"postgres"`
	Password        string        `env:"DB_PASSWORD" env-default:"postgres"`
	Name            string        `env:"DB_NAME" env-default:"gym_app"`
	SSLMode         string        `env:"DB_SSLMODE" env-default:"disable"`
	TimeZone        string        `env:"DB_TIMEZONE" env-default:"UTC"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
	SlowQuery       time.Duration `env:"DB_SLOW_QUERY" env-default:"200ms" env-description:"queries slower than this are logged at warn"`
}

// Load reads the nearest .env file, if any, together with the process
// environment. Values missing from both fall back to the env-default tags.
func Load(log logger.Logger) (Config, error) {
	var cfg Config

	path, err := findDotEnv(dotenvFilename)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
		log.Info("config: loaded dotenv", "path", path)
	case errors.Is(err, os.ErrNotExist):
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("read env: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("find .env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Mode {
	case StorageMemory, StorageFile, StoragePostgres:
	default:
		return fmt.Errorf("config: unknown STORAGE_MODE %q", c.Storage.Mode)
	}
	if c.DefaultAdmin.Email == "" || c.DefaultAdmin.Password == "" {
		return errors.New("config: DEFAULT_ADMIN_EMAIL and DEFAULT_ADMIN_PASSWORD must be set")
	}
	return nil
}

// Usage describes every supported variable, for the CLI help text.
func Usage() (string, error) {
	return cleanenv.GetDescription(&Config{}, nil)
}

func (c StorageConfig) MembersPath() string  { return c.path(c.MembersFile) }
func (c StorageConfig) TrainersPath() string { return c.path(c.TrainersFile) }
func (c StorageConfig) AdminsPath() string   { return c.path(c.AdminsFile) }
func (c StorageConfig) IDsPath() string      { return c.path(c.IDsFile) }

// path resolves name against DataDir unless it is already absolute.
func (c StorageConfig) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
