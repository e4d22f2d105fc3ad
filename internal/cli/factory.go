package cli

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/axkov/ladder"
	"github.com/axkov/ladder/internal/retry"
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/xo/dburl"
	"gopkg.in/yaml.v2"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

type Config struct {
	DatabaseURL      string        `env:"LADDER_DATABASE_URL"`
	MigrationsFolder string        `env:"LADDER_MIGRATIONS_FOLDER" envDefault:"./migrations"`
	TrackingTable    string        `env:"LADDER_TRACKING_TABLE"    envDefault:"migrations"`
	Strict           bool          `env:"LADDER_STRICT_SOURCE"     envDefault:"false"`
	ConnectAttempts  int           `env:"LADDER_CONNECT_ATTEMPTS"  envDefault:"3"`
	ConnectPause     time.Duration `env:"LADDER_CONNECT_PAUSE"     envDefault:"500ms"`
	Debug            bool          `env:"LADDER_DEBUG"             envDefault:"false"`
	PrintSQL         bool          `env:"LADDER_PRINT_SQL"         envDefault:"false"`
}

// ConfigFromEnv reads the configuration from LADDER_* environment
// variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "could not parse environment")
	}

	return cfg, nil
}

type cfgFile struct {
	DatabaseURL string `yaml:"database_url"`

	Migrations struct {
		LocalFolder   string `yaml:"local_folder"`
		TrackingTable string `yaml:"tracking_table"`
		Strict        bool   `yaml:"strict"`
	} `yaml:"migrations"`

	Connect struct {
		Attempts int    `yaml:"attempts"`
		Pause    string `yaml:"pause"`
	} `yaml:"connect"`
}

// ConfigFromYaml reads the configuration from a yaml file. Missing
// values fall back to the same defaults the environment parser uses.
func ConfigFromYaml(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "could not read config file %s", path)
	}

	var f cfgFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Config{}, errors.Wrapf(err, "could not parse config file %s", path)
	}

	cfg := Config{
		DatabaseURL:      f.DatabaseURL,
		MigrationsFolder: f.Migrations.LocalFolder,
		TrackingTable:    f.Migrations.TrackingTable,
		Strict:           f.Migrations.Strict,
		ConnectAttempts:  f.Connect.Attempts,
		ConnectPause:     500 * time.Millisecond,
	}

	if cfg.MigrationsFolder == "" {
		cfg.MigrationsFolder = "./migrations"
	}

	if cfg.TrackingTable == "" {
		cfg.TrackingTable = "migrations"
	}

	if cfg.ConnectAttempts == 0 {
		cfg.ConnectAttempts = 3
	}

	if f.Connect.Pause != "" {
		pause, err := time.ParseDuration(f.Connect.Pause)
		if err != nil {
			return Config{}, errors.Wrapf(err, "invalid connect pause %s", f.Connect.Pause)
		}
		cfg.ConnectPause = pause
	}

	return cfg, nil
}

// createEngine opens the database behind cfg.DatabaseURL, waits for it
// to become reachable and builds an engine on top of it.
func createEngine(ctx context.Context, cfg Config, lgOpt ladder.OptionFunc) (*ladder.Engine, ladder.CloserFunc, error) {
	u, err := dburl.Parse(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not parse database url %s", cfg.DatabaseURL)
	}

	var driverOptFor func(db *sql.DB) ladder.OptionFunc
	switch u.Driver {
	case "sqlite3":
		driverOptFor = func(db *sql.DB) ladder.OptionFunc {
			return ladder.UseSqlite(db, ladder.WithSqliteTrackingTable(cfg.TrackingTable))
		}
	case "mysql":
		driverOptFor = func(db *sql.DB) ladder.OptionFunc {
			return ladder.UseMySQL(db, ladder.WithMySQLTrackingTable(cfg.TrackingTable))
		}
	default:
		return nil, nil, errors.Wrapf(ErrUnsupportedDriver, "%s", u.Driver)
	}

	db, err := sql.Open(u.Driver, u.DSN)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not open %s database", u.Driver)
	}

	err = retry.Incremental(ctx, cfg.ConnectPause, cfg.ConnectAttempts, func(attempt int) error {
		if pingErr := db.PingContext(ctx); pingErr != nil {
			return retry.Again(pingErr)
		}

		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, errors.Wrap(err, "database is not reachable")
	}

	opts := []ladder.OptionFunc{
		driverOptFor(db),
		ladder.UseLocalFolder(cfg.MigrationsFolder),
	}

	if cfg.Strict {
		opts = append(opts, ladder.UseStrictSource())
	}

	if lgOpt != nil {
		opts = append(opts, lgOpt)
	}

	engine, closer, err := ladder.NewEngine(opts...)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return engine, closer, nil
}
