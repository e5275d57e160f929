// Package migrations applies the embedded schema with golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var files embed.FS

// Migrator оборачивает migrate.Migrate. conn должен быть URL вида postgres://.
type Migrator struct {
	m   *migrate.Migrate
	log zerolog.Logger
}

func New(conn string, log zerolog.Logger) (*Migrator, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("iofs.New: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, conn)
	if err != nil {
		return nil, fmt.Errorf("migrate.NewWithSourceInstance: %w", err)
	}

	l := log.With().Str("component", "migrations").Logger()
	m.Log = &logger{log: l}

	return &Migrator{m: m, log: l}, nil
}

// Up applies all pending migrations. Nothing to apply is not an error.
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate.Up: %w", err)
	}

	return m.logVersion()
}

// Down rolls back n migrations, all of them when n <= 0.
func (m *Migrator) Down(n int) error {
	var err error
	if n > 0 {
		err = m.m.Steps(-n)
	} else {
		err = m.m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate.Down: %w", err)
	}

	return m.logVersion()
}

// Version returns the applied version; 0 when the schema is empty.
func (m *Migrator) Version() (uint, bool, error) {
	v, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migrate.Version: %w", err)
	}

	return v, dirty, nil
}

func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()

	return errors.Join(srcErr, dbErr)
}

func (m *Migrator) logVersion() error {
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}

	m.log.Info().Uint("version", v).Bool("dirty", dirty).Msg("schema version")

	return nil
}

type logger struct {
	log zerolog.Logger
}

func (l *logger) Printf(format string, v ...any) {
	l.log.Debug().Msgf(format, v...)
}

func (l *logger) Verbose() bool {
	return l.log.GetLevel() <= zerolog.DebugLevel
}
