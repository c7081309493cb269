// Package storage keeps the history of finished runs in SQLite.
package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lanerush/internal/game"
)

// Run is one finished session.
type Run struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	// Seed is stored as text; SQLite integers are signed.
	Seed      string
	Frames    int64
	Spawned   int
	Passed    int
	Distance  float64 `gorm:"index"`
	ElapsedMs int64
}

func (r Run) Elapsed() time.Duration { return time.Duration(r.ElapsedMs) * time.Millisecond }

// Store is the run history database.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open opens or creates the database at path. An empty path gives a
// private in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// One connection, otherwise each pooled connection to :memory: sees
	// its own empty database.
	sqlDB.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA user_version = 1;",
		"PRAGMA synchronous = NORMAL;",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	if err := db.AutoMigrate(&Run{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate runs table: %w", err)
	}

	s := &Store{db: db, log: log.With().Str("component", "storage").Logger()}
	if path == "" {
		s.log.Info().Msg("Using in-memory run history")
	} else {
		s.log.Info().Str("path", path).Msg("Using local SQLite run history")
	}
	return s, nil
}

// Record saves a finished run.
func (s *Store) Record(ctx context.Context, st game.RunStats) (Run, error) {
	run := Run{
		Seed:      strconv.FormatUint(st.Seed, 10),
		Frames:    int64(st.Frames),
		Spawned:   st.Spawned,
		Passed:    st.Passed,
		Distance:  st.Distance,
		ElapsedMs: st.Elapsed.Milliseconds(),
	}
	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	s.log.Debug().Uint("id", run.ID).Float64("distance", run.Distance).Msg("run recorded")
	return run, nil
}

// Best returns up to n runs ordered by distance, longest first. Ties go
// to the earlier run.
func (s *Store) Best(ctx context.Context, n int) ([]Run, error) {
	var runs []Run
	err := s.db.WithContext(ctx).
		Order("distance DESC").
		Order("id ASC").
		Limit(n).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("query best runs: %w", err)
	}
	return runs, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Run{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
