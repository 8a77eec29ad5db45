// Package backup takes periodic snapshots of the catalog database.
//
// Snapshots use SQLite's VACUUM INTO so they are transactionally consistent
// even while the server is handling requests.
package backup

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	filePrefix = "library-"
	fileSuffix = ".sqlite"
	// Nanosecond precision keeps names unique and lexicographically ordered
	// even for back-to-back runs.
	timeLayout = "20060102-150405.000000000"
)

// Scheduler runs database backups on a cron schedule.
type Scheduler struct {
	db   *gorm.DB
	dir  string
	keep int
	cron *cron.Cron
}

// NewScheduler creates a backup scheduler writing snapshots into dir and
// retaining at most keep files.
func NewScheduler(db *gorm.DB, dir string, keep int) *Scheduler {
	return &Scheduler{
		db:   db,
		dir:  dir,
		keep: keep,
		cron: cron.New(),
	}
}

// Start registers the schedule and begins running backups in the background.
func (s *Scheduler) Start(schedule string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.Run(); err != nil {
			log.Printf("Backup failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	log.Printf("Backup scheduler started (schedule %q, dir %s)", schedule, s.dir)
	return nil
}

// Stop halts the scheduler, waiting for a running backup to finish or the
// context to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
}

// Run takes one snapshot and prunes old ones.
func (s *Scheduler) Run() error {
	name := filePrefix + time.Now().UTC().Format(timeLayout) + fileSuffix
	target := filepath.Join(s.dir, name)

	if err := s.db.Exec("VACUUM INTO ?", target).Error; err != nil {
		return fmt.Errorf("failed to snapshot database: %w", err)
	}
	log.Printf("Backup written to %s", target)

	return s.prune()
}

// prune removes the oldest snapshots beyond the retention cap. Timestamped
// names sort chronologically.
func (s *Scheduler) prune() error {
	if s.keep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	var backups []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileSuffix) {
			backups = append(backups, name)
		}
	}
	if len(backups) <= s.keep {
		return nil
	}

	sort.Strings(backups)
	for _, name := range backups[:len(backups)-s.keep] {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return err
		}
		log.Printf("Pruned old backup %s", name)
	}
	return nil
}
