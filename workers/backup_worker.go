// workers/backup_worker.go
package workers

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// BackupWorker periodically snapshots the file store's JSON to a backup
// directory. The file store has no journal, so a bad deploy or a fat-fingered
// admin edit is otherwise unrecoverable.
type BackupWorker struct {
	SourcePath string
	Dir        string
	Keep       int // snapshots retained, oldest pruned first

	sched gocron.Scheduler
}

func NewBackupWorker(sourcePath, dir string) *BackupWorker {
	return &BackupWorker{
		SourcePath: sourcePath,
		Dir:        dir,
		Keep:       10,
	}
}

// Start schedules a snapshot on the given interval. It returns after
// scheduling; Stop shuts the scheduler down.
func (w *BackupWorker) Start(interval time.Duration) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	w.sched = sched

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := w.RunOnce(); err != nil {
				log.Printf("[BACKUP] snapshot failed: %v", err)
			}
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	log.Printf("[BACKUP] snapshotting %s to %s every %s", w.SourcePath, w.Dir, interval)
	return nil
}

func (w *BackupWorker) Stop() {
	if w.sched != nil {
		_ = w.sched.Shutdown()
	}
}

// RunOnce copies the source file into the backup dir with a timestamped name
// and prunes old snapshots. A missing source is not an error: nothing has
// been saved yet.
func (w *BackupWorker) RunOnce() error {
	src, err := os.Open(w.SourcePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", w.SourcePath, err)
	}
	defer src.Close()

	if err := os.MkdirAll(w.Dir, os.ModePerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", w.Dir, err)
	}

	base := strings.TrimSuffix(filepath.Base(w.SourcePath), filepath.Ext(w.SourcePath))
	name := fmt.Sprintf("%s-%s.json", base, time.Now().UTC().Format("20060102T150405.000"))
	dstPath := filepath.Join(w.Dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", dstPath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy to %s: %w", dstPath, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dstPath, err)
	}

	return w.prune(base)
}

func (w *BackupWorker) prune(base string) error {
	matches, err := filepath.Glob(filepath.Join(w.Dir, base+"-*.json"))
	if err != nil {
		return err
	}
	if len(matches) <= w.Keep {
		return nil
	}

	// Timestamped names sort chronologically.
	sort.Strings(matches)
	for _, old := range matches[:len(matches)-w.Keep] {
		if err := os.Remove(old); err != nil {
			log.Printf("[BACKUP] failed to prune %s: %v", old, err)
		}
	}
	return nil
}
