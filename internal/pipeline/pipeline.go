// Package pipeline implements the dataset processing steps for the cancer
// growth dynamics study: area normalization, plate splitting, per-sample
// and per-day statistics, and legacy header repair. Steps never modify
// their inputs except where documented (FixHeaders); outputs go to
// parallel trees or subfolders.
package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// ErrSkip marks a file a step cannot apply to (wrong columns, missing
// input). Skips are reported, not treated as failures.
var ErrSkip = errors.New("pipeline: file skipped")

// Report accumulates the outcome of a batch step. It is safe for
// concurrent use by the worker pool.
type Report struct {
	mu        sync.Mutex
	Processed int
	Skipped   []string
	Failed    map[string]error
}

func newReport() *Report {
	return &Report{Failed: make(map[string]error)}
}

func (r *Report) addProcessed() {
	r.mu.Lock()
	r.Processed++
	r.mu.Unlock()
}

func (r *Report) addSkipped(path string) {
	r.mu.Lock()
	r.Skipped = append(r.Skipped, path)
	r.mu.Unlock()
}

func (r *Report) addFailed(path string, err error) {
	r.mu.Lock()
	r.Failed[path] = err
	r.mu.Unlock()
}

// Workers normalizes a worker-count setting: non-positive means one worker
// per available CPU.
func Workers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// ForEachFile applies fn to every file using a bounded worker pool.
// A fn returning ErrSkip (possibly wrapped) counts the file as skipped;
// any other error records a failure. Per-file failures do not abort the
// batch. Context cancellation stops feeding new files.
func ForEachFile(ctx context.Context, files []string, workers int, fn func(path string) error) *Report {
	report := newReport()
	if len(files) == 0 {
		return report
	}

	jobs := make(chan string)
	var wg sync.WaitGroup

	for w := 0; w < Workers(workers); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				err := fn(path)
				switch {
				case err == nil:
					report.addProcessed()
				case errors.Is(err, ErrSkip):
					report.addSkipped(path)
				default:
					report.addFailed(path, err)
				}
			}
		}()
	}

feed:
	for _, path := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- path:
		}
	}
	close(jobs)
	wg.Wait()

	return report
}

// FindCSVs walks root and returns every .csv file path, sorted.
func FindCSVs(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ListCSVs returns the .csv files directly inside dir (no recursion),
// sorted by name.
func ListCSVs(dir string) ([]string, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)
	return entries, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
