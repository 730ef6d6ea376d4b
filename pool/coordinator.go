package pool

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Jeffail/tunny"
	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/creativeai/imgdoc/archival"
	"github.com/creativeai/imgdoc/common/rcontext"
	"github.com/creativeai/imgdoc/manifest"
)

type scanTask struct {
	index       int
	archivePath string
}

type scanOutcome struct {
	archivePath string
	lines       []string
	err         error
}

// RunDirectory scans every archive under dir across a bounded worker pool
// and writes the aggregated manifest to outFile (default: the directory
// path with a ".json" suffix). Archives are independent units of work: a
// fatal error inside one archive aborts only that archive, the rest of the
// run continues. The returned error names every failed archive, so callers
// can tell a partial run (manifest written, some archives missing) from a
// total failure (no archive succeeded, no manifest written).
func RunDirectory(dir string, outFile string, numWorkers int) error {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	archives, err := findArchives(dir)
	if err != nil {
		return err
	}
	if len(archives) == 0 {
		return errors.Errorf("pool: no tar archives found in %s", dir)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	logrus.Infof("Scanning %d archives with %d workers", len(archives), numWorkers)

	p := tunny.NewFunc(numWorkers, scanArchive)
	defer p.Close()

	results := make(chan *scanOutcome, len(archives))
	for i, archivePath := range archives {
		task := &scanTask{index: i, archivePath: archivePath}
		go func() {
			results <- p.Process(task).(*scanOutcome)
		}()
	}

	// Collection happens in completion order - ordering across archives is
	// deliberately not guaranteed.
	collected := make([][]string, 0, len(archives))
	failures := make([]string, 0)
	for range archives {
		outcome := <-results
		if outcome.err != nil {
			logrus.Errorf("Failed to process %s: %v", outcome.archivePath, outcome.err)
			sentry.CaptureException(outcome.err)
			failures = append(failures, filepath.Base(outcome.archivePath))
			continue
		}
		collected = append(collected, outcome.lines)
	}

	if len(failures) == len(archives) {
		sort.Strings(failures)
		return errors.Errorf("pool: all %d archives failed: %s", len(failures), strings.Join(failures, ", "))
	}

	if outFile == "" {
		outFile = filepath.Clean(dir) + ".json"
	}
	if err = manifest.WriteAggregate(outFile, collected); err != nil {
		return err
	}
	logrus.Infof("Wrote manifest for %d of %d archives to %s", len(archives)-len(failures), len(archives), outFile)

	if len(failures) > 0 {
		sort.Strings(failures)
		return errors.Errorf("pool: %d of %d archives failed: %s", len(failures), len(archives), strings.Join(failures, ", "))
	}
	return nil
}

// scanArchive is the tunny work function. The task index stands in for the
// worker identity - it only ever feeds log fields, never output content or
// ordering.
func scanArchive(payload interface{}) interface{} {
	task := payload.(*scanTask)
	ctx := rcontext.Initial().LogWithFields(logrus.Fields{
		"archive": filepath.Base(task.archivePath),
		"task":    task.index,
	})

	lines, err := archival.ScanArchive(ctx, task.archivePath)
	return &scanOutcome{
		archivePath: task.archivePath,
		lines:       lines,
		err:         err,
	}
}

// findArchives lists the directory's archive files, sorted for reproducible
// dispatch order.
func findArchives(dir string) ([]string, error) {
	listing, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	archives := make([]string, 0)
	for _, entry := range listing {
		if entry.IsDir() || !archival.IsArchive(entry.Name()) {
			continue
		}
		archives = append(archives, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(archives)
	return archives, nil
}
