package manifest

import (
	"bufio"
	"os"
)

// WriteAggregate concatenates the per-archive record lines into a single
// JSON array file, one object per line. The per-archive groups arrive in
// completion order; order within each group is preserved.
func WriteAggregate(path string, archives [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	w := bufio.NewWriter(f)
	if _, err = w.WriteString("[\n"); err != nil {
		return err
	}

	first := true
	for _, lines := range archives {
		for _, line := range lines {
			if !first {
				if _, err = w.WriteString(",\n"); err != nil {
					return err
				}
			}
			if _, err = w.WriteString("  " + line); err != nil {
				return err
			}
			first = false
		}
	}

	if _, err = w.WriteString("\n]\n"); err != nil {
		return err
	}
	return w.Flush()
}
