package archival

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/creativeai/imgdoc/common/rcontext"
	"github.com/creativeai/imgdoc/processing"
)

const (
	payloadSuffix = ".jpg"
	sidecarSuffix = ".json"
	outputSuffix  = "_doc.jsonl"
)

// Archive-level invariant violations. Either one aborts the archive's scan.
var (
	ErrUnpairedSidecar = errors.New("archival: sidecar entry has no preceding payload entry")
	ErrMissingUrl      = errors.New("archival: sidecar metadata has no url")
)

var archiveSuffixes = []string{".tar.gz", ".tgz", ".tar"}

// IsArchive reports whether the file name looks like a scannable archive.
func IsArchive(name string) bool {
	lowered := strings.ToLower(name)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lowered, suffix) {
			return true
		}
	}
	return false
}

// OutputPath returns the per-archive JSONL path. Its existence is the
// idempotency marker: an archive whose output file is present is never
// rescanned.
func OutputPath(archivePath string) string {
	lowered := strings.ToLower(archivePath)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lowered, suffix) {
			return archivePath[:len(archivePath)-len(suffix)] + outputSuffix
		}
	}
	return archivePath + outputSuffix
}

type sidecarMetadata struct {
	Url     string `json:"url"`
	Caption string `json:"caption"`
}

// pairingBuffer holds payload bytes until the matching sidecar shows up.
// Scoped to a single scan and discarded with it - the buffer must never
// outlive the archive it was built for.
type pairingBuffer struct {
	pending map[string][]byte
}

func newPairingBuffer() *pairingBuffer {
	return &pairingBuffer{pending: make(map[string][]byte)}
}

func (b *pairingBuffer) put(key string, data []byte) {
	b.pending[key] = data
}

func (b *pairingBuffer) take(key string) ([]byte, bool) {
	data, ok := b.pending[key]
	if ok {
		delete(b.pending, key)
	}
	return data, ok
}

// pairingKey strips up to two trailing dot-segments from the lower-cased
// entry name, so "000123.jpg" and "000123.json" (and "000123.0.jpg") share
// a key.
func pairingKey(name string) string {
	name = strings.ToLower(name)
	for i := 0; i < 2; i++ {
		dot := strings.LastIndexByte(name, '.')
		if dot < 0 {
			break
		}
		name = name[:dot]
	}
	return name
}

// ScanArchive walks one archive's entries in stored order, pairing payloads
// with their sidecars and processing each pair. The collected record lines
// are written to the archive's output file exactly once, after the whole
// archive has been read, then returned. If the output file already exists
// the archive is skipped and an empty result returned.
func ScanArchive(ctx rcontext.RequestContext, archivePath string) ([]string, error) {
	outPath := OutputPath(archivePath)
	if _, err := os.Stat(outPath); err == nil {
		ctx.Log.Debug("Output file already exists - skipping archive")
		return []string{}, nil
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return nil, errors.Wrap(err, "archival: error opening archive")
	}
	defer func() {
		_ = f.Close()
	}()

	var stream io.Reader = f
	lowered := strings.ToLower(archivePath)
	if strings.HasSuffix(lowered, ".tar.gz") || strings.HasSuffix(lowered, ".tgz") {
		gzipStream, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "archival: error opening gzip stream")
		}
		defer func() {
			_ = gzipStream.Close()
		}()
		stream = gzipStream
	}

	lines := make([]string, 0)
	buffer := newPairingBuffer()
	entries := 0
	payloadBytes := uint64(0)

	tarFile := tar.NewReader(stream)
	for {
		header, err := tarFile.Next()
		if err == io.EOF {
			break // we're done
		}
		if err != nil {
			return nil, errors.Wrap(err, "archival: error reading archive")
		}
		if header == nil || header.Typeflag != tar.TypeReg {
			continue // skip directories and other stuff
		}

		name := strings.ToLower(header.Name)
		key := pairingKey(name)
		entries++

		if strings.HasSuffix(name, payloadSuffix) {
			data, err := io.ReadAll(tarFile)
			if err != nil {
				return nil, errors.Wrapf(err, "archival: error reading entry %s", header.Name)
			}
			buffer.put(key, data)
			payloadBytes += uint64(len(data))
			continue
		}

		if strings.HasSuffix(name, sidecarSuffix) {
			data, ok := buffer.take(key)
			if !ok {
				return nil, errors.Wrapf(ErrUnpairedSidecar, "entry %s", header.Name)
			}

			meta := &sidecarMetadata{}
			if err = json.NewDecoder(tarFile).Decode(meta); err != nil {
				return nil, errors.Wrapf(err, "archival: invalid sidecar %s", header.Name)
			}
			if meta.Url == "" {
				return nil, errors.Wrapf(ErrMissingUrl, "entry %s", header.Name)
			}

			record, err := processing.ProcessImage(ctx, data, meta.Caption, meta.Url, header.ModTime.Unix())
			if err != nil {
				return nil, err
			}
			if record == nil {
				continue // filtered, not an error
			}

			line, err := record.Line()
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
		}
	}

	if err = writeOutput(outPath, lines); err != nil {
		return nil, errors.Wrap(err, "archival: error writing output file")
	}

	ctx.Log.Infof("Scanned %d entries (%s of payloads) into %d records", entries, humanize.Bytes(payloadBytes), len(lines))
	return lines, nil
}

func writeOutput(path string, lines []string) error {
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	return os.WriteFile(path, []byte(content), 0644)
}
