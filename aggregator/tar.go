// Package aggregator implements the two feeder components that sit
// upstream of the container engine: a thread-safe tar-based record
// batcher and a time-windowed JSON batcher built on top of it. Neither
// encrypts anything -- they exist to turn a stream of sensor records into
// the byte blobs Encrypt protects.
package aggregator

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// dateTimeFormat is the Go reference-time layout matching the source
// specification's "YYYYMMDDhhmmss".
const dateTimeFormat = "20060102150405"

// ErrInvalidFilename is returned when the constructed tar entry name would
// contain a space.
var ErrInvalidFilename = errors.New("aggregator: filename must not contain spaces")

// TarAggregator accumulates named byte records into a single in-memory tar
// archive. All mutating operations (AddRecord, Finalize) serialise under
// an exclusive lock; Len and ReadTarfileFromBytestring are read-only and
// do not take it.
type TarAggregator struct {
	mu sync.Mutex

	buf         *bytes.Buffer
	tw          *tar.Writer
	recordCount int
}

// NewTarAggregator returns an empty TarAggregator.
func NewTarAggregator() *TarAggregator {
	return &TarAggregator{}
}

func (a *TarAggregator) ensureOpen() {
	if a.tw == nil {
		a.buf = &bytes.Buffer{}
		a.tw = tar.NewWriter(a.buf)
	}
}

// AddRecord appends data as a tar entry named
// "{from}_{to}_{sensorName}{extension}", with from/to formatted as
// YYYYMMDDhhmmss. The entry's modification time is to's epoch second and
// its size is len(data).
func (a *TarAggregator) AddRecord(sensorName string, from, to time.Time, extension string, data []byte) error {
	if !strings.HasPrefix(extension, ".") {
		return fmt.Errorf("aggregator: extension %q must start with a dot", extension)
	}

	filename := fmt.Sprintf("%s_%s_%s%s", from.UTC().Format(dateTimeFormat), to.UTC().Format(dateTimeFormat), sensorName, extension)
	if strings.Contains(filename, " ") {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureOpen()

	header := &tar.Header{
		Name:    filename,
		Mode:    0o644,
		Size:    int64(len(data)),
		ModTime: time.Unix(to.UTC().Unix(), 0),
	}
	if err := a.tw.WriteHeader(header); err != nil {
		return err
	}
	if _, err := a.tw.Write(data); err != nil {
		return err
	}
	a.recordCount++
	return nil
}

// Finalize closes the current tar and returns its serialised bytes,
// possibly empty if no record was ever added. It resets internal state so
// the aggregator can immediately be reused for a fresh tar.
func (a *TarAggregator) Finalize() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tw == nil {
		return nil, nil
	}
	if err := a.tw.Close(); err != nil {
		return nil, err
	}
	out := a.buf.Bytes()
	a.tw = nil
	a.buf = nil
	a.recordCount = 0
	return out, nil
}

// Len returns the number of records added to the current, not-yet-finalized
// tar.
func (a *TarAggregator) Len() int {
	return a.recordCount
}

// ReadTarfileFromBytestring opens a read-only tar.Reader over data, as
// produced by Finalize.
func ReadTarfileFromBytestring(data []byte) *tar.Reader {
	return tar.NewReader(bytes.NewReader(data))
}
