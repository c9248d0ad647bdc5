package report

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ugorji/go/codec"
	"golang.org/x/exp/slices"

	"github.com/danl5/govote/pkg/model"
)

// NewRecorder returns a reporter appending every snapshot to w as a msgpack record.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{
		enc: codec.NewEncoder(w, &codec.MsgpackHandle{}),
	}
}

// Recorder writes a stream of msgpack encoded snapshots.
type Recorder struct {
	mu  sync.Mutex
	enc *codec.Encoder
	n   int
}

func (r *Recorder) Report(s model.TallySnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.enc.Encode(s); err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}
	r.n++
	return nil
}

// Count returns the number of snapshots recorded.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

// ReadRecords decodes every snapshot of a stream written by a Recorder.
func ReadRecords(rd io.Reader) ([]model.TallySnapshot, error) {
	dec := codec.NewDecoder(rd, &codec.MsgpackHandle{})

	var snapshots []model.TallySnapshot
	for {
		var s model.TallySnapshot
		err := dec.Decode(&s)
		if errors.Is(err, io.EOF) {
			return snapshots, nil
		}
		if err != nil {
			return snapshots, fmt.Errorf("read record %d: %w", len(snapshots)+1, err)
		}
		snapshots = append(snapshots, s)
	}
}

// Latest returns the last snapshot of each station, ordered by station id.
func Latest(snapshots []model.TallySnapshot) []model.TallySnapshot {
	last := make(map[int]model.TallySnapshot)
	for _, s := range snapshots {
		if prev, ok := last[s.StationID]; !ok || s.Served >= prev.Served {
			last[s.StationID] = s
		}
	}

	ids := make([]int, 0, len(last))
	for id := range last {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	latest := make([]model.TallySnapshot, 0, len(ids))
	for _, id := range ids {
		latest = append(latest, last[id])
	}
	return latest
}
