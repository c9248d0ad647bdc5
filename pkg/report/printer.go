package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/danl5/govote/pkg/model"
)

// NewPrinter returns a reporter writing one line per snapshot to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:       w,
		station: color.New(color.FgCyan, color.Bold),
		count:   color.New(color.FgGreen),
	}
}

// Printer writes tally snapshots as text lines, candidates in name order.
type Printer struct {
	// mu serializes the writes of concurrent station servers
	mu sync.Mutex
	w  io.Writer

	station *color.Color
	count   *color.Color
}

func (p *Printer) Report(s model.TallySnapshot) error {
	line := p.Format(s)

	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintln(p.w, line)
	return err
}

// Format renders a snapshot as a single line.
func (p *Printer) Format(s model.TallySnapshot) string {
	var sb strings.Builder
	sb.WriteString(p.station.Sprintf("station %d", s.StationID))
	sb.WriteString(fmt.Sprintf(" [%.1fs]", s.Elapsed.Seconds()))
	for _, c := range candidates(s.Tally) {
		sb.WriteString(" ")
		sb.WriteString(c)
		sb.WriteString("=")
		sb.WriteString(p.count.Sprint(s.Tally[c]))
	}
	sb.WriteString(fmt.Sprintf(" (served %d)", s.Served))
	return sb.String()
}

func candidates(tally map[string]int) []string {
	names := maps.Keys(tally)
	slices.Sort(names)
	return names
}
