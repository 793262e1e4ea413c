package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const progressBarWidth = 20

// ProgressReporter reports progress through a list of catalog files.
type ProgressReporter interface {
	// Start begins a run over total files.
	Start(total int)
	// Done marks file as checked.
	Done(file string)
	// Finish ends the progress line with a summary.
	Finish()
	Error(err error)
}

// LineProgress redraws a single status line such as
//
//	Linting [##########----------] 3/6 payroll.yaml
//
// after every checked file.
type LineProgress struct {
	mu      sync.Mutex
	writer  io.Writer
	total   int
	done    int
	started time.Time
	width   int // length of the last line drawn, to blank leftovers
}

// NewProgressReporter returns a progress line writer. A nil w writes to
// os.Stderr so progress never mixes with report output on stdout.
func NewProgressReporter(w io.Writer) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	return &LineProgress{writer: w}
}

func (p *LineProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.done = 0
	p.width = 0
	p.started = time.Now()
	p.draw("")
}

func (p *LineProgress) Done(file string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done < p.total {
		p.done++
	}
	p.draw(filepath.Base(file))
}

func (p *LineProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.total == 0 {
		return
	}
	elapsed := time.Since(p.started).Round(time.Millisecond)
	p.line(fmt.Sprintf("Linted %d/%d files in %s", p.done, p.total, elapsed))
	fmt.Fprintln(p.writer)
	p.width = 0
}

func (p *LineProgress) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.width > 0 {
		fmt.Fprintln(p.writer)
		p.width = 0
	}
	fmt.Fprintf(p.writer, "✗ Error: %v\n", err)
}

func (p *LineProgress) draw(file string) {
	if p.total == 0 {
		return
	}

	filled := p.done * progressBarWidth / p.total
	bar := strings.Repeat("#", filled) + strings.Repeat("-", progressBarWidth-filled)

	text := fmt.Sprintf("Linting [%s] %d/%d", bar, p.done, p.total)
	if file != "" {
		text += " " + file
	}
	p.line(text)
}

// line overwrites the current line with text.
func (p *LineProgress) line(text string) {
	pad := ""
	if n := p.width - len(text); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprintf(p.writer, "\r%s%s", text, pad)
	p.width = len(text)
}
