package ijslog

/*
Sinks are where formatted entries end up. The hub fans every accepted entry
out to all attached sinks; a sink must never report failure back into the
emission path (a panicking sink is recovered and noted on the fallback
writer instead, see logger.go).

Provided implementations:
 - WriterSink: renders lines to an io.Writer, optionally timestamped,
   level-tagged and colorized (lipgloss).
 - MemorySink: retains entries in memory and dumps them as a flat,
   human-readable text file on request.

A zap bridge lives in zapsink.go.
*/

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Sink consumes formatted entries. Write must not return: delivery problems
// are the sink's own business and must never fail the logging caller.
type Sink interface {
	Write(e Entry)
}

/////////////////////////////////////////////////////////////////////////////////////////

// WriterSink renders entries as single lines to an io.Writer.
// Construct with NewWriterSink and the fluent setters.
type WriterSink struct {
	out      io.Writer
	tags     *LevelMap // per-level textual tag; nil = no tag
	timefmt  string    // time.Format layout; empty = no timestamp
	minLevel LogLevel  // entries below this level are dropped
	colorize bool      // render the line in the entry's color
}

// NewWriterSink returns a sink writing plain untagged lines to out.
// A nil writer falls back to os.Stderr.
func NewWriterSink(out io.Writer) *WriterSink {
	if out == nil {
		out = os.Stderr
	}
	return &WriterSink{out: out, tags: LevelShortNames}
}

// WithTimeFormat sets the time.Format layout written before each line
// (empty disables the timestamp). Returns the sink for chaining.
func (s *WriterSink) WithTimeFormat(layout string) *WriterSink {
	s.timefmt = layout
	return s
}

// WithLevelTags sets the per-level tag map ([INF], [WRN], ...). Pass nil to
// drop tags entirely.
func (s *WriterSink) WithLevelTags(tags *LevelMap) *WriterSink {
	s.tags = tags
	return s
}

// WithMinLevel drops entries below the given level.
func (s *WriterSink) WithMinLevel(level LogLevel) *WriterSink {
	s.minLevel = normLevel(level)
	return s
}

// WithColor toggles colorized rendering using the entry's color hint.
func (s *WriterSink) WithColor(enabled bool) *WriterSink {
	s.colorize = enabled
	return s
}

// Write implements Sink.
func (s *WriterSink) Write(e Entry) {
	if e.Level < s.minLevel {
		return
	}
	line := ""
	if s.timefmt != "" {
		line += e.Time.Format(s.timefmt) + " "
	}
	if s.tags != nil {
		line += "[" + s.tags[normLevel(e.Level)] + "] "
	}
	line += e.Message
	if s.colorize {
		line = lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color.Hex())).Render(line)
	}
	io.WriteString(s.out, line+"\n")
}

/////////////////////////////////////////////////////////////////////////////////////////

// MemorySink retains entries up to a cap, evicting the oldest first. It
// backs the flat-file export: everything retained can be dumped as
// human-readable text.
type MemorySink struct {
	entries []Entry
	limit   int
}

// NewMemorySink returns a sink retaining up to limit entries. Zero or
// negative selects DEFAULT_MEMORY_CAP.
func NewMemorySink(limit int) *MemorySink {
	if limit <= 0 {
		limit = DEFAULT_MEMORY_CAP
	}
	return &MemorySink{limit: limit}
}

// Write implements Sink. When the cap is reached the oldest entry is
// evicted by copying down in place, so the evicted entry is released and
// the slice never crawls through its backing array at steady state.
func (s *MemorySink) Write(e Entry) {
	if len(s.entries) >= s.limit {
		n := copy(s.entries, s.entries[1:])
		s.entries[n] = Entry{}
		s.entries = s.entries[:n]
	}
	s.entries = append(s.entries, e)
}

// Entries returns a copy of the retained entries, oldest first.
func (s *MemorySink) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of retained entries.
func (s *MemorySink) Len() int {
	return len(s.entries)
}

// Clear discards all retained entries.
func (s *MemorySink) Clear() {
	s.entries = s.entries[:0]
}

// Export writes every retained entry to w as one line of plain text:
//
//	2006-01-02 15:04:05.000 [ERR] (network) connection refused
func (s *MemorySink) Export(w io.Writer) error {
	for _, e := range s.entries {
		_, err := fmt.Fprintf(w, "%s [%s] (%s) %s\n",
			e.Time.Format("2006-01-02 15:04:05.000"),
			LevelShortNames[normLevel(e.Level)],
			e.Channel.Name(),
			e.Message)
		if err != nil {
			return fmt.Errorf("export write: %w", err)
		}
	}
	return nil
}

// ExportFile dumps the retained entries to a new text file at path.
func (s *MemorySink) ExportFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export create: %w", err)
	}
	defer f.Close()
	return s.Export(f)
}
