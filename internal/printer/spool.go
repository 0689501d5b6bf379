// Package printer writes plain-text copies of a screen to a spool directory.
package printer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
)

var ErrClosed = errors.New("print spool is closed")

// Page is one printable screen.
type Page struct {
	Title string
	Body  string
}

// Receipt describes a finished print job. Width and Height are the cell
// dimensions of the printed body.
type Receipt struct {
	JobID  string
	Path   string
	Bytes  int
	Width  int
	Height int
	At     time.Time
}

type Spool struct {
	mu     sync.Mutex
	dir    string
	closed bool
	now    func() time.Time
	origin string
}

type Option func(*Spool)

// WithClock fixes the time stamped on jobs and file names.
func WithClock(now func() time.Time) Option {
	return func(s *Spool) {
		if now != nil {
			s.now = now
		}
	}
}

// WithOrigin sets the origin line written in each header.
func WithOrigin(origin string) Option {
	return func(s *Spool) { s.origin = origin }
}

func Open(dir string, opts ...Option) (*Spool, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("print spool directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open print spool: %w", err)
	}
	s := &Spool{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Spool) Dir() string {
	return s.dir
}

// Print strips styling from the page and writes it with a header.
func (s *Spool) Print(p Page) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Receipt{}, ErrClosed
	}

	at := s.now()
	body := strings.TrimRight(ansi.Strip(p.Body), "\n")
	lines := strings.Split(body, "\n")
	width := 0
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
		width = max(width, ansi.StringWidth(lines[i]))
	}

	job := uuid.NewString()
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", firstNonEmpty(p.Title, "Untitled"))
	fmt.Fprintf(&b, "# printed %s\n", at.Format(time.RFC3339))
	if s.origin != "" {
		fmt.Fprintf(&b, "# origin %s\n", s.origin)
	}
	fmt.Fprintf(&b, "# job %s\n\n", job)
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")

	name := fmt.Sprintf("gdx-%s-%s.txt", slug(p.Title), at.UTC().Format("20060102T150405.000"))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return Receipt{}, fmt.Errorf("print %s: %w", name, err)
	}
	return Receipt{
		JobID:  job,
		Path:   path,
		Bytes:  b.Len(),
		Width:  width,
		Height: len(lines),
		At:     at,
	}, nil
}

// Close invalidates the spool. Later Print calls return ErrClosed.
func (s *Spool) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return "page"
	}
	return out
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
