package tui

// Buffer is an in-memory match display. The model draws whatever the match
// last rendered.
type Buffer struct {
	lines      []string
	clean      bool
	forwarded  []string
	terminated bool
}

// Render keeps a copy of lines.
func (b *Buffer) Render(lines []string) error {
	b.lines = append(b.lines[:0], lines...)
	b.clean = false
	return nil
}

// MarkClean records that the buffer matches the match state.
func (b *Buffer) MarkClean() error {
	b.clean = true
	return nil
}

// ForwardRawEvent records a command event. A terminal has no window to
// hand it back to.
func (b *Buffer) ForwardRawEvent(s string) error {
	b.forwarded = append(b.forwarded, s)
	return nil
}

// RequestTerminate records that the match is over.
func (b *Buffer) RequestTerminate() error {
	b.terminated = true
	return nil
}

// Lines returns the last render.
func (b *Buffer) Lines() []string {
	return b.lines
}

// Clean reports whether the last render was marked clean.
func (b *Buffer) Clean() bool {
	return b.clean
}

// Terminated reports whether the match asked to terminate.
func (b *Buffer) Terminated() bool {
	return b.terminated
}
