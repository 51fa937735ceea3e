package seabattle

// Display is where a match sends its output. Implementations live in the
// platform packages: an acme window, a terminal UI, a plain text stream.
type Display interface {
	// Render replaces the visible content with lines.
	Render(lines []string) error

	// MarkClean tells the display the content is saved, so closing it
	// does not prompt.
	MarkClean() error

	// ForwardRawEvent hands a system-command click back untouched, in
	// the form produced by protocol.Event.Passthrough.
	ForwardRawEvent(s string) error

	// RequestTerminate signals that the match is over. The host decides
	// how to exit.
	RequestTerminate() error
}
