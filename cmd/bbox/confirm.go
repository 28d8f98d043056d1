package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrDeclined reports that the user did not confirm the settings.
var ErrDeclined = errors.New("operation cancelled")

// Confirmer asks whether to proceed with the displayed settings.
type Confirmer interface {
	Confirm(out io.Writer) (bool, error)
}

// terminalConfirmer reads a single key in raw mode: Enter proceeds, anything
// else (including Ctrl+C) cancels. When raw mode is unavailable it falls back
// to reading a line.
type terminalConfirmer struct {
	in *os.File
}

func (c terminalConfirmer) Confirm(out io.Writer) (bool, error) {
	printPrompt(out)

	fd := int(c.in.Fd()) // #nosec G115 -- file descriptors fit in int
	old, err := term.MakeRaw(fd)
	if err != nil {
		return lineConfirmer{in: c.in}.read(out)
	}
	defer func() { _ = term.Restore(fd, old) }()

	fmt.Fprint(out, "   Waiting for input...")
	var key [1]byte
	if _, err := c.in.Read(key[:]); err != nil {
		return false, err
	}
	_ = term.Restore(fd, old)
	fmt.Fprintln(out)

	return key[0] == '\r' || key[0] == '\n', nil
}

// lineConfirmer reads one line: empty, "y" or "yes" proceed.
type lineConfirmer struct {
	in io.Reader
}

func (c lineConfirmer) Confirm(out io.Writer) (bool, error) {
	printPrompt(out)
	return c.read(out)
}

func (c lineConfirmer) read(out io.Writer) (bool, error) {
	fmt.Fprint(out, "   (Press Enter to continue) ")
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	if errors.Is(err, io.EOF) && line == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return true, nil
	}
	return false, nil
}

func printPrompt(out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Proceed with these settings?")
	fmt.Fprintln(out, "   Press ENTER to continue, any other key to cancel")
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// confirmerFor picks the prompt for env: the injected one, the raw terminal
// prompt, or nil when there is no terminal to ask.
func confirmerFor(env *Environment) Confirmer {
	if env.Confirmer != nil {
		return env.Confirmer
	}
	if !env.Interactive {
		return nil
	}
	if f, ok := env.Stdin.(*os.File); ok {
		return terminalConfirmer{in: f}
	}
	return lineConfirmer{in: env.Stdin}
}
