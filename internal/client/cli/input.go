package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for the terminal calls.
var readPassword = term.ReadPassword
var isTerminal = term.IsTerminal

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a password without echo when
// stdin is a terminal. Piped input falls back to a plain line read from
// reader, so scripted sessions keep working.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(reader *bufio.Reader, prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return nil, err
		}
		return []byte(strings.TrimRight(line, "\r\n")), nil
	}

	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetOptionalText prompts for a replacement value. An empty answer keeps
// current and yields nil; clearWord yields a pointer to "".
func GetOptionalText(reader *bufio.Reader, label, current, clearWord string, w io.Writer) (*string, error) {
	prompt := fmt.Sprintf("%s [%s] (Enter to keep", label, current)
	if clearWord != "" {
		prompt += fmt.Sprintf(", %q to clear", clearWord)
	}
	prompt += ")"

	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return nil, err
	}
	switch {
	case s == "":
		return nil, nil
	case clearWord != "" && s == clearWord:
		empty := ""
		return &empty, nil
	}
	return &s, nil
}
