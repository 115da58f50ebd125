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

// errEmptyInput is returned when a required prompt is answered with a blank line.
var errEmptyInput = errors.New("input must not be empty")

// readPassword reads from the terminal without echo. Tests replace it.
var readPassword = term.ReadPassword

// GetSimpleText asks for one line on the shared REPL reader:
//
//	Enter username
//	> _
//
// Surrounding whitespace is dropped and a blank answer is an error. A last
// line without a newline is accepted at EOF.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n> ", prompt); err != nil {
		return "", err
	}

	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	text := strings.TrimSpace(line)
	if text == "" {
		return "", errEmptyInput
	}
	return text, nil
}

// GetPassword reads a password from stdin with echo off. The caller owns the
// returned slice and should wipe it with common.WipeByteArray.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}

	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w) // echo is off, so the user's Enter left no newline
	if err != nil {
		return nil, err
	}
	if len(pw) == 0 {
		return nil, errEmptyInput
	}
	return pw, nil
}
