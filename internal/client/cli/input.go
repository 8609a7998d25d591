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

// readPassword is swapped in tests so no terminal is needed.
var readPassword = term.ReadPassword

// readLine reads one line and trims it. A final line without a newline is
// returned as is; io.EOF is reported only when nothing was read.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetSimpleText prints prompt followed by a "> " marker and reads one line.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

// GetPassword reads a password from the terminal without echo.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}

// GetConfirmation asks a yes/no question. Only the confirm word or "yes"
// (any case) count as yes; EOF counts as no.
func GetConfirmation(reader *bufio.Reader, prompt, confirm, cancel string, w io.Writer) (bool, error) {
	if _, err := fmt.Fprintf(w, "%s [%s/%s] ", prompt, confirm, cancel); err != nil {
		return false, err
	}
	answer, err := readLine(reader)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, confirm) || strings.EqualFold(answer, "yes"), nil
}

// GetTagPairs reads name=value lines until an empty line or EOF. Lines are
// trimmed; parsing is left to models.TagsFromPairs.
func GetTagPairs(reader *bufio.Reader, w io.Writer) ([]string, error) {
	if _, err := fmt.Fprintln(w, "Enter tags as name=value, an empty value removes the tag (empty line to finish)"); err != nil {
		return nil, err
	}

	pairs := []string{}
	for {
		line, err := readLine(reader)
		if errors.Is(err, io.EOF) || line == "" {
			return pairs, nil
		}
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, line)
	}
}
