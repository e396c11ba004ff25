package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/weatherface/internal/client/models"
)

// readPassword and isTerminal are test seams for the x/term calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

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
	return readLine(reader)
}

// GetPassword prints prompt to w and reads a password from the terminal
// without echo. When stdin is not a terminal the password is read as a plain
// line from reader instead.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(reader *bufio.Reader, prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := readLine(reader)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetCities reads roster entries, one "name, postCode" per line, until an
// empty line. A malformed line is reported as a field error for its index.
func GetCities(reader *bufio.Reader, w io.Writer) ([]models.City, error) {
	fmt.Fprintln(w, "Enter cities as name, post code (empty line to finish)")

	var cities []models.City
	for {
		line, err := readLine(reader)
		if line == "" {
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			break
		}

		name, code, ok := cutLast(line, ",")
		if !ok {
			return nil, models.ValidationError{
				fmt.Sprintf("cities[%d]", len(cities)): "expected name, post code",
			}
		}
		postCode, perr := ParsePostCode(code)
		if perr != nil {
			return nil, models.ValidationError{
				fmt.Sprintf("cities[%d].address.postCode", len(cities)): models.MsgPostCodeRequired,
			}
		}
		cities = append(cities, models.NewCity(strings.TrimSpace(name), postCode))
	}
	return cities, nil
}

// ParsePostCode accepts digits with optional inner spaces ("110 00").
func ParsePostCode(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("post code must be positive, got %d", n)
	}
	return n, nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
