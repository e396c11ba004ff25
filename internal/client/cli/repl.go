package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dmitrijs2005/weatherface/internal/client/models"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	Weather(ctx context.Context, args []string) error
	Cities(ctx context.Context) error
	AddCity(ctx context.Context) error
	EditCity(ctx context.Context, args []string) error
	RemoveCity(ctx context.Context, args []string) error
	Select(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	SignOut(ctx context.Context) error
}

// protected lists the commands that need a signed-in user.
var protected = map[string]bool{
	"cities":     true,
	"addcity":    true,
	"editcity":   true,
	"removecity": true,
	"select":     true,
	"profile":    true,
	"signout":    true,
}

// runREPL starts a simple read-eval-print loop for the WeatherFace CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Prompts, help and errors are written to w. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help               show available commands
//	  - signup             create the account on this device
//	  - signin             authenticate
//	  - weather [city]     current weather for city, or the selected city
//	  - exit | quit        leave the program
//
//	Signed in:
//	  - cities             list the roster
//	  - addcity            add a city
//	  - editcity [code]    change a city's name or post code
//	  - removecity [code]  remove a city
//	  - select <code>      select a city for "weather"
//	  - profile            show and edit the profile
//	  - signout            sign out and delete the local account
//
// Protected commands typed while signed out are answered with a sign-in hint.
// Errors returned by handlers are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	printLine := func(args ...any) { fmt.Fprintln(w, args...) }

	for {
		printLine(fmt.Sprintf("wf %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if protected[cmd] && !a.isLoggedIn() {
			printLine("Please sign in first (signin or signup).")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printLine("Available commands: weather [city], cities, addcity, editcity, removecity, select <postCode>, profile, signout, exit")
			} else {
				printLine("Available commands: signup, signin, weather <city>, exit")
			}

		case "signup":
			cmdErr = a.SignUp(ctx)

		case "signin":
			cmdErr = a.SignIn(ctx)

		case "weather", "w":
			cmdErr = a.Weather(ctx, args)

		case "cities", "l":
			cmdErr = a.Cities(ctx)

		case "addcity":
			cmdErr = a.AddCity(ctx)

		case "editcity":
			cmdErr = a.EditCity(ctx, args)

		case "removecity":
			cmdErr = a.RemoveCity(ctx, args)

		case "select":
			cmdErr = a.Select(ctx, args)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "signout":
			cmdErr = a.SignOut(ctx)

		case "exit", "quit":
			printLine("Bye!")
			return

		default:
			printLine("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printLine(describeError(cmdErr))
		}
	}
}

// describeError turns a handler error into the text shown to the user.
// Field errors are listed one per line.
func describeError(err error) string {
	var ve models.ValidationError
	if errors.As(err, &ve) {
		fields := make([]string, 0, len(ve))
		for f := range ve {
			fields = append(fields, f)
		}
		sort.Strings(fields)

		lines := make([]string, 0, len(fields))
		for _, f := range fields {
			lines = append(lines, fmt.Sprintf("  %s: %s", f, ve[f]))
		}
		return "Please fix the following:\n" + strings.Join(lines, "\n")
	}
	return "Error: " + err.Error()
}
