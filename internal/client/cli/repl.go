package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Orders(ctx context.Context, status string) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the gophprofile CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. Handlers prompt on the same reader, so no input is
// buffered away from them. The loop exits when ctx is cancelled, on EOF,
// or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             show available commands
//	  - register         create an account
//	  - login            authenticate
//	  - forgot           reset a forgotten password
//	  - status           show the session state
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - help             show available commands
//	  - profile          show the profile
//	  - edit             edit the profile
//	  - passwd           change the password
//	  - orders [status]  list orders, optionally by status
//	  - logout           log out
//	  - status           show the session state
//	  - exit | quit      leave the program
//
// Protected commands typed while logged out are not hidden: the handlers ask
// the session guard and print the redirect. Handler errors are printed and
// the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("gp %s > ", statusFn()))
		line, err := readLine(ctx, reader)
		if ctx.Err() != nil {
			printlnFn("Bye!")
			return
		}
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		err = nil
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: profile, edit, passwd, (o)rders [" + strings.Join(statusNames(), "|") + "], logout, status, exit")
			} else {
				printlnFn("Available commands: register, login, forgot, status, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "forgot":
			err = a.ForgotPassword(ctx)

		case "profile":
			err = a.Profile(ctx)

		case "edit":
			err = a.EditProfile(ctx)

		case "passwd":
			err = a.ChangePassword(ctx)

		case "o", "orders":
			status := ""
			if len(args) > 0 {
				status = args[0]
			}
			err = a.Orders(ctx, status)

		case "logout":
			err = a.Logout(ctx)

		case "status":
			err = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

type lineResult struct {
	line string
	err  error
}

// readLine reads one line from reader but gives up as soon as ctx is done.
// Only one read is in flight at a time, so handlers that prompt on the same
// reader between calls never race with it.
func readLine(ctx context.Context, reader *bufio.Reader) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := reader.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}
