package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	Export(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit"/"quit" or ctx
// cancellation and dispatches them to a.
//
//	Not logged in:
//	  help, register, login, exit | quit
//
//	Logged in:
//	  help, (l)ist, add, edit, delete, export, logout, exit | quit
//
// Handler errors are reported on w and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(w, "cb%s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: (l)ist, add, edit, delete, export, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, exit")
			}
			continue

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "l", "list", "add", "edit", "delete", "export", "logout":
			if !a.isLoggedIn() {
				fmt.Fprintln(w, "Please log in first.")
				continue
			}
			cmdErr = dispatchAccount(ctx, a, cmd)

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
			continue
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}

func dispatchAccount(ctx context.Context, a execIface, cmd string) error {
	switch cmd {
	case "l", "list":
		return a.List(ctx)
	case "add":
		return a.Add(ctx)
	case "edit":
		return a.Edit(ctx)
	case "delete":
		return a.Delete(ctx)
	case "export":
		return a.Export(ctx)
	case "logout":
		return a.Logout(ctx)
	}
	return nil
}
