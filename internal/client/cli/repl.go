package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Offline(ctx context.Context, on bool) error
	List(ctx context.Context) error
	New(ctx context.Context) error
	Show(ctx context.Context, arg string) error
	Rename(ctx context.Context, arg string) error
	Edit(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error
}

// runREPL starts a simple read–eval–print loop for the FlowDeck CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// register, login, offline, help and exit are public; everything else is
// protected and bootstraps the session through the guard inside the
// handler. Any errors returned by command handlers are ignored here;
// handlers report their own errors. This keeps the loop resilient and
// focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	needsArg := func(parts []string, usage string) (string, bool) {
		if len(parts) < 2 {
			printlnFn("Usage:", usage)
			return "", false
		}
		return parts[1], true
	}

	for {
		printlnFn(fmt.Sprintf("fd> %s", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, new, show, rename, edit, delete, whoami, offline on|off, logout, exit")
			} else {
				printlnFn("Available commands: register, login, offline on|off, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "offline":
			arg, ok := needsArg(parts, "offline on|off")
			if !ok {
				continue
			}
			switch arg {
			case "on":
				_ = a.Offline(ctx, true)
			case "off":
				_ = a.Offline(ctx, false)
			default:
				printlnFn("Usage: offline on|off")
			}

		case "l", "list":
			_ = a.List(ctx)

		case "new":
			_ = a.New(ctx)

		case "show":
			if arg, ok := needsArg(parts, "show <id|#row>"); ok {
				_ = a.Show(ctx, arg)
			}

		case "rename":
			if arg, ok := needsArg(parts, "rename <id|#row>"); ok {
				_ = a.Rename(ctx, arg)
			}

		case "edit":
			if arg, ok := needsArg(parts, "edit <id|#row>"); ok {
				_ = a.Edit(ctx, arg)
			}

		case "delete":
			if arg, ok := needsArg(parts, "delete <id|#row>"); ok {
				_ = a.Delete(ctx, arg)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// Root runs the REPL against stdin until EOF or exit.
func (a *App) Root(ctx context.Context) {
	printlnFn("FlowDeck CLI (type 'help' for commands)")

	statusFn := func() string {
		parts := []string{}
		if identity := a.session.Identity(); identity != nil {
			parts = append(parts, identity.Username)
		}
		if a.offline {
			parts = append(parts, "offline")
		}
		if len(parts) == 0 {
			return ""
		}
		return "(" + strings.Join(parts, " ") + ")"
	}

	runREPL(ctx, a, statusFn, bufio.NewScanner(os.Stdin))
}
