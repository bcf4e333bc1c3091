package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context, username string) error
	GoogleLogin(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	ListSamples(ctx context.Context) error
	AddSample(ctx context.Context, name, age string) error
	Products(ctx context.Context) error
	Buy(ctx context.Context, productID string) error
	Payments(ctx context.Context) error
	Account(ctx context.Context) error

	// begin marks the start of a command; session changes until the
	// returned func is called are the command's own.
	begin() (done func())
}

const (
	helpAnonymous     = "Available commands: register, login [username], google-login [token], products, exit"
	helpAuthenticated = "Available commands: (l)ist, add [name age], products, buy [product], payments, account, whoami, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the paydesk CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user
// types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current user (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                   show available commands
//	  - register               create an account
//	  - login [username]       authenticate with a password
//	  - google-login [token]   authenticate with a Google access token
//	  - products               show the catalog
//	  - exit | quit            leave the program
//
//	Logged in, additionally:
//	  - list | l               list samples
//	  - add [name age]         add a sample
//	  - buy [product]          start a checkout
//	  - payments               show payment history
//	  - account                show the credit balance
//	  - whoami                 show the current user
//	  - logout                 log out
//
// Any errors returned by command handlers are ignored here; handlers
// report their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("paydesk %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && strings.TrimSpace(line) != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		done := a.begin()
		quit := dispatch(ctx, a, parts)
		done()
		if quit {
			return
		}

		if errors.Is(err, io.EOF) {
			return
		}
	}
}

// dispatch runs one command line and reports whether the shell should exit.
func dispatch(ctx context.Context, a execIface, parts []string) bool {
	cmd := parts[0]

	switch cmd {
	case "help":
		if a.isLoggedIn(ctx) {
			printlnFn(helpAuthenticated)
		} else {
			printlnFn(helpAnonymous)
		}

	case "register":
		_ = a.Register(ctx)

	case "login":
		_ = a.Login(ctx, arg(parts, 1))

	case "google-login":
		_ = a.GoogleLogin(ctx, arg(parts, 1))

	case "products":
		_ = a.Products(ctx)

	case "exit", "quit":
		printlnFn("Bye!")
		return true

	case "l", "list", "add", "buy", "payments", "account", "whoami", "logout":
		if !a.isLoggedIn(ctx) {
			printlnFn("Please login first")
			break
		}
		runProtected(ctx, a, cmd, parts)

	default:
		printlnFn("Unknown command:", cmd)
	}
	return false
}

func runProtected(ctx context.Context, a execIface, cmd string, parts []string) {
	switch cmd {
	case "l", "list":
		_ = a.ListSamples(ctx)
	case "add":
		_ = a.AddSample(ctx, arg(parts, 1), arg(parts, 2))
	case "buy":
		_ = a.Buy(ctx, arg(parts, 1))
	case "payments":
		_ = a.Payments(ctx)
	case "account":
		_ = a.Account(ctx)
	case "whoami":
		_ = a.Whoami(ctx)
	case "logout":
		_ = a.Logout(ctx)
	}
}

func arg(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}
