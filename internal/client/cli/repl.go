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

// execIface is the command surface the REPL drives. App satisfies it; tests
// use a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	isAdmin(ctx context.Context) bool

	Go(ctx context.Context, args []string) error
	Back(ctx context.Context) error

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Sweets(ctx context.Context, args []string) error
	Buy(ctx context.Context, args []string) error
	AddSweet(ctx context.Context) error
	Restock(ctx context.Context, args []string) error
	DeleteSweet(ctx context.Context, args []string) error

	Stats(ctx context.Context) error
}

const (
	helpGuest = "Available commands: go <path>, back, sweets [search] [category], buy <id>, register, login, stats, exit"
	helpUser  = "Available commands: go <path>, back, sweets [search] [category], buy <id>, whoami, logout, stats, exit"
	helpAdmin = "Available commands: go <path>, back, sweets [search] [category], buy <id>, add, restock <id> <n>, delete <id>, whoami, logout, stats, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit" and
// dispatches them to a. The prompt shows statusFn. Errors returned by
// handlers are printed and the loop goes on.
//
// Paths understood by "go": /, /sweets, /login, /register, /dashboard and
// /admin. Anything else leads back to /.
func runREPL(ctx context.Context, a execIface, statusFn func(context.Context) string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("sweetshop %s> ", statusFn(ctx)))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		err = nil

		switch cmd {
		case "help":
			switch {
			case a.isAdmin(ctx):
				printlnFn(helpAdmin)
			case a.isLoggedIn(ctx):
				printlnFn(helpUser)
			default:
				printlnFn(helpGuest)
			}

		case "go":
			err = a.Go(ctx, args)
		case "back":
			err = a.Back(ctx)

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)

		case "sweets", "l", "list":
			err = a.Sweets(ctx, args)
		case "buy":
			err = a.Buy(ctx, args)
		case "add":
			err = a.AddSweet(ctx)
		case "restock":
			err = a.Restock(ctx, args)
		case "delete":
			err = a.DeleteSweet(ctx, args)

		case "stats":
			err = a.Stats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return
			}
			printlnFn("Error:", err)
		}
	}
}
