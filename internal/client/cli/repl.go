package cli

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
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Check(ctx context.Context) error
	Submit(ctx context.Context) error
	Edit(ctx context.Context) error
	History(ctx context.Context, args []string) error
	Team(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the standup CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit". The prompt, carrying statusFn's text, goes to prompts;
// everything else goes to w.
//
//	Not logged in:
//	  - help               show available commands
//	  - register           create a user
//	  - login <username>   act as an existing user
//	  - exit | quit        leave the program
//
//	Logged in:
//	  - check              show whether today's standup is in
//	  - submit             write today's standup
//	  - edit               change today's standup
//	  - history [period]   own standups: all, week or month
//	  - team [filter]      latest standup per teammate: today, yesterday or week
//	  - logout
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w, prompts io.Writer) {
	for {
		fmt.Fprintf(prompts, "standup%s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: check, submit, edit, history [all|week|month], team [today|yesterday|week], logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login <username>, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "check":
			_ = a.Check(ctx)

		case "submit":
			_ = a.Submit(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "history":
			_ = a.History(ctx, args)

		case "team":
			_ = a.Team(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
