package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/wardrobe/internal/client/services"
	"github.com/dmitrijs2005/wardrobe/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	View(ctx context.Context, section services.Section) error
	List(ctx context.Context) error
	Groups(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Upload(ctx context.Context, path string) error
	Delete(ctx context.Context, id string) error
	Tag(ctx context.Context, id string, pairs []string) error
	Today(ctx context.Context, query string) error
	SetTemperature(ctx context.Context, value string) error
	Plan(ctx context.Context) error
	Week(ctx context.Context) error
	Chat(ctx context.Context, message string) error
	alert(err error)
	dismissAlert()
}

const (
	helpSignedOut = "Available commands: signup, login, exit"
	helpSignedIn  = "Available commands: whoami, view <section>, (l)ist, groups, show <id>, upload <path>, " +
		"delete <id>, tag <id> [name=value...], today [query], temp <°C>, plan, week, chat <message>, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the wardrobe CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF, when ctx is done or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help              show available commands
//	  - signup            create an account
//	  - login             authenticate
//	  - exit | quit       leave the program
//
//	Logged in:
//	  - whoami            show the signed-in user
//	  - view <section>    switch section (today, wardrobe, design, week, chat, account)
//	  - list | l          list the wardrobe
//	  - groups            list the wardrobe by category group
//	  - show <id>         show one outfit with its tags
//	  - upload <path>     upload an image
//	  - delete <id>       delete an outfit after confirmation
//	  - tag <id> [k=v]    edit tags; an empty value removes the tag
//	  - today [query]     suggest an outfit for today
//	  - temp <°C>         set the temperature used in requests
//	  - plan              plan the next days
//	  - week              show the last plan
//	  - chat <message>    ask the outfit assistant
//	  - logout            end the session
//
// Failed delete, tag, today, plan and chat commands open the alert modal,
// which the next command dismisses. Other errors are printed. Either way the
// loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("wr %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if !a.isLoggedIn() && requiresSession(cmd) {
			printlnFn("Please login first")
			continue
		}
		a.dismissAlert()

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "signup", "register":
			report(a.Signup(ctx))

		case "login":
			report(a.Login(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "whoami":
			report(a.WhoAmI(ctx))

		case "view", "section":
			if len(args) != 1 {
				printlnFn("Usage: view <today|wardrobe|design|week|chat|account>")
				continue
			}
			report(a.View(ctx, services.Section(args[0])))

		case "l", "list", "wardrobe":
			report(a.List(ctx))

		case "groups":
			report(a.Groups(ctx))

		case "show":
			if len(args) != 1 {
				printlnFn("Usage: show <id>")
				continue
			}
			report(a.Show(ctx, args[0]))

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <path>")
				continue
			}
			report(a.Upload(ctx, strings.Join(args, " ")))

		case "delete", "rm":
			if len(args) != 1 {
				printlnFn("Usage: delete <id>")
				continue
			}
			a.alert(a.Delete(ctx, args[0]))

		case "tag":
			if len(args) == 0 {
				printlnFn("Usage: tag <id> [name=value...]")
				continue
			}
			a.alert(a.Tag(ctx, args[0], args[1:]))

		case "today", "suggest":
			a.alert(a.Today(ctx, strings.Join(args, " ")))

		case "temp":
			if len(args) != 1 {
				printlnFn("Usage: temp <°C>")
				continue
			}
			report(a.SetTemperature(ctx, args[0]))

		case "plan":
			a.alert(a.Plan(ctx))

		case "week":
			report(a.Week(ctx))

		case "chat", "ask":
			if len(args) == 0 {
				printlnFn("Usage: chat <message>")
				continue
			}
			a.alert(a.Chat(ctx, strings.Join(args, " ")))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

var sessionCommands = map[string]struct{}{
	"logout": {}, "whoami": {}, "view": {}, "section": {}, "l": {}, "list": {}, "wardrobe": {},
	"groups": {}, "show": {}, "upload": {}, "delete": {}, "rm": {}, "tag": {}, "today": {},
	"suggest": {}, "plan": {}, "week": {}, "chat": {}, "ask": {},
}

func requiresSession(cmd string) bool {
	_, ok := sessionCommands[cmd]
	return ok
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", userMessage(err))
	}
}

// userMessage turns an error into text for the terminal. Backend messages
// are shown as they are; transport errors get a short explanation.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrNetworkTimeout):
		return "the server took too long to respond"
	case errors.Is(err, common.ErrNetworkFailure):
		return "cannot reach the server"
	case errors.Is(err, common.ErrNoIdentity):
		return "please login first"
	case errors.Is(err, common.ErrBusy):
		return "another request is still running"
	}
	return err.Error()
}
