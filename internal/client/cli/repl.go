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
	isSignedIn() bool
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	ShowCredits(ctx context.Context) error
	AddFiles(ctx context.Context, paths []string) error
	RemoveFile(ctx context.Context, arg string) error
	ShowBatch(ctx context.Context) error
	Submit(ctx context.Context) error
	ListFiles(ctx context.Context) error
	RecentFiles(ctx context.Context) error
	Toggle(ctx context.Context, fileID string) error
	Delete(ctx context.Context, fileID string) error
	Download(ctx context.Context, fileID, dest string) error
	Share(ctx context.Context, fileID string) error
	PublicInfo(ctx context.Context, fileID string) error
	Plans(ctx context.Context) error
	Buy(ctx context.Context, planID string) error
	Transactions(ctx context.Context) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Errors returned by command handlers are printed, never fatal; admission
// rejections and other policy outcomes come back through the same path.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cs %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isSignedIn() {
				printlnFn("Available commands: credits, add <path...>, remove <n>, batch, submit,")
				printlnFn("  files, recent, toggle <id>, rm <id>, download <id> [dest], share <id>,")
				printlnFn("  public <id>, plans, buy <plan>, transactions, logout, exit")
			} else {
				printlnFn("Available commands: login, public <id>, plans, exit")
			}

		case "login":
			err = a.SignIn(ctx)

		case "logout":
			err = a.SignOut(ctx)

		case "credits":
			err = a.ShowCredits(ctx)

		case "add":
			if len(args) == 0 {
				printlnFn("Usage: add <path> [path...]")
				continue
			}
			err = a.AddFiles(ctx, args)

		case "remove":
			if len(args) != 1 {
				printlnFn("Usage: remove <n>")
				continue
			}
			err = a.RemoveFile(ctx, args[0])

		case "batch":
			err = a.ShowBatch(ctx)

		case "submit":
			err = a.Submit(ctx)

		case "files":
			err = a.ListFiles(ctx)

		case "recent":
			err = a.RecentFiles(ctx)

		case "toggle":
			if len(args) != 1 {
				printlnFn("Usage: toggle <id>")
				continue
			}
			err = a.Toggle(ctx, args[0])

		case "rm":
			if len(args) != 1 {
				printlnFn("Usage: rm <id>")
				continue
			}
			err = a.Delete(ctx, args[0])

		case "download":
			if len(args) < 1 || len(args) > 2 {
				printlnFn("Usage: download <id> [dest]")
				continue
			}
			dest := ""
			if len(args) == 2 {
				dest = args[1]
			}
			err = a.Download(ctx, args[0], dest)

		case "share":
			if len(args) != 1 {
				printlnFn("Usage: share <id>")
				continue
			}
			err = a.Share(ctx, args[0])

		case "public":
			if len(args) != 1 {
				printlnFn("Usage: public <id>")
				continue
			}
			err = a.PublicInfo(ctx, args[0])

		case "plans":
			err = a.Plans(ctx)

		case "buy":
			if len(args) != 1 {
				printlnFn("Usage: buy <plan>")
				continue
			}
			err = a.Buy(ctx, args[0])

		case "transactions", "tx":
			err = a.Transactions(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(err.Error())
		}
	}
}
