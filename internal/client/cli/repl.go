package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Status(ctx context.Context) error
	EditClass(ctx context.Context) error
	EditStudent(ctx context.Context) error
	EditFamily(ctx context.Context) error
	EditEducationHealth(ctx context.Context) error
	Attach(ctx context.Context, rest string) error
	Detach(ctx context.Context, args []string) error
	ListAttachments(ctx context.Context) error
	SetStudentID(ctx context.Context, args []string) error
	Review(ctx context.Context) error
	Submit(ctx context.Context) error
	Reset(ctx context.Context) error
}

const helpText = `Available commands:
  status                 show which steps are saved
  class                  choose school and class
  student                enter student information
  family                 enter mother and father information
  education | health     enter education and health information
  attach <slot> <path>   add a file (slots: parentsId, birthCertificate, studentPhotos, familyCard)
  detach <id>            remove a file
  files                  list selected files
  student-id <id>        link uploads to an existing student record
  review                 print the registration that would be sent
  submit                 upload pending files and send the registration
  reset                  clear all saved answers
  exit | quit            leave the program`

// runREPL starts a simple read–eval–print loop for the registration CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on a with the remaining tokens; attach gets the raw
// remainder so file paths keep their spacing. Unknown commands are
// reported back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "ags (%s)> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(out)
			return
		}

		cmd, rest := splitFirst(line)
		if cmd == "" {
			continue
		}
		args := strings.Fields(rest)

		switch cmd {
		case "help":
			fmt.Fprintln(out, helpText)

		case "status":
			_ = a.Status(ctx)

		case "class":
			_ = a.EditClass(ctx)

		case "student":
			_ = a.EditStudent(ctx)

		case "family":
			_ = a.EditFamily(ctx)

		case "education", "health":
			_ = a.EditEducationHealth(ctx)

		case "attach":
			_ = a.Attach(ctx, rest)

		case "detach":
			_ = a.Detach(ctx, args)

		case "files", "attachments":
			_ = a.ListAttachments(ctx)

		case "student-id":
			_ = a.SetStudentID(ctx, args)

		case "review":
			_ = a.Review(ctx)

		case "submit":
			_ = a.Submit(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}

// splitFirst returns the first whitespace-delimited word of s and the rest
// of s after the whitespace that follows it. Surrounding whitespace of s is
// ignored; inner whitespace of the rest is kept as typed.
func splitFirst(s string) (first, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}
