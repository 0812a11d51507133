package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/newmesstuff/go-polarion/faults"
	"github.com/newmesstuff/go-polarion/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeForError(err))
	}
}

func exitCodeForError(err error) int {
	var typedErr *faults.TypedError
	if !errors.As(err, &typedErr) {
		return 1
	}

	switch typedErr.Category {
	case faults.ValidationError, faults.ConfigurationError:
		return 2
	case faults.NotFoundError, faults.AttachmentNotFoundError:
		return 3
	case faults.AuthError:
		return 4
	case faults.TransportError:
		return 5
	default:
		return 1
	}
}
