// Command labelsheet prints sheets of sequentially numbered labels, with
// optional QR codes, for pre-cut label stock such as Avery L4731.
//
// Exit status is 0 on success, 2 when the request itself was invalid
// (bad flag value, unknown format, labels that do not fit, text the label
// font cannot draw), 1 when generation failed, and 130 when interrupted.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labelsheet/internal/cli"
	lerrors "github.com/matzehuels/labelsheet/pkg/errors"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx)
	report(os.Stderr, err)
	os.Exit(exitCode(err))
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// -v must take effect before the root hook loads the config file.
	configHook := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		c.SetVerbose(verbose)
		if configHook != nil {
			return configHook(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// report prints err for the user. Invalid requests show the bare message
// and its code; generation failures keep the full error chain.
func report(w io.Writer, err error) {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
	case lerrors.IsUserError(err):
		fmt.Fprintf(w, "Error: %s (%s)\n", lerrors.UserMessage(err), lerrors.GetCode(err))
	default:
		fmt.Fprintln(w, "Error:", err)
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case lerrors.IsUserError(err):
		return exitUsage
	}
	return exitFailure
}
