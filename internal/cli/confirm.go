package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andy/hotelmgr/internal/crud"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// promptConfirmer asks on the command line. Without a terminal on stdin
// every prompt is declined unless assumeYes is set.
type promptConfirmer struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	assumeYes   bool
}

func newConfirmer(cmd *cobra.Command) crud.Confirmer {
	yes, _ := cmd.Flags().GetBool("yes")

	in := cmd.InOrStdin()
	interactive := true
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}

	return &promptConfirmer{
		in:          in,
		out:         cmd.OutOrStdout(),
		interactive: interactive,
		assumeYes:   yes,
	}
}

// Confirm implements crud.Confirmer
func (c *promptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if c.assumeYes {
		return true, nil
	}
	if !c.interactive {
		return false, nil
	}
	return confirmPrompt(c.in, c.out, prompt), nil
}

// confirmPrompt reads a y/N answer
func confirmPrompt(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s [y/N] ", message)
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes" || input == "s" || input == "sim"
}
