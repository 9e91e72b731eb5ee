package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/lotkit/internal/shell"
)

var shellPrompt string

func init() {
	cmd := newShellCmd()
	cmd.Flags().StringVar(&shellPrompt, "prompt", "lot> ", "Prompt printed before each command (empty for none)")
	rootCmd.AddCommand(cmd)
}

func newShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Read park/remove commands from stdin",
		Long: `The shell command builds an empty lot and executes one command per line
until end of input or "exit". Type "help" for the command list.

Example:
  lotctl shell --floors 2 --spots 5
  printf 'park T1 truck\npark C1 car\nstatus\n' | lotctl shell --prompt ''`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), cmd.InOrStdin())
		},
	}
	return cmd
}

func runShell(ctx context.Context, in io.Reader) error {
	l, err := newLot(cfg.LotOptions())
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	prompt := shellPrompt
	if quiet {
		out = io.Discard
		prompt = ""
	}
	return shell.New(l, out).Run(ctx, in, prompt)
}
