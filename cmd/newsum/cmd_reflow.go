package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"newsum/internal/reflow"
)

func newReflowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reflow",
		Short: "Wrap text from stdin to a fixed width",
		Long: `Read text from stdin and wrap every input line to --width characters,
breaking only at spaces. Words longer than the width are kept whole.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			width, _ := cmd.Flags().GetInt("width")
			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			out := cmd.OutOrStdout()
			for scanner.Scan() {
				fmt.Fprintln(out, reflow.Reflow(scanner.Text(), width))
			}
			return scanner.Err()
		},
	}
	cmd.Flags().Int("width", reflow.DefaultWidth, "Wrap width in characters")
	return cmd
}
