package main

import (
	"fmt"
	"strconv"

	"github.com/forestrie/go-expandlist/expandlist"
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <scenario.yaml> <flat>",
		Short: "Replay a scenario and print the item at a flat position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flat, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("flat position %q: %w", args[1], err)
			}
			sc, err := LoadScenario(args[0])
			if err != nil {
				return err
			}

			p := sc.Provider()
			m := expandlist.New(p, nil)
			for i, step := range sc.Steps {
				if err := step.Apply(p, m); err != nil {
					return fmt.Errorf("step %d (%s): %w", i, step, err)
				}
			}

			out := cmd.OutOrStdout()
			pos := m.ItemAt(flat)
			if pos.IsNone() {
				fmt.Fprintf(out, "%d: none (item count %d)\n", flat, m.ItemCount())
				return nil
			}
			fmt.Fprintf(out, "%d: %s id=%#x\n", flat, formatPosition(pos), m.ItemID(flat))
			return nil
		},
	}
}
