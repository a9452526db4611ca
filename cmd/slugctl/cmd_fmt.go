package main

import (
	"fmt"

	"github.com/spf13/cobra"

	slugpattern "github.com/slugforge/slugpattern"
)

func newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <pattern>",
		Short: "Parse a pattern and render it back in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := slugpattern.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), slugpattern.Render(parsed))
			return nil
		},
	}
}
