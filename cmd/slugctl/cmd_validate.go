package main

import (
	"fmt"

	"github.com/spf13/cobra"

	slugpattern "github.com/slugforge/slugpattern"
	"github.com/slugforge/slugpattern/pattern/parser"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <pattern>",
		Short: "Check whether a slug pattern is well-formed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := args[0]
			_, err := slugpattern.Parse(pattern)
			if err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}

			if perr, ok := err.(*parser.Error); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "invalid: %s (at byte %d)\n", perr.Message, perr.Position)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "invalid: %s\n", err)
			}
			return fmt.Errorf("invalid pattern")
		},
	}
}
