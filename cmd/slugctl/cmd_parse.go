package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	slugpattern "github.com/slugforge/slugpattern"
	"github.com/slugforge/slugpattern/pattern"
)

func newParseCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <pattern>",
		Short: "Parse a slug pattern and dump its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := slugpattern.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(parsed)
			}
			return writeParsedPatternText(cmd.OutOrStdout(), parsed)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the parsed structure as JSON instead of indented text")

	return cmd
}

func writeParsedPatternText(w io.Writer, p *slugpattern.ParsedPattern) error {
	var b strings.Builder
	fmt.Fprintf(&b, "TextChunks: %q\n", p.TextChunks)
	for i, el := range p.Elements {
		fmt.Fprintf(&b, "Elements[%d]:\n", i)
		writeElementText(&b, el, "  ")
	}
	if p.GlobalSettings != nil {
		fmt.Fprintf(&b, "GlobalSettings:\n")
		fmt.Fprintf(&b, "  Language: %q\n", p.GlobalSettings.Language)
		fmt.Fprintf(&b, "  IncludeTags: %v\n", p.GlobalSettings.IncludeTags)
		fmt.Fprintf(&b, "  ExcludeTags: %v\n", p.GlobalSettings.ExcludeTags)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeElementText(b *strings.Builder, el pattern.PatternElement, indent string) {
	switch {
	case el.Selector != nil:
		fmt.Fprintf(b, "%sSelector: Kind=%q Language=%q IncludeTags=%v ExcludeTags=%v\n",
			indent, el.Selector.Kind, el.Selector.Language, el.Selector.IncludeTags, el.Selector.ExcludeTags)
	case el.Number != nil:
		fmt.Fprintf(b, "%sNumberGen: MaxLength=%d Base=%s\n", indent, el.Number.MaxLength, el.Number.Base)
	case el.Special != nil:
		fmt.Fprintf(b, "%sSpecialCharGen: MinLength=%d MaxLength=%d\n", indent, el.Special.MinLength, el.Special.MaxLength)
	}
}
