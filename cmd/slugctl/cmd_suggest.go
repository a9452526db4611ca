package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	slugpattern "github.com/slugforge/slugpattern"
	"github.com/slugforge/slugpattern/provider"
)

func newSuggestCmd() *cobra.Command {
	var cursor int
	var dictURL string
	var dictKey string
	var cacheTTL time.Duration
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "suggest <pattern>",
		Short: "List completions for a slug pattern at a cursor position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pat := args[0]

			var p slugpattern.Provider
			if dictURL != "" {
				key := dictKey
				if key == "" {
					key = os.Getenv(provider.EnvDictionaryServiceKey)
				}
				h := provider.NewHTTP([]byte(key), "slugctl", cacheTTL)
				h.BaseURL = dictURL
				p = h
			} else {
				p = provider.NewMemory(nil, nil)
			}

			suggestions, err := slugpattern.Suggest(pat, cursor, p)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(suggestions)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TEXT\tKIND\tREPLACE")
			for _, s := range suggestions {
				fmt.Fprintf(tw, "%s\t%s\t[%d,%d)\n", s.Text, s.Kind, s.ReplaceRange.Start, s.ReplaceRange.End)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&cursor, "cursor", 0, "byte offset into the pattern to suggest completions for")
	cmd.Flags().StringVar(&dictURL, "dict-url", "", "dictionary service base URL (defaults to the offline in-memory provider)")
	cmd.Flags().StringVar(&dictKey, "dict-key", "", "signing key for the dictionary service, also read from SLUGPATTERN_DICTIONARY_KEY")
	cmd.Flags().DurationVar(&cacheTTL, "dict-cache-ttl", 5*time.Minute, "how long to cache dictionary/tag responses")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print suggestions as JSON instead of a table")

	return cmd
}
