package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	slugpattern "github.com/slugforge/slugpattern"
	"github.com/slugforge/slugpattern/lsp"
	"github.com/slugforge/slugpattern/provider"
)

func newLSPCmd() *cobra.Command {
	var dictURL string
	var dictKey string
	var cacheTTL time.Duration

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			var p slugpattern.Provider = provider.NewMemory(nil, nil)
			if dictURL != "" {
				key := dictKey
				if key == "" {
					key = os.Getenv(provider.EnvDictionaryServiceKey)
				}
				h := provider.NewHTTP([]byte(key), "slugctl", cacheTTL)
				h.BaseURL = dictURL
				p = h
			}

			server := lsp.NewServer(p, "0.1.0")
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&dictURL, "dict-url", "", "dictionary service base URL (defaults to the offline in-memory provider)")
	cmd.Flags().StringVar(&dictKey, "dict-key", "", "signing key for the dictionary service, also read from SLUGPATTERN_DICTIONARY_KEY")
	cmd.Flags().DurationVar(&cacheTTL, "dict-cache-ttl", 5*time.Minute, "how long to cache dictionary/tag responses")

	return cmd
}
