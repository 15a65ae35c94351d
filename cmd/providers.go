package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/luxescript/config"
	"github.com/gaurav-prasanna/luxescript/core/llm"
)

var flagCheck bool

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the LLM providers and where their keys come from",
	Long: `Providers lists every supported LLM backend. With --check, the configured
provider is pinged with the resolved credentials.`,
	Args: cobra.NoArgs,
	RunE: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
	providersCmd.Flags().BoolVar(&flagCheck, "check", false, "Ping the configured provider")
}

func runProviders(cmd *cobra.Command, args []string) error {
	for _, p := range config.Providers {
		marker := " "
		if p.ID == cfg.Provider {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %-11s %s\n", marker, p.ID, p.Description)
		if p.NeedsAPIKey {
			fmt.Fprintf(os.Stdout, "    key: %s  (%s)\n", p.EnvVars[0], p.SignupURL)
		}
	}

	if !flagCheck {
		return nil
	}

	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := provider.Ping(ctx); err != nil {
		return fmt.Errorf("%s is not reachable: %w", provider.Name(), err)
	}
	fmt.Fprintf(os.Stdout, "\n✓ %s is reachable\n", provider.Name())
	return nil
}
