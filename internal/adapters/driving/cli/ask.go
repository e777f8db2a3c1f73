package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nordlaw/lagrum/internal/core/domain"
)

var (
	askLimit       int
	askShowContext bool
	askDebug       bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the legislation",
	Long: `Retrieves the passages closest to the question and asks the
generation model to answer in Swedish with source references.
Generation is deterministic: the same question over the same corpus
gives the same answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askLimit, "limit", "n", 5, "number of passages to retrieve")
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the retrieved passages before the answer")
	askCmd.Flags().BoolVar(&askDebug, "debug", false, "log the full conversation in verbose mode")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	answer, err := queryService.Ask(context.Background(), args[0], domain.AskOptions{
		Limit:         askLimit,
		ReturnContext: askShowContext,
		Debug:         askDebug,
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askShowContext && answer.Context != "" {
		cmd.Println("Context:")
		cmd.Println(answer.Context)
		cmd.Println()
	}

	cmd.Println(answer.Response)
	return nil
}
