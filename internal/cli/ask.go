package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	askJSON        bool
	askShowContext bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the corpus",
	Long: `Ask a question and get an answer backed by the corpus, or a refusal
when the corpus does not support it.

Examples:
  corpusqa ask "What does Sartre mean by abandonment?"
  corpusqa ask --json "What is bad faith?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the retrieved context")
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(args[0])
	if query == "" {
		return fmt.Errorf("question is empty")
	}

	cfg := GetConfig()
	pipeline, st, err := newPipeline(cfg, GetRootDir())
	if err != nil {
		return err
	}
	defer st.Close()

	answer, err := pipeline.Ask(context.Background(), query)
	if err != nil {
		return err
	}

	if askJSON {
		output, _ := json.MarshalIndent(answer, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if answer.Refused {
		fmt.Println(answer.Text)
		return nil
	}

	fmt.Println(answer.Text)
	fmt.Println()
	fmt.Println("Sources:")
	for _, s := range answer.Sources {
		fmt.Printf("- %s p.%d (score %.3f)\n", s.Source, s.Page, s.Score)
	}
	fmt.Printf("\nBest score: %.3f (threshold %.3f)\n", answer.BestScore, cfg.Retrieve.MinScore)

	if askShowContext {
		fmt.Println("\nRetrieved context:")
		fmt.Println(answer.Context)
	}

	return nil
}
