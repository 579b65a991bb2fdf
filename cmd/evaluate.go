package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"quiz_scoring_backend/internal/repository"
	"quiz_scoring_backend/internal/scoring"
	"quiz_scoring_backend/internal/service"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score an answer file against a YAML question bank without touching the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		questionsFile, _ := cmd.Flags().GetString("questions")
		answersFile, _ := cmd.Flags().GetString("answers")
		userID, _ := cmd.Flags().GetString("user")
		workers, _ := cmd.Flags().GetInt("workers")

		catalog, err := repository.NewFileQuestionRepository(questionsFile)
		if err != nil {
			return err
		}
		answers, err := readAnswers(answersFile)
		if err != nil {
			return err
		}

		svc := service.NewQuizService(catalog, nil, nil, nil, scoring.NewEngine(workers))
		outcome, err := svc.Preview(cmd.Context(), userID, answers)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	},
}

func init() {
	evaluateCmd.Flags().String("questions", "configs/questions.yaml", "YAML question bank")
	evaluateCmd.Flags().String("answers", "", "YAML or JSON map of question id to answer text")
	evaluateCmd.Flags().String("user", "cli", "User id recorded on the submission")
	evaluateCmd.Flags().Int("workers", 0, "Evaluation concurrency, 0 means GOMAXPROCS")
	_ = evaluateCmd.MarkFlagRequired("answers")
}

// readAnswers JSON 也是合法 YAML，统一用 yaml 解析
func readAnswers(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	answers := map[string]string{}
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parse answers %s: %w", path, err)
	}
	return answers, nil
}
