package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

// AskCmd creates the ask command.
func AskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <document_id> [question...]",
		Short: "Ask a question about an indexed document",
		Long:  "Asks a question about the document. With no question, the assistant greets you with a summary of the document.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			question := strings.Join(args[1:], " ")
			return runAsk(cmd, args[0], question, outputJSON)
		},
	}
}

func runAsk(cmd *cobra.Command, documentID, question string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post(fmt.Sprintf("/documents/%s/chat", documentID), chatRequest{Question: question})
	if err != nil {
		return fmt.Errorf("failed to get answer: %w", err)
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse answer: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(result.Answer)
	return nil
}
