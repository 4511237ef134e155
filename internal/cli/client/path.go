package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type learningStep struct {
	Title        string      `json:"title"`
	Summary      string      `json:"summary"`
	YouTubeLinks []videoLink `json:"youtube_links"`
	WebLinks     []webLink   `json:"web_links"`
}

type studyPathResponse struct {
	Concept string         `json:"concept"`
	Steps   []learningStep `json:"steps"`
}

// PathCmd creates the path command.
func PathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <document_id> <concept...>",
		Short: "Build an ordered study path for a complex concept",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			concept := strings.Join(args[1:], " ")
			return runPath(cmd, args[0], concept, outputJSON)
		},
	}
}

func runPath(cmd *cobra.Command, documentID, concept string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post(fmt.Sprintf("/documents/%s/study-path", documentID), conceptRequest{Concept: concept})
	if err != nil {
		return fmt.Errorf("failed to build study path: %w", err)
	}

	var result studyPathResponse
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse study path: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Study path for %q:\n\n", result.Concept)
	for i, step := range result.Steps {
		fmt.Printf("%d. %s\n", i+1, step.Title)
		if step.Summary != "" {
			fmt.Printf("   %s\n", step.Summary)
		}
		for _, link := range step.YouTubeLinks {
			fmt.Printf("   video: %s\n", link.URL)
		}
		for _, link := range step.WebLinks {
			fmt.Printf("   article: %s\n", link.URL)
		}
		fmt.Println()
	}
	return nil
}
