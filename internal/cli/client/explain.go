package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type conceptRequest struct {
	Concept string `json:"concept"`
}

type videoLink struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

type webLink struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	Description string `json:"description"`
}

type conceptResponse struct {
	Concept      string      `json:"concept"`
	Summary      string      `json:"summary"`
	YouTubeLinks []videoLink `json:"youtube_links"`
	WebLinks     []webLink   `json:"web_links"`
}

// ExplainCmd creates the explain command.
func ExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <document_id> <concept...>",
		Short: "Explain a graph concept with learning resources",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			concept := strings.Join(args[1:], " ")
			return runExplain(cmd, args[0], concept, outputJSON)
		},
	}
}

func runExplain(cmd *cobra.Command, documentID, concept string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post(fmt.Sprintf("/documents/%s/concepts", documentID), conceptRequest{Concept: concept})
	if err != nil {
		return fmt.Errorf("failed to explain concept: %w", err)
	}

	var result conceptResponse
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse concept info: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(result.Summary)
	if len(result.YouTubeLinks) > 0 {
		fmt.Println("\nVideos:")
		for _, link := range result.YouTubeLinks {
			fmt.Printf("  %s\n    %s\n", link.Title, link.URL)
		}
	}
	if len(result.WebLinks) > 0 {
		fmt.Println("\nArticles:")
		for _, link := range result.WebLinks {
			fmt.Printf("  %s\n    %s\n", link.Title, link.URL)
		}
	}
	return nil
}
