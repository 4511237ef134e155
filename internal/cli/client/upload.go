package client

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Graph mirrors the API's knowledge graph payload.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

type GraphNode struct {
	ID          string `json:"id"`
	Size        string `json:"size"`
	Ring        int    `json:"ring"`
	Description string `json:"description"`
}

type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type createGraphRequest struct {
	PDF          string `json:"pdf"`
	MainConcepts int    `json:"main_concepts,omitempty"`
	NodeCount    int    `json:"node_count,omitempty"`
}

type createGraphResponse struct {
	DocumentID string `json:"document_id"`
	Graph      Graph  `json:"graph"`
}

// UploadCmd creates the upload command.
func UploadCmd() *cobra.Command {
	var mainConcepts, nodeCount int

	cmd := &cobra.Command{
		Use:   "upload <file.pdf>",
		Short: "Upload a PDF and generate its knowledge graph",
		Long:  "Uploads a PDF document, indexes it, and prints the generated knowledge graph with the document ID for follow-up commands.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runUpload(cmd, args[0], mainConcepts, nodeCount, outputJSON)
		},
	}

	cmd.Flags().IntVar(&mainConcepts, "concepts", 0, "Number of primary topics to extract")
	cmd.Flags().IntVar(&nodeCount, "nodes", 0, "Approximate total node count")

	return cmd
}

func runUpload(cmd *cobra.Command, path string, mainConcepts, nodeCount int, outputJSON bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/graphs", createGraphRequest{
		PDF:          base64.StdEncoding.EncodeToString(raw),
		MainConcepts: mainConcepts,
		NodeCount:    nodeCount,
	})
	if err != nil {
		return fmt.Errorf("failed to generate graph: %w", err)
	}

	var result createGraphResponse
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse graph: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Document: %s\n", result.DocumentID)
	fmt.Printf("Nodes: %d, Links: %d\n\n", len(result.Graph.Nodes), len(result.Graph.Links))
	for _, node := range result.Graph.Nodes {
		fmt.Printf("  [%s] %s (ring %d)\n", node.Size, node.ID, node.Ring)
		if node.Description != "" {
			fmt.Printf("      %s\n", node.Description)
		}
	}
	return nil
}
