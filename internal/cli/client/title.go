package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type titleResponse struct {
	Title string `json:"title"`
}

// TitleCmd creates the title command.
func TitleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "title <document_id>",
		Short: "Generate a title for an indexed document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runTitle(cmd, args[0], outputJSON)
		},
	}
}

func runTitle(cmd *cobra.Command, documentID string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post(fmt.Sprintf("/documents/%s/title", documentID), nil)
	if err != nil {
		return fmt.Errorf("failed to generate title: %w", err)
	}

	var result titleResponse
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse title: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(result.Title)
	return nil
}
