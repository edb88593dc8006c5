package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/viralforge/campaign-marketplace/internal/app/bootstrap"
)

var expireCmd = &cobra.Command{
	Use:   "expire-campaigns",
	Short: "Run the campaign expiry sweep once",
	Long: `Marks every active campaign whose end date has passed as expired and
emits a campaign.expired event per campaign. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := bootstrap.NewMaintenance(cmd.Context(), configPath, dbURL)
		if err != nil {
			return err
		}
		defer store.Close()

		result, err := store.ExpireCampaigns(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(result)
		}
		fmt.Printf("expired %d campaign(s)\n", result.Count)
		for _, id := range result.ExpiredCampaignIDs {
			fmt.Println("  " + id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(expireCmd)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
