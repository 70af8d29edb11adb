package main

import (
	"github.com/spf13/cobra"

	"github.com/kestrelfin/tradestore/internal/store"
)

// cliContext builds the audit context for CLI-initiated mutations.
func cliContext(cmd *cobra.Command, action, defaultIntent string) store.Context {
	user, _ := cmd.Flags().GetString("user")
	intent, _ := cmd.Flags().GetString("intent")
	if intent == "" {
		intent = defaultIntent
	}
	return store.Context{
		User:   user,
		Agent:  "tradestore-cli",
		Action: action,
		Intent: intent,
	}
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status and trade count",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var health struct {
			Status string `json:"status"`
			Trades int    `json:"trades"`
		}
		if err := client.getJSON("/health", &health); err != nil {
			printError("server is not running")
			return err
		}

		printSuccess("server is running")
		printStatus("status", "%s", health.Status)
		printStatus("trades", "%d", health.Trades)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store with generated IR swap trades",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		req := map[string]any{
			"context": cliContext(cmd, "seed", "test_data_setup"),
			"count":   count,
		}
		var resp struct {
			TradesCreated int      `json:"trades_created"`
			TradeIDs      []string `json:"trade_ids"`
		}
		if err := client.postJSON("/admin/seed", req, &resp); err != nil {
			return err
		}

		printSuccess("seeded %d trades", resp.TradesCreated)
		return nil
	},
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every trade and the operation log",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		req := map[string]any{
			"context": cliContext(cmd, "purge", "store_reset"),
		}
		var resp struct {
			TradesDeleted int `json:"trades_deleted"`
		}
		if err := client.postJSON("/admin/purge", req, &resp); err != nil {
			return err
		}

		printSuccess("purged %d trades", resp.TradesDeleted)
		return nil
	},
}

func init() {
	seedCmd.Flags().Int("count", 0, "number of trades to generate (server default when 0)")
	seedCmd.Flags().String("user", "admin", "audit user for the operation log")
	seedCmd.Flags().String("intent", "", "audit intent for the operation log")
	purgeCmd.Flags().String("user", "admin", "audit user for the operation log")
	purgeCmd.Flags().String("intent", "", "audit intent for the operation log")
}
