package cli

import (
	"anti-theft-gps-tracker/internal/provider"
	"anti-theft-gps-tracker/internal/wallet"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(accountCmd)
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Print the account of the configured signing key",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := provider.LoadKey(cfg.Wallet)
		if err != nil {
			return err
		}
		if key == nil {
			return wallet.ErrNotConnected
		}
		info := struct {
			wallet.Account
			Network string `json:"network"`
		}{key.Account(), cfg.Network.Name}
		return printJSON(cmd.OutOrStdout(), info)
	},
}
