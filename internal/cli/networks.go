package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"anti-theft-gps-tracker/internal/network"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(networksCmd)
}

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List the networks the service can submit to",
	RunE: func(cmd *cobra.Command, args []string) error {
		networks, err := network.NewConfig(cfg.Network.URLs)
		if err != nil {
			return err
		}
		if _, err := networks.Resolve(cfg.Network.Name); err != nil {
			return err
		}
		return printNetworks(cmd.OutOrStdout(), networks, cfg.Network.Name)
	},
}

func printNetworks(w io.Writer, networks network.Config, selected string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	urls := networks.All()
	for _, name := range networks.Names() {
		marker := " "
		if strings.EqualFold(name, selected) {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\n", marker, name, urls[name])
	}
	return tw.Flush()
}
