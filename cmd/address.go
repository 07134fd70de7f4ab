package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/clearhaul/dispatch-cli/internal/address"
	"github.com/clearhaul/dispatch-cli/internal/model"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Convert between free-text addresses and structured breakdowns",
}

var addressParseCmd = &cobra.Command{
	Use:   "parse <free-text address>",
	Short: "Parse a free-text address into a structured breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		breakdown := address.Parse(args[0])
		out, err := json.MarshalIndent(breakdown, "", "  ")
		if err != nil {
			return eris.Wrap(err, "encode breakdown")
		}
		fmt.Println(string(out))
		return nil
	},
}

var addressBuildFile string

var addressBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a free-text address from a breakdown JSON file",
	RunE: func(_ *cobra.Command, _ []string) error {
		data, err := os.ReadFile(addressBuildFile)
		if err != nil {
			return eris.Wrap(err, "read breakdown")
		}
		var breakdown model.AddressBreakdown
		if err := json.Unmarshal(data, &breakdown); err != nil {
			return eris.Wrap(err, "decode breakdown")
		}
		fmt.Println(address.Build(breakdown))
		return nil
	},
}

func init() {
	addressBuildCmd.Flags().StringVar(&addressBuildFile, "file", "", "path to breakdown JSON file (required)")
	_ = addressBuildCmd.MarkFlagRequired("file")
	addressCmd.AddCommand(addressParseCmd, addressBuildCmd)
	rootCmd.AddCommand(addressCmd)
}
