package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/valuate/internal/advisor"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask the AI startup advisor",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var boostCmd = &cobra.Command{
	Use:   "boost",
	Short: "Boost your valuation",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println(advisor.Boost())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(boostCmd)
}

func runAsk(_ *cobra.Command, args []string) error {
	reply, ok := advisor.Ask(strings.Join(args, " "))
	if !ok {
		return errors.New("ask a question first")
	}
	fmt.Println(reply)
	return nil
}
