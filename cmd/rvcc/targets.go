package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rvcc/internal/target"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List known targets",
	Long:  `targets prints the built-in targets plus any loaded from --target-file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := make([]target.Target, 0, 8)
		for _, name := range target.Names() {
			t, _ := target.Lookup(name)
			rows = append(rows, t)
		}
		if path, _ := cmd.Flags().GetString("target-file"); path != "" {
			custom, err := target.LoadFile(path)
			if err != nil {
				return err
			}
			rows = append(rows, custom...)
		}

		out := cmd.OutOrStdout()
		header := fmt.Sprintf("%-12s %6s %6s", "NAME", "XLEN", "FLEN")
		if colorEnabled(cmd) {
			header = color.New(color.Bold).Sprint(header)
		}
		fmt.Fprintln(out, header)
		for _, t := range rows {
			flen := "-"
			if t.FLen > 0 {
				flen = strconv.Itoa(t.FLen)
			}
			fmt.Fprintf(out, "%-12s %6d %6s\n", t.Name, t.XLen, flen)
		}
		return nil
	},
}
