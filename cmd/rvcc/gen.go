package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rvcc/internal/gen"
	"rvcc/internal/sigparse"
)

var genOut string

func init() {
	genCmd.Flags().StringVarP(&genOut, "output", "o", "", "write the program to a file instead of stdout")
}

var genCmd = &cobra.Command{
	Use:   "gen <signature>",
	Short: "Emit a C program that calls an extern function with the signature",
	Long: `gen produces a compilable C translation unit declaring an extern callee
with the given signature and a main that invokes it with distinct literal
arguments. Compile it for the matching RISC-V target and inspect the
assembly to compare against "rvcc classify".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tgt, err := resolveTarget(cmd)
		if err != nil {
			return err
		}
		sig, err := sigparse.Parse(args[0], tgt.XLen)
		if err != nil {
			return err
		}
		prog, err := gen.Program(tgt, sig)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if genOut != "" {
			f, err := os.Create(genOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = io.Writer(f)
		}
		_, err = fmt.Fprint(out, prog)
		return err
	},
}
