package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rvcc/internal/target"
	"rvcc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rvcc",
	Short: "RISC-V calling convention model",
	Long:  `rvcc computes which registers and stack slots a signature's arguments occupy under the RISC-V calling convention`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().StringP("target", "t", "rv64ifd", `target machine (see "rvcc targets")`)
	rootCmd.PersistentFlags().String("target-file", "", "TOML file with additional targets")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func colorEnabled(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

func resolveTarget(cmd *cobra.Command) (target.Target, error) {
	name, _ := cmd.Flags().GetString("target")
	path, _ := cmd.Flags().GetString("target-file")
	return target.Resolve(name, path)
}
