package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rvcc/internal/cc"
	"rvcc/internal/driver"
	"rvcc/internal/report"
	"rvcc/internal/sigparse"
	"rvcc/internal/target"
)

var (
	classifyFormat string
	classifyOut    string
	classifyFile   string
)

func init() {
	classifyCmd.Flags().StringVar(&classifyFormat, "format", "pretty", "output format (pretty|plain|json|msgpack)")
	classifyCmd.Flags().StringVarP(&classifyOut, "output", "o", "", "write output to a file instead of stdout")
	classifyCmd.Flags().StringVar(&classifyFile, "file", "", "classify every signature line in a file")
}

var classifyCmd = &cobra.Command{
	Use:   "classify [signature]",
	Short: "Assign a signature's arguments to registers and stack slots",
	Example: `  rvcc classify -t rv32ifd "i32, f64, {i8, f32[1]} -> i64"
  rvcc classify -t rv32i "i32, ..., i64"
  rvcc classify --file signatures.txt --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch classifyFormat {
		case "pretty", "plain", "json", "msgpack":
		default:
			return fmt.Errorf("unsupported format %q (must be pretty, plain, json, or msgpack)", classifyFormat)
		}

		tgt, err := resolveTarget(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if classifyOut != "" {
			f, err := os.Create(classifyOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		colorize := colorEnabled(cmd) && classifyOut == ""

		if classifyFile != "" {
			if len(args) != 0 {
				return fmt.Errorf("either pass a signature or --file, not both")
			}
			return classifyBatch(cmd, tgt, out, colorize)
		}
		if len(args) != 1 {
			return fmt.Errorf("expected a signature argument (or --file)")
		}

		sig, err := sigparse.Parse(args[0], tgt.XLen)
		if err != nil {
			return err
		}
		m, err := tgt.Machine()
		if err != nil {
			return err
		}
		state, err := m.Call(sig.Args, sig.Ret)
		if err != nil {
			return err
		}
		return emit(out, state, colorize)
	},
}

func classifyBatch(cmd *cobra.Command, tgt target.Target, out io.Writer, colorize bool) error {
	sigs, err := readSignatureLines(classifyFile)
	if err != nil {
		return err
	}
	results, err := driver.ClassifyAll(cmd.Context(), tgt, sigs)
	if err != nil {
		return err
	}
	failed := 0
	for _, res := range results {
		fmt.Fprintf(out, "== %s\n", res.Signature)
		if res.Err != nil {
			failed++
			fmt.Fprintf(out, "error: %v\n\n", res.Err)
			continue
		}
		if err := emit(out, res.State, colorize); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d signatures failed", failed, len(results))
	}
	return nil
}

func emit(out io.Writer, state *cc.State, colorize bool) error {
	switch classifyFormat {
	case "plain":
		_, err := io.WriteString(out, report.Render(state))
		return err
	case "json":
		return report.WriteJSON(out, state)
	case "msgpack":
		return report.EncodeSnapshot(out, state)
	default:
		report.WritePretty(out, state, colorize)
		return nil
	}
}

// readSignatureLines reads one signature per line, skipping blanks and
// #-comments.
func readSignatureLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sigs []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sigs = append(sigs, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return sigs, nil
}
