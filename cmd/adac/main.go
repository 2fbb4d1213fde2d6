// Command adac compiles one Ada-subset source file to three-address code
// and 16-bit real-mode assembly.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jakujobi/Ada-Compiler-Construction-sub000/ctx"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/driver"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outputFlag string
		emitTAC    bool
		emitASM    bool
		emitTokens bool
		debug      bool
		noTree     bool
		verifyTAC  bool
		logDir     string
	)

	cmd := &cobra.Command{
		Use:   "adac <input_file> [output_file]",
		Short: "Compile an Ada-subset source file to TAC and x86 real-mode assembly",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			base := strings.TrimSuffix(input, ".ada")
			if len(args) == 2 {
				base = strings.TrimSuffix(args[1], ".tac")
				base = strings.TrimSuffix(base, ".asm")
			}
			if outputFlag != "" {
				base = strings.TrimSuffix(outputFlag, ".tac")
				base = strings.TrimSuffix(base, ".asm")
			}

			c, err := ctx.New(logDir, debug, false)
			if err != nil {
				return err
			}
			defer c.Close()

			opts := driver.Options{
				InputPath: input,
				BuildTree: !noTree,
				Debug:     debug,
				VerifyTAC: verifyTAC,
			}
			if emitTAC || (!emitTAC && !emitASM && !emitTokens) {
				opts.TACPath = base + ".tac"
			}
			if emitASM || (!emitTAC && !emitASM && !emitTokens) {
				opts.ASMPath = base + ".asm"
			}
			if emitTokens {
				opts.TokenListingPath = base + ".lst"
			}

			sum, err := driver.Run(c, opts)
			if err != nil {
				return err
			}
			if err := sum.Print(os.Stdout, debug); err != nil {
				return err
			}
			if sum.HasErrors() {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output file base name (extension replaced per --tac/--asm)")
	cmd.Flags().BoolVarP(&emitTAC, "tac", "t", false, "emit the .tac file (default: on, unless --asm is given alone)")
	cmd.Flags().BoolVarP(&emitASM, "asm", "a", false, "emit the .asm file (default: on, unless --tac is given alone)")
	cmd.Flags().BoolVarP(&emitTokens, "tokens", "l", false, "emit a .lst token listing instead of TAC/ASM (standalone list-tokens mode)")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "show full diagnostics and debug-level logging")
	cmd.Flags().BoolVar(&noTree, "no-tree", false, "skip optional parse-tree construction")
	cmd.Flags().BoolVar(&verifyTAC, "verify-tac", false, "re-read the written .tac file and sanity-check the round trip")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for per-run log files (default ./logs)")

	return cmd
}
