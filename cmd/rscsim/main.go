// Command rscsim runs the rsc core simulator, either the built-in
// four-instruction boot demo or a program loaded from disk.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"rscsim/internal/config"
	"rscsim/pkg/asm"
	"rscsim/pkg/rsc"
)

var (
	cfgPath    string
	trace      bool
	program    string
	maxCycles  int
	netConsole bool
)

func main() {
	defer glog.Flush()
	if err := newRootCmd().Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rscsim",
		Short: "rscsim simulates the 32-bit rsc load/store machine",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a TOML configuration file")

	run := &cobra.Command{
		Use:   "run",
		Short: "run the boot demo or a loaded program to completion",
		RunE:  runMachine,
	}
	run.Flags().BoolVar(&trace, "trace", false, "log each decoded instruction before it executes")
	run.Flags().StringVar(&program, "program", "", "path to a program image (.lst text listing or raw binary)")
	run.Flags().IntVar(&maxCycles, "max-cycles", 0, "stop after this many FSM cycles (0 = unlimited)")
	run.Flags().BoolVar(&netConsole, "net-console", false, "wait for a TCP peer and route UART0 to it instead of stdout")
	root.AddCommand(run)

	return root
}

func runMachine(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("rscsim: loading config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("trace") {
		cfg.Trace = trace
	}
	if cmd.Flags().Changed("program") {
		cfg.Program = program
	}
	if cmd.Flags().Changed("max-cycles") {
		cfg.MaxCycles = maxCycles
	}

	var m *rsc.Machine
	if netConsole {
		console, addr, err := rsc.AcceptConsole()
		if err != nil {
			return fmt.Errorf("rscsim: accepting console: %w", err)
		}
		defer console.Close()
		glog.Infof("rscsim: console attached from %s", addr)
		m = rsc.NewMachineWithConsole(console, os.Stdout)
	} else {
		m = rsc.NewMachine(os.Stdout)
	}

	if cfg.Program != "" {
		data, err := os.ReadFile(cfg.Program)
		if err != nil {
			return fmt.Errorf("rscsim: reading program: %w", err)
		}
		if strings.HasSuffix(cfg.Program, ".lst") {
			data, err = asm.LoadListing(strings.NewReader(string(data)))
			if err != nil {
				return fmt.Errorf("rscsim: parsing listing: %w", err)
			}
		}
		m.LoadProgram(data)
	}

	cycles := 0
	for {
		if cfg.Trace && m.State() == rsc.StateDecode {
			glog.Infof("rscsim: %s", asm.Disassemble(m.CurrentWord()))
		}
		if !m.CycleState() {
			break
		}
		cycles++
		if cfg.MaxCycles > 0 && cycles >= cfg.MaxCycles {
			return fmt.Errorf("rscsim: exceeded max-cycles (%d)", cfg.MaxCycles)
		}
	}

	if m.Regs.Errored() {
		return fmt.Errorf("rscsim: machine halted on error")
	}
	return nil
}
