// Command ijslog is a terminal showcase for the IJSLogger library: it wires
// a colorized console sink plus a retaining memory sink, applies an optional
// YAML/env configuration, emits sample traffic across every channel and can
// dump the retained entries as a flat text export.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	ijslog "github.com/Ironjaw-Studios/IJSLogger"
)

var (
	flagConfig  string
	flagEnv     string
	flagNoColor bool
	flagExport  string
)

func main() {
	root := &cobra.Command{
		Use:           "ijslog",
		Short:         "Showcase and inspection tool for the IJSLogger library",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML channel configuration")
	root.PersistentFlags().StringVar(&flagEnv, "env", "editor", "environment to evaluate scopes against (editor|build)")

	demo := &cobra.Command{
		Use:   "demo",
		Short: "Emit sample log traffic across all channels",
		RunE:  runDemo,
	}
	demo.Flags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	demo.Flags().StringVar(&flagExport, "export", "", "dump retained entries to this file afterwards")

	channels := &cobra.Command{
		Use:   "channels",
		Short: "Print the effective channel table for the given config and environment",
		RunE:  runChannels,
	}

	root.AddCommand(demo, channels)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func environment() (ijslog.Environment, error) {
	switch flagEnv {
	case "editor":
		return ijslog.ENV_EDITOR, nil
	case "build":
		return ijslog.ENV_BUILD, nil
	default:
		return ijslog.ENV_EDITOR, fmt.Errorf("unknown environment %q (want editor or build)", flagEnv)
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	env, err := environment()
	if err != nil {
		return err
	}

	console := ijslog.NewWriterSink(os.Stdout).
		WithTimeFormat("15:04:05.000").
		WithColor(!flagNoColor)
	memory := ijslog.NewMemorySink(0)

	log := ijslog.InitWithParams(env, os.Stderr, console, memory)
	log.Registry().ResetToDefaults()
	if flagConfig != "" {
		log.LoadAndApplyConfig(flagConfig)
	}

	boot := log.NewClient("Boot", ijslog.CH_DEFAULT)
	audio := log.NewClientWithColor("Audio", ijslog.CH_AUDIO, ijslog.Color{R: 0x61, G: 0xaf, B: 0xef})
	net := log.NewClient("Net", ijslog.CH_NETWORK)
	perf := log.NewClient("Perf", ijslog.CH_PERFORMANCE)
	ai := log.NewClient("AI", ijslog.CH_AI)

	boot.LogInfo("demo starting")
	audio.LogInfo("mixer initialized, 32 voices")
	audio.LogWarn("voice budget at 90%")

	func() {
		defer log.Context().Enter("Handshake")()
		net.LogInfo("connecting to relay")
		func() {
			defer log.Context().Enter("Auth")()
			net.LogError("token rejected, retrying")
		}()
		net.LogInfo("connected")
	}()

	for i := 0; i < 5; i++ {
		perf.LogThrottled("frame budget exceeded", 50*time.Millisecond, ijslog.LVL_WARN)
		time.Sleep(20 * time.Millisecond)
	}

	ai.LogIfFn(
		func() bool { return true },
		func() string { return "path recomputed for 12 agents" },
		ijslog.LVL_INFO,
	)
	ai.ValidateInRange(1.5, 0, 1, "aggression").OnFailure(func() {
		ai.LogWarn("aggression clamped to 1.0")
	})

	boot.LogInfo("demo finished")

	if flagExport != "" {
		if err := memory.ExportFile(flagExport); err != nil {
			return err
		}
		fmt.Printf("exported %d entries to %s\n", memory.Len(), flagExport)
	}
	return nil
}

func runChannels(cmd *cobra.Command, args []string) error {
	env, err := environment()
	if err != nil {
		return err
	}

	log := ijslog.InitWithParams(env, os.Stderr)
	log.Registry().ResetToDefaults()
	if flagConfig != "" {
		log.LoadAndApplyConfig(flagConfig)
	}

	fmt.Printf("%-14s %-8s %-8s %s\n", "CHANNEL", "ENABLED", "SCOPE", "ACTIVE")
	for _, cfg := range log.Registry().Snapshot() {
		fmt.Printf("%-14s %-8v %-8s %v\n",
			cfg.Channel.Name(), cfg.Enabled, cfg.Scope.Name(),
			log.Registry().IsEnabled(cfg.Channel))
	}
	return nil
}
