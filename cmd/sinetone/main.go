package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gordonklaus/portaudio"

	"github.com/Danondso/sinetone/internal/config"
	"github.com/Danondso/sinetone/internal/oscillator"
	"github.com/Danondso/sinetone/internal/output"
	"github.com/Danondso/sinetone/internal/tui"
)

func main() {
	// Subcommands are handled before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "devices":
			handleDevices()
			return
		case "init-config":
			handleInitConfig(os.Args[2:])
			return
		}
	}
	run()
}

func handleDevices() {
	if err := initPortAudio(); err != nil {
		log.Fatalf("portaudio init: %v", err)
	}
	defer portaudio.Terminate()

	devices, err := output.Devices()
	if err != nil {
		log.Fatalf("list devices: %v", err)
	}
	printDevices(os.Stdout, devices)
}

func printDevices(w io.Writer, devices []output.Device) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tNAME\tHOST API\tCHANNELS\tRATE")
	for _, d := range devices {
		mark := ""
		if d.IsDefault {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.0f\n", mark, d.Name, d.HostAPI, d.MaxOutputChannels, d.DefaultSampleRate)
	}
	tw.Flush()
}

func handleInitConfig(args []string) {
	fs := flag.NewFlagSet("init-config", flag.ExitOnError)
	path := fs.String("config", config.DefaultPath(), "path of the config file to write")
	force := fs.Bool("force", false, "overwrite an existing config file")
	_ = fs.Parse(args)

	if _, err := os.Stat(*path); err == nil && !*force {
		log.Fatalf("config %s already exists (use -force to overwrite)", *path)
	}
	if err := config.Save(*path, config.Default()); err != nil {
		log.Fatalf("write config: %v", err)
	}
	fmt.Printf("Wrote default config to %s\n", *path)
}

func run() {
	debug := flag.Bool("debug", false, "show debug logging in the UI")
	cfgPath := flag.String("config", config.DefaultPath(), "path to config.toml")
	backend := flag.String("backend", "", "audio backend override (portaudio or speaker)")
	flag.Parse()

	var dbg *log.Logger
	if *debug {
		dbg = log.New(os.Stderr, "[DEBUG] ", log.Ltime|log.Lmicroseconds)
	} else {
		dbg = log.New(io.Discard, "", 0)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *backend != "" {
		cfg.Audio.Backend = *backend
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config %s:\n%v", *cfgPath, err)
	}
	tui.RegisterCustomThemes(cfg.CustomThemes)

	if cfg.Audio.Backend == config.BackendPortAudio {
		if err := initPortAudio(); err != nil {
			log.Fatalf("portaudio init: %v", err)
		}
		defer portaudio.Terminate()
	}

	engine := oscillator.New(
		oscillator.WithFrequency(cfg.Tone.Frequency),
		oscillator.WithLevel(cfg.Tone.Level),
		oscillator.WithPhaseWrap(cfg.Audio.WrapPhase),
	)

	player, err := output.New(&cfg.Audio, engine, dbg)
	if err != nil {
		log.Fatalf("create player: %v", err)
	}

	model := tui.NewModel(cfg, engine, player, dbg, *debug)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// When debug is enabled, redirect logger output into the TUI debug panel
	if *debug {
		dbg.SetOutput(tui.NewLogWriter(p))
	}
	dbg.Printf("config: %s backend=%s", *cfgPath, cfg.Audio.Backend)
	if !slices.Contains(tui.ThemeNames(), strings.ToLower(cfg.Theme)) {
		dbg.Printf("theme: %q not found, using synthwave", cfg.Theme)
	}

	if err := withQuietStderr(player.Start); err != nil {
		log.Fatalf("start audio: %v", err)
	}

	if _, err := p.Run(); err != nil {
		_ = player.Stop()
		log.Fatalf("TUI error: %v", err)
	}

	if err := player.Stop(); err != nil {
		log.Printf("stop audio: %v", err)
	}
}
