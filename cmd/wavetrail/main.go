package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/lixenwraith/wavetrail/audio"
	"github.com/lixenwraith/wavetrail/constant"
	"github.com/lixenwraith/wavetrail/display"
	"github.com/lixenwraith/wavetrail/engine"
	"github.com/lixenwraith/wavetrail/terminal"
	"github.com/lixenwraith/wavetrail/wave"
)

var (
	variantFlag = flag.String("variant", "sine", "Waveform: sine, bounce")
	backendFlag = flag.String("backend", "ansi", "Display backend: ansi, tcell")
	colorFlag   = flag.String("color", "basic", "Color mode: basic, auto, truecolor, 256")
	soundFlag   = flag.Bool("sound", false, "Play a tone that follows the curve")
	debugFlag   = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
)

func main() {
	os.Exit(realMain())
}

// realMain returns the process exit code so deferred cleanup runs before exit
func realMain() (code int) {
	// Panic Recovery: Ensure terminal is reset even if the loop crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mWAVETRAIL CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			code = 1
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := start(); err != nil {
		log.Printf("wavetrail: %v", err)
		fmt.Fprintf(os.Stderr, "wavetrail: %v\n", err)
		return 1
	}
	return 0
}

// start resolves the flags and runs until SIGINT, SIGTERM or the backend's interrupt key
func start() error {
	variant, err := wave.ParseVariant(*variantFlag)
	if err != nil {
		return err
	}

	palette, colorMode, err := display.ParseColorFlag(*colorFlag)
	if err != nil {
		return err
	}

	backend, err := newBackend(*backendFlag, palette, colorMode)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var observers []engine.FrameObserver
	if *soundFlag {
		hum := audio.NewHum()
		if err := hum.Start(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer hum.Stop()
			observers = append(observers, hum)
		}
	}

	return run(ctx, backend, variant, observers...)
}

// run initializes backend, validates its geometry, draws the grid and animates
// until ctx is cancelled
// Shutdown runs on every return path, including rejected geometry
func run(ctx context.Context, backend display.Backend, variant wave.Variant, observers ...engine.FrameObserver) error {
	// Normal exit terminal cleanup
	defer backend.Shutdown()

	geo, err := backend.Init()
	if err != nil {
		return fmt.Errorf("display init: %w", err)
	}

	state, err := wave.NewState(geo, variant)
	if err != nil {
		return err
	}

	if intr, ok := backend.(display.Interrupter); ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go func() {
			select {
			case <-intr.Interrupted():
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	loop := engine.NewLoop(backend, state, constant.FrameInterval)
	for _, o := range observers {
		loop.AddObserver(o)
	}

	wave.DrawGrid(backend, geo)
	backend.Refresh()

	return loop.Run(ctx)
}

// newBackend resolves the -backend flag
func newBackend(name string, palette display.Palette, colorMode terminal.ColorMode) (display.Backend, error) {
	switch name {
	case "ansi", "":
		return display.NewANSI(terminal.New(colorMode), palette), nil
	case "tcell":
		return display.NewTcell(palette), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}
