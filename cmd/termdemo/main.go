// Command termdemo runs the widget gallery in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/hubastard/iui/cmd/internal/widgets"
	"github.com/hubastard/iui/engine/config"
	iterm "github.com/hubastard/iui/engine/term"
	"github.com/hubastard/iui/engine/ui"
)

func main() {
	configPath := flag.String("config", "iui.toml", "UI config file (.toml, .yaml or .yml); missing means defaults")
	logPath := flag.String("log", "", "write debug logs to this file")
	fps := flag.Int("fps", 30, "frames per second")
	flag.Parse()

	if err := run(*configPath, *logPath, *fps); err != nil {
		fmt.Fprintln(os.Stderr, "termdemo:", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, fps int) error {
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return err
	}
	// One cell is a fixed number of UI units; there are no device pixels.
	cfg.Scale = 1
	cfg.Logger = logger

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		logger.Debug("terminal", "cols", w, "rows", h)
	}

	be, err := iterm.Open(cfg.FontHeight)
	if err != nil {
		return err
	}
	defer be.Close()
	be.Background = ui.DefaultStyle().TitleBg

	ctx, err := ui.New(cfg, be)
	if err != nil {
		return err
	}
	gallery := widgets.NewGallery()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := be.Screen().PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
	defer ticker.Stop()
	last := time.Now()
	for !gallery.Quit {
		select {
		case ev := <-events:
			if quitKey(ev) {
				return nil
			}
			be.HandleEvent(ev)
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			w, h := be.Size()

			be.FlushInput(ctx.Input())
			be.Begin()
			ctx.BeginFrame(dt)
			gallery.Draw(ctx, ui.Rect{W: w, H: h}, dt)
			ctx.EndFrame()
			be.Present()
		}
	}
	slog.Debug("termdemo: exit", "frames", ctx.Frame())
	return nil
}

func quitKey(ev tcell.Event) bool {
	k, ok := ev.(*tcell.EventKey)
	return ok && (k.Key() == tcell.KeyCtrlC || k.Key() == tcell.KeyCtrlQ)
}
