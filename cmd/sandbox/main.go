package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hubastard/iui/engine/assets"
	"github.com/hubastard/iui/engine/colors"
	"github.com/hubastard/iui/engine/config"
	"github.com/hubastard/iui/engine/core"
	glbackend "github.com/hubastard/iui/engine/gfx/gl"
	"github.com/hubastard/iui/engine/gfx/renderer2d"
	"github.com/hubastard/iui/engine/platform"
	"github.com/hubastard/iui/engine/profiler"
	"github.com/hubastard/iui/engine/text"
	"github.com/hubastard/iui/engine/ui"

	"github.com/hubastard/iui/cmd/internal/widgets"
)

type App struct {
	uiCfg     ui.Config
	fontPath  string
	dumpAtlas string

	window *platform.GLFWWindow
	gl     *glbackend.RendererGL
	face   *text.Face
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 12) // ~4K scope samples

	fontPx := a.uiCfg.FontHeight * a.uiCfg.Scale
	face, err := a.loadFace(fontPx)
	if err != nil {
		a.fail(e, "load font", err)
		return
	}
	a.face = face
	atlas, err := text.BuildAtlas(face, text.ASCII())
	if err != nil {
		a.fail(e, "build atlas", err)
		return
	}
	if a.dumpAtlas != "" {
		if err := assets.WritePNG(a.dumpAtlas, atlas.Image); err != nil {
			slog.Warn("sandbox: atlas dump", "err", err)
		}
	}
	r2d, err := renderer2d.New(a.gl, atlas, 0)
	if err != nil {
		a.fail(e, "renderer2d", err)
		return
	}
	ctx, err := ui.New(a.uiCfg, r2d)
	if err != nil {
		a.fail(e, "ui context", err)
		return
	}
	e.Input.SetScale(a.uiCfg.Scale)

	vendor, renderer, version := a.gl.Info()
	slog.Info("sandbox: started", "gpu", renderer, "vendor", vendor, "gl", version, "font_px", fontPx, "atlas", atlas.Size)

	debug := &LayerDebug{gpu: renderer, glVersion: version}
	e.Layers.Push(&LayerUI{ctx: ctx, r2d: r2d, gallery: widgets.NewGallery(), debug: debug})
	e.Layers.Push(debug)
}

func (a *App) loadFace(px float32) (*text.Face, error) {
	if a.fontPath == "" {
		return text.GoRegular(px)
	}
	ttf, err := assets.ReadFont(a.fontPath)
	if err != nil {
		return nil, err
	}
	return text.Open(ttf, px)
}

func (a *App) fail(e *core.Engine, what string, err error) {
	slog.Error("sandbox: "+what, "err", err)
	e.Window.RequestClose()
}

func (a *App) OnUpdate(e *core.Engine, dt float64)    {}
func (a *App) OnRender(e *core.Engine, alpha float64) {}
func (a *App) OnEvent(e *core.Engine, ev core.Event)  {}

func (a *App) OnShutdown(e *core.Engine) {
	if a.face != nil {
		a.face.Close()
	}
	if profiler.Enabled() {
		if err := profiler.Dump("iui.speedscope.json"); err != nil {
			slog.Warn("sandbox: profile dump", "err", err)
		}
	}
}

func main() {
	configPath := flag.String("config", "iui.toml", "UI config file (.toml, .yaml or .yml); missing means defaults")
	fontPath := flag.String("font", "", "TrueType font to use instead of Go Regular")
	dumpAtlas := flag.String("dump-atlas", "", "write the glyph atlas to this PNG")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	uiCfg, err := config.LoadOptional(*configPath)
	if err != nil {
		slog.Error("sandbox: config", "err", err)
		os.Exit(1)
	}
	uiCfg.Logger = logger

	cfg := core.Config{
		Title:      "iui sandbox",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: colors.DarkGray,
	}
	app := &App{uiCfg: uiCfg, fontPath: *fontPath, dumpAtlas: *dumpAtlas}

	newWindow := func(cfg core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(cfg, nil)
		if err != nil {
			return nil, err
		}
		app.window = w
		return w, nil
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		r, err := glbackend.NewRendererGL(win, cfg)
		if err != nil {
			return nil, err
		}
		app.gl = r
		return r, nil
	}

	err = core.Run(app, cfg, newWindow, newRenderer)
	if app.window != nil {
		app.window.Destroy()
	}
	if err != nil {
		slog.Error("sandbox: run", "err", err)
		os.Exit(1)
	}
}
