package main

import (
	"context"
	"image/color"
	"log"
	"math/rand/v2"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"github.com/youryharchenko/go-vacuum/config"
	"github.com/youryharchenko/go-vacuum/mas"
	"github.com/youryharchenko/go-vacuum/simulations/vacuum"
	"github.com/youryharchenko/go-vacuum/simulations/vacuum/board"
	"github.com/youryharchenko/go-vacuum/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(config.LogErrorPrefix+"%v", err)
	}

	a := app.New()
	w := a.NewWindow("Vacuum Laboratory")

	// 1. Створюємо Систему
	sys := mas.NewSystem()

	// 2. Створюємо Лог (він спільний для всіх)
	logData := binding.NewString()
	_ = logData.Set("System started...")

	outputEntry := ui.NewLogEntry()
	outputEntry.Bind(logData)

	inputEntry := ui.NewHistoryEntry()
	inputEntry.OnCommand = func(target, payload string) {
		if err := sys.Send(context.Background(), "admin", target, payload); err != nil {
			ui.AppendLog(logData, err.Error())
		}
	}

	scroll := container.NewVScroll(outputEntry)
	logData.AddListener(binding.NewDataListener(func() {
		// Тримаємо курсор внизу, щоб скрол ішов за логом
		outputEntry.CursorRow = len(outputEntry.Text) - 1
		outputEntry.Refresh()
	}))

	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(300, 0))
	rightStack := container.NewStack(spacer, scroll)

	// 3. Екран пилососа
	agentCfg, envCfg := settings(cfg, ui.LogSink(logData, ""))
	vacuumTab, err := board.NewScreen(sys, agentCfg, envCfg, cfg.Tick)
	if err != nil {
		log.Fatalf(config.LogErrorPrefix+"%v", err)
	}

	tabs := container.NewAppTabs(
		container.NewTabItem("Vacuum World", vacuumTab),
		container.NewTabItem("About", widget.NewLabel("Commands: <agent-id> NEW | RESET | TICK")),
	)
	tabs.SetTabLocation(container.TabLocationTop)

	content := container.NewBorder(
		nil,        // Top
		inputEntry, // Bottom
		nil,        // Left
		rightStack, // Right
		tabs,       // Center
	)

	w.SetContent(content)
	w.Resize(fyne.NewSize(1024, 800))

	guiAgent := ui.NewLogWindowAgent("console", logData)
	if err := sys.Spawn(guiAgent); err != nil {
		log.Println(err)
	}

	w.ShowAndRun()

	if err := sys.Shutdown(); err != nil {
		log.Println(err)
	}
}

// settings перетворює конфіг на параметри агента і кімнати.
func settings(cfg config.Config, sink vacuum.LogFunc) (vacuum.AgentConfig, vacuum.EnvironmentConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return vacuum.AgentConfig{
			Width:       cfg.Width,
			Height:      cfg.Height,
			RandomSteps: cfg.RandomSteps,
			Log:         sink,
			Rand:        rand.New(rand.NewPCG(seed, 1)),
			DumpMap:     cfg.DumpMap,
			DenseDump:   cfg.DenseMap,
		}, vacuum.EnvironmentConfig{
			Width:    cfg.Width,
			Height:   cfg.Height,
			DirtRate: cfg.DirtRate,
			WallRate: cfg.WallRate,
			Rand:     rand.New(rand.NewPCG(seed, 2)),
		}
}
