package board

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"github.com/youryharchenko/go-vacuum/mas"
	"github.com/youryharchenko/go-vacuum/simulations/vacuum"
)

// NewScreen створює вміст вкладки та запускає агентів.
func NewScreen(sys *mas.System, agentCfg vacuum.AgentConfig, envCfg vacuum.EnvironmentConfig, tick time.Duration) (fyne.CanvasObject, error) {
	room, cleaner, err := vacuum.Spawn(sys, agentCfg, envCfg)
	if err != nil {
		return nil, err
	}

	board := NewBoard()
	status := binding.NewString()
	_ = status.Set("Starting...")

	// --- UI LOOP (Оновлення графіки) ---
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond) // 10 FPS
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rs := room.Snapshot()
				cs := cleaner.Snapshot()
				board.UpdateState(rs, cs)
				_ = status.Set(statusLine(rs, cs))
			case <-sys.Context().Done():
				return
			}
		}
	}()

	// Глобальний таймер світу
	go vacuum.Drive(sys, cleaner.ID(), tick)

	btnNew := widget.NewButton("New Room", func() {
		_ = sys.Send(sys.Context(), "gui", room.ID(), vacuum.CmdNew)
	})

	// Скидання пам'яті йде через кімнату, щоб справжня поза теж повернулась на базу
	btnReset := widget.NewButton("Reset Memory", func() {
		_ = sys.Send(sys.Context(), "gui", room.ID(), vacuum.CmdReset)
	})

	toolbar := container.NewHBox(
		btnNew,
		btnReset,
		widget.NewLabelWithData(status),
	)

	return container.NewBorder(
		toolbar, // Top
		nil,     // Bottom
		nil,     // Left
		nil,     // Right
		board,   // Center
	), nil
}

func statusLine(rs vacuum.RoomSnapshot, cs vacuum.CleanerSnapshot) string {
	state := "exploring"
	switch {
	case cs.Halted:
		state = "halted"
	case cs.Finished:
		state = "going home"
	}
	return fmt.Sprintf("Score: %d  Steps: %d  Cycles: %d  Plan: %d  [%s]",
		rs.Score, rs.Steps, cs.Cycles, len(cs.Queue), state)
}
