package board

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/youryharchenko/go-vacuum/simulations/vacuum"
)

// КОЛЬОРИ
var (
	wallColor    = color.RGBA{60, 60, 60, 255}
	floorColor   = color.RGBA{200, 200, 200, 255}
	dirtColor    = color.RGBA{139, 90, 43, 255}
	homeColor    = color.RGBA{0, 200, 0, 255}
	fogColor     = color.RGBA{20, 20, 40, 170}
	agentColor   = color.RGBA{255, 50, 50, 255}
	headingColor = color.RGBA{255, 255, 255, 255}
)

// Board - віджет кімнати: справжні клітинки, поверх них туман там,
// де агент ще нічого не знає, і сам агент з напрямком.
type Board struct {
	widget.BaseWidget

	mu      sync.RWMutex
	room    vacuum.RoomSnapshot
	cleaner vacuum.CleanerSnapshot
}

func NewBoard() *Board {
	b := &Board{}
	b.ExtendBaseWidget(b)
	return b
}

// UpdateState оновлює дані і перемальовує віджет. Можна кликати з будь-якої горутини.
func (b *Board) UpdateState(room vacuum.RoomSnapshot, cleaner vacuum.CleanerSnapshot) {
	b.mu.Lock()
	b.room = room
	b.cleaner = cleaner
	b.mu.Unlock()

	fyne.Do(b.Refresh)
}

func (b *Board) snapshot() (vacuum.RoomSnapshot, vacuum.CleanerSnapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.room, b.cleaner
}

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	return &boardRenderer{board: b}
}

// --- RENDERER ---

type boardRenderer struct {
	board   *Board
	objects []fyne.CanvasObject
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.rebuild(size)
}

func (r *boardRenderer) Refresh() {
	r.rebuild(r.board.Size())
	canvas.Refresh(r.board)
}

func (r *boardRenderer) rebuild(size fyne.Size) {
	r.objects = nil

	room, cleaner := r.board.snapshot()
	rows := len(room.Layout)
	if rows == 0 {
		return
	}
	cols := len(room.Layout[0])

	// Квадратні клітинки, сітка по центру
	cellSize := size.Width / float32(cols)
	if h := size.Height / float32(rows); h < cellSize {
		cellSize = h
	}
	offsetX := (size.Width - float32(cols)*cellSize) / 2
	offsetY := (size.Height - float32(rows)*cellSize) / 2

	square := func(x, y int, c color.Color) {
		rect := canvas.NewRectangle(c)
		rect.Resize(fyne.NewSize(cellSize, cellSize))
		rect.Move(fyne.NewPos(offsetX+float32(x)*cellSize, offsetY+float32(y)*cellSize))
		r.objects = append(r.objects, rect)
	}

	for y, row := range room.Layout {
		for x := 0; x < len(row); x++ {
			switch {
			case row[x] == '#':
				square(x, y, wallColor)
			case row[x] == 'D':
				square(x, y, dirtColor)
			case x == vacuum.HomeX && y == vacuum.HomeY:
				square(x, y, homeColor)
			default:
				square(x, y, floorColor)
			}

			// Туман: агент ще не знає цієї клітинки
			if cleaner.Belief != nil && cleaner.Belief.Cell(x, y) == vacuum.Unknown {
				square(x, y, fogColor)
			}
		}
	}

	// Агент
	padding := cellSize * 0.1
	cx := offsetX + float32(room.Pose.X)*cellSize
	cy := offsetY + float32(room.Pose.Y)*cellSize

	body := canvas.NewCircle(agentColor)
	body.Resize(fyne.NewSize(cellSize-padding*2, cellSize-padding*2))
	body.Move(fyne.NewPos(cx+padding, cy+padding))
	r.objects = append(r.objects, body)

	// Напрямок - лінія від центру до краю
	dx, dy := room.Pose.Heading.Offset()
	half := cellSize / 2
	nose := canvas.NewLine(headingColor)
	nose.StrokeWidth = 2
	nose.Position1 = fyne.NewPos(cx+half, cy+half)
	nose.Position2 = fyne.NewPos(cx+half+float32(dx)*(half-padding), cy+half+float32(dy)*(half-padding))
	r.objects = append(r.objects, nose)
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardRenderer) Destroy() {}
