package vacuum

import (
	"fmt"

	"github.com/youryharchenko/go-vacuum/planning"
)

// Закритий набір дій пилососа.
const (
	ActionForward   planning.Action = "FORWARD"
	ActionTurnLeft  planning.Action = "TURN_LEFT"
	ActionTurnRight planning.Action = "TURN_RIGHT"
	ActionSuck      planning.Action = "SUCK"
	ActionNoOp      planning.Action = "NOP"
)

// IsTurn - чи є дія поворотом.
func IsTurn(a planning.Action) bool {
	return a == ActionTurnLeft || a == ActionTurnRight
}

// Heading - напрямок, куди дивиться агент.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

// offsets - зсув (dx, dy) на один крок уперед для кожного напрямку.
var offsets = [4]struct{ dx, dy int }{
	North: {0, -1},
	East:  {1, 0},
	South: {0, 1},
	West:  {-1, 0},
}

func (h Heading) norm() Heading {
	return ((h % 4) + 4) % 4
}

// Offset повертає зсув на один крок у цьому напрямку.
func (h Heading) Offset() (dx, dy int) {
	o := offsets[h.norm()]
	return o.dx, o.dy
}

func (h Heading) Left() Heading    { return (h.norm() + 3) % 4 }
func (h Heading) Right() Heading   { return (h.norm() + 1) % 4 }
func (h Heading) Reverse() Heading { return (h.norm() + 2) % 4 }

func (h Heading) String() string {
	switch h.norm() {
	case North:
		return "NORTH"
	case East:
		return "EAST"
	case South:
		return "SOUTH"
	default:
		return "WEST"
	}
}

// CellStatus - що агент знає про клітинку.
type CellStatus int

const (
	Unknown CellStatus = iota
	Wall
	Clear
	Dirt
	Home
)

func (c CellStatus) String() string {
	switch c {
	case Unknown:
		return "UNKNOWN"
	case Wall:
		return "WALL"
	case Clear:
		return "CLEAR"
	case Dirt:
		return "DIRT"
	case Home:
		return "HOME"
	}
	return fmt.Sprintf("CellStatus(%d)", int(c))
}

// Symbol - символ для текстового дампу карти.
func (c CellStatus) Symbol() byte {
	switch c {
	case Wall:
		return '#'
	case Clear:
		return '.'
	case Dirt:
		return 'D'
	case Home:
		return 'H'
	}
	return '?'
}

// Target - клас клітинок, до якого планується маршрут.
type Target int

const (
	TargetHome Target = iota
	TargetUnknown
	TargetWall
	TargetDirt
)

func (t Target) String() string {
	switch t {
	case TargetHome:
		return "HOME"
	case TargetUnknown:
		return "UNKNOWN"
	case TargetWall:
		return "WALL"
	case TargetDirt:
		return "DIRT"
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// Домашня клітинка завжди в (1,1).
const (
	HomeX = 1
	HomeY = 1
)

// Percept - те, що агент відчуває за один такт.
type Percept struct {
	Bump bool // останній FORWARD уперся в стіну
	Dirt bool // під агентом бруд
	Home bool // агент стоїть на базі
}

func (p Percept) String() string {
	return fmt.Sprintf("bump=%t dirt=%t home=%t", p.Bump, p.Dirt, p.Home)
}

// LogFunc - приймач телеметрії. Ніколи не впливає на рішення агента.
type LogFunc func(string)

func (l LogFunc) printf(format string, args ...any) {
	if l != nil {
		l(fmt.Sprintf(format, args...))
	}
}
