package vacuum

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/youryharchenko/go-vacuum/planning"
)

// Очки середовища.
const (
	SuckReward = 100
	ActionCost = 1
)

// EnvironmentConfig - параметри генерації кімнати.
type EnvironmentConfig struct {
	Width, Height int
	DirtRate      float64 // ймовірність бруду у вільній клітинці
	WallRate      float64 // ймовірність перешкоди всередині кімнати
	Rand          *rand.Rand
}

// Environment - справжня кімната, яку агент не бачить.
// Фізика: FORWARD у стіну дає bump, SUCK прибирає бруд.
type Environment struct {
	width, height int
	cells         [][]CellStatus // Wall / Clear / Dirt, cells[x][y]

	pose  Pose
	bump  bool
	score int
	steps int
}

// NewEnvironment генерує кімнату з випадковими перешкодами і брудом.
// Перешкоди ніколи не відрізають вільні клітинки від бази.
func NewEnvironment(cfg EnvironmentConfig) (*Environment, error) {
	if cfg.Width < 3 || cfg.Height < 3 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, cfg.Width, cfg.Height)
	}
	if cfg.DirtRate < 0 || cfg.DirtRate > 1 || cfg.WallRate < 0 || cfg.WallRate > 1 {
		return nil, fmt.Errorf("rates must be within [0,1], got dirt=%v wall=%v", cfg.DirtRate, cfg.WallRate)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1))
	}

	e := newBlankEnvironment(cfg.Width, cfg.Height)

	// 1. Перешкоди (зберігаючи зв'язність)
	for y := 1; y < cfg.Height-1; y++ {
		for x := 1; x < cfg.Width-1; x++ {
			if x == HomeX && y == HomeY {
				continue
			}
			if rng.Float64() < cfg.WallRate {
				e.cells[x][y] = Wall
				if !e.connected() {
					e.cells[x][y] = Clear
				}
			}
		}
	}

	// 2. Бруд
	for y := 1; y < cfg.Height-1; y++ {
		for x := 1; x < cfg.Width-1; x++ {
			if e.cells[x][y] == Clear && rng.Float64() < cfg.DirtRate {
				e.cells[x][y] = Dirt
			}
		}
	}

	return e, nil
}

// NewEnvironmentFromLayout будує кімнату з рядків: '#' стіна, '.' чисто, 'D' бруд.
// Периметр завжди стіна. (1,1) має бути вільною.
func NewEnvironmentFromLayout(rows []string) (*Environment, error) {
	if len(rows) < 3 || len(rows[0]) < 3 {
		return nil, ErrGridTooSmall
	}
	e := newBlankEnvironment(len(rows[0]), len(rows))

	for y, row := range rows {
		if len(row) != e.width {
			return nil, fmt.Errorf("row %d has length %d, want %d", y, len(row), e.width)
		}
		for x := 1; x < e.width-1; x++ {
			if y == 0 || y == e.height-1 {
				continue
			}
			switch row[x] {
			case '#':
				e.cells[x][y] = Wall
			case 'D':
				e.cells[x][y] = Dirt
			case '.', 'H', ' ':
				e.cells[x][y] = Clear
			default:
				return nil, fmt.Errorf("unexpected symbol %q at (%d, %d)", row[x], x, y)
			}
		}
	}

	if e.cells[HomeX][HomeY] == Wall {
		return nil, fmt.Errorf("home cell (%d, %d) must not be a wall", HomeX, HomeY)
	}
	return e, nil
}

func newBlankEnvironment(width, height int) *Environment {
	cells := make([][]CellStatus, width)
	for x := range cells {
		cells[x] = make([]CellStatus, height)
		for y := range cells[x] {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				cells[x][y] = Wall
			} else {
				cells[x][y] = Clear
			}
		}
	}
	return &Environment{
		width:  width,
		height: height,
		cells:  cells,
		pose:   Pose{X: HomeX, Y: HomeY, Heading: East},
	}
}

// connected - чи досяжні всі вільні клітинки з бази (flood fill).
func (e *Environment) connected() bool {
	free := 0
	for x := range e.cells {
		for _, c := range e.cells[x] {
			if c != Wall {
				free++
			}
		}
	}

	seen := map[Coord]bool{{X: HomeX, Y: HomeY}: true}
	stack := []Coord{{X: HomeX, Y: HomeY}}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for h := North; h <= West; h++ {
			dx, dy := h.Offset()
			n := Coord{X: c.X + dx, Y: c.Y + dy}
			if seen[n] || e.cells[n.X][n.Y] == Wall {
				continue
			}
			seen[n] = true
			stack = append(stack, n)
		}
	}
	return len(seen) == free
}

// Percept - що агент відчуває зараз.
func (e *Environment) Percept() Percept {
	return Percept{
		Bump: e.bump,
		Dirt: e.cells[e.pose.X][e.pose.Y] == Dirt,
		Home: e.pose.X == HomeX && e.pose.Y == HomeY,
	}
}

// Apply виконує дію агента.
func (e *Environment) Apply(a planning.Action) {
	e.bump = false
	if a != ActionNoOp {
		e.steps++
		e.score -= ActionCost
	}

	switch a {
	case ActionForward:
		x, y := e.pose.Ahead()
		if e.cells[x][y] == Wall {
			e.bump = true
			return
		}
		e.pose.X, e.pose.Y = x, y
	case ActionTurnLeft:
		e.pose.Heading = e.pose.Heading.Left()
	case ActionTurnRight:
		e.pose.Heading = e.pose.Heading.Right()
	case ActionSuck:
		if e.cells[e.pose.X][e.pose.Y] == Dirt {
			e.cells[e.pose.X][e.pose.Y] = Clear
			e.score += SuckReward
		}
	}
}

// ResetAgent повертає агента на базу обличчям на схід. Бруд і рахунок лишаються.
func (e *Environment) ResetAgent() {
	e.pose = Pose{X: HomeX, Y: HomeY, Heading: East}
	e.bump = false
}

func (e *Environment) Width() int  { return e.width }
func (e *Environment) Height() int { return e.height }
func (e *Environment) Pose() Pose  { return e.pose }
func (e *Environment) Score() int  { return e.score }
func (e *Environment) Steps() int  { return e.steps }

// Cell - справжній статус клітинки.
func (e *Environment) Cell(x, y int) CellStatus {
	if x < 0 || y < 0 || x >= e.width || y >= e.height {
		return Wall
	}
	return e.cells[x][y]
}

// DirtLeft - скільки брудних клітинок лишилось.
func (e *Environment) DirtLeft() int {
	n := 0
	for x := range e.cells {
		for _, c := range e.cells[x] {
			if c == Dirt {
				n++
			}
		}
	}
	return n
}

func (e *Environment) Clean() bool { return e.DirtLeft() == 0 }

// Layout повертає кімнату рядками, як у NewEnvironmentFromLayout.
func (e *Environment) Layout() []string {
	rows := make([]string, e.height)
	for y := 0; y < e.height; y++ {
		var sb strings.Builder
		for x := 0; x < e.width; x++ {
			sb.WriteByte(e.cells[x][y].Symbol())
		}
		rows[y] = sb.String()
	}
	return rows
}

// EpisodeResult - підсумок одного запуску.
type EpisodeResult struct {
	Steps  int // тактів рішення
	Score  int
	Clean  bool
	AtHome bool
	Halted bool
}

// RunEpisode синхронно ганяє цикл перцепт -> дія, поки агент не зупиниться
// або не вичерпається maxCycles.
func RunEpisode(env *Environment, agent *Agent, maxCycles int) EpisodeResult {
	cycles := 0
	for cycles < maxCycles && !agent.Halted() {
		action := agent.Execute(env.Percept())
		env.Apply(action)
		agent.SetPerformance(env.Score())
		cycles++
	}

	pose := env.Pose()
	return EpisodeResult{
		Steps:  cycles,
		Score:  env.Score(),
		Clean:  env.Clean(),
		AtHome: pose.X == HomeX && pose.Y == HomeY,
		Halted: agent.Halted(),
	}
}
