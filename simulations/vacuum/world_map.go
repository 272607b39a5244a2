package vacuum

import (
	"errors"
	"fmt"
	"strings"

	"github.com/youryharchenko/go-vacuum/planning"
)

var (
	ErrGridTooSmall = errors.New("grid must be at least 3x3")
	ErrInvalidTurn  = errors.New("invalid turn action")
)

// Pose - положення і напрямок агента.
type Pose struct {
	X, Y    int
	Heading Heading
}

func (p Pose) String() string {
	return fmt.Sprintf("(%d, %d) %s", p.X, p.Y, p.Heading)
}

// Ahead повертає координати клітинки перед агентом.
func (p Pose) Ahead() (int, int) {
	dx, dy := p.Heading.Offset()
	return p.X + dx, p.Y + dy
}

// WorldMap - уявлення агента про світ: статус кожної клітинки і його поза.
// Зовнішнє кільце завжди Wall, (1,1) на старті Home, решта Unknown.
// Агент стартує в (1,1) обличчям на схід.
type WorldMap struct {
	width, height int
	cells         [][]CellStatus // cells[x][y]

	pose       Pose
	lastAction planning.Action
}

func NewWorldMap(width, height int) (*WorldMap, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, width, height)
	}

	cells := make([][]CellStatus, width)
	for x := range cells {
		cells[x] = make([]CellStatus, height)
	}

	// Зовнішній периметр - стіни
	for y := 0; y < height; y++ {
		cells[0][y] = Wall
		cells[width-1][y] = Wall
	}
	for x := 0; x < width; x++ {
		cells[x][0] = Wall
		cells[x][height-1] = Wall
	}
	cells[HomeX][HomeY] = Home

	return &WorldMap{
		width:      width,
		height:     height,
		cells:      cells,
		pose:       Pose{X: HomeX, Y: HomeY, Heading: East},
		lastAction: ActionNoOp,
	}, nil
}

func (m *WorldMap) Width() int  { return m.width }
func (m *WorldMap) Height() int { return m.height }

func (m *WorldMap) Pose() Pose { return m.pose }

func (m *WorldMap) LastAction() planning.Action { return m.lastAction }

// SetLastAction запам'ятовує дію, яку агент щойно віддав середовищу.
// Її наслідок буде врахований наступним UpdatePosition.
func (m *WorldMap) SetLastAction(a planning.Action) {
	m.lastAction = a
}

func (m *WorldMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

func (m *WorldMap) isBorder(x, y int) bool {
	return x == 0 || y == 0 || x == m.width-1 || y == m.height-1
}

// Cell повертає статус клітинки. Поза картою - Wall.
func (m *WorldMap) Cell(x, y int) CellStatus {
	if !m.InBounds(x, y) {
		return Wall
	}
	return m.cells[x][y]
}

// UpdatePosition - dead reckoning: якщо останньою дією був FORWARD і удару
// не було, агент зсувається на клітинку вперед. Інакше поза не змінюється.
func (m *WorldMap) UpdatePosition(bump bool) {
	if bump || m.lastAction != ActionForward {
		return
	}
	m.pose.X, m.pose.Y = m.pose.Ahead()
}

// UpdateCell перезаписує статус клітинки.
// Периметр і координати поза картою не змінюються.
func (m *WorldMap) UpdateCell(x, y int, status CellStatus) {
	if !m.InBounds(x, y) || m.isBorder(x, y) {
		return
	}
	m.cells[x][y] = status
}

// Turn повертає агента ліворуч/праворуч і запам'ятовує дію.
// Повертає ту саму дію, щоб її можна було одразу віддати середовищу.
func (m *WorldMap) Turn(a planning.Action) (planning.Action, error) {
	switch a {
	case ActionTurnLeft:
		m.pose.Heading = m.pose.Heading.Left()
	case ActionTurnRight:
		m.pose.Heading = m.pose.Heading.Right()
	default:
		return ActionNoOp, fmt.Errorf("%w: %q", ErrInvalidTurn, a)
	}
	m.lastAction = a
	return a, nil
}

// Count рахує клітинки з даним статусом.
func (m *WorldMap) Count(status CellStatus) int {
	n := 0
	for x := range m.cells {
		for _, c := range m.cells[x] {
			if c == status {
				n++
			}
		}
	}
	return n
}

// AllKnown - на карті не лишилось жодної Unknown клітинки.
func (m *WorldMap) AllKnown() bool {
	for x := range m.cells {
		for _, c := range m.cells[x] {
			if c == Unknown {
				return false
			}
		}
	}
	return true
}

// Clone робить глибоку копію (для UI та тестів).
func (m *WorldMap) Clone() *WorldMap {
	cells := make([][]CellStatus, m.width)
	for x := range m.cells {
		cells[x] = append([]CellStatus(nil), m.cells[x]...)
	}
	c := *m
	c.cells = cells
	return &c
}

// Dump малює карту символами: ? # . D H.
// dense=false додає пробіли навколо кожного символу.
func (m *WorldMap) Dump(dense bool) string {
	var sb strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			sym := m.cells[x][y].Symbol()
			if dense {
				sb.WriteByte(sym)
			} else {
				sb.WriteByte(' ')
				sb.WriteByte(sym)
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m *WorldMap) String() string {
	return m.Dump(true)
}
