package vacuum

import (
	"errors"
	"fmt"

	"github.com/youryharchenko/go-vacuum/ai"
	"github.com/youryharchenko/go-vacuum/planning"
)

var ErrInvalidTarget = errors.New("invalid target class")

// SearchNode - поза в абстрактному графі пошуку.
type SearchNode struct {
	X, Y    int
	Heading Heading
}

func (n SearchNode) String() string {
	return fmt.Sprintf("%d,%d,%s", n.X, n.Y, n.Heading)
}

// Coord - ключ відвіданих вузлів: тільки координати, без напрямку.
type Coord struct {
	X, Y int
}

// Шаблони дій у порядку генерації: вперед, ліворуч, праворуч, назад.
// Порядок визначає, який з рівноцінних планів буде обрано.
var expansionPatterns = []struct {
	actions []planning.Action
	turn    func(Heading) Heading
}{
	{[]planning.Action{ActionForward}, func(h Heading) Heading { return h }},
	{[]planning.Action{ActionTurnLeft, ActionForward}, Heading.Left},
	{[]planning.Action{ActionTurnRight, ActionForward}, Heading.Right},
	{[]planning.Action{ActionTurnRight, ActionTurnRight, ActionForward}, Heading.Reverse},
}

// Matches - GoalMatcher: чи задовольняє клітинка (x, y) цільовий клас.
// Home визначається лише координатою (1,1), а не статусом на карті,
// бо статус бази перезаписується Clear/Dirt, коли агент на ній стоїть.
func (m *WorldMap) Matches(x, y int, target Target) (bool, error) {
	switch target {
	case TargetHome:
		return x == HomeX && y == HomeY, nil
	case TargetUnknown:
		return m.Cell(x, y) == Unknown, nil
	case TargetWall:
		return m.Cell(x, y) == Wall, nil
	case TargetDirt:
		return m.Cell(x, y) == Dirt, nil
	}
	return false, fmt.Errorf("%w: %s", ErrInvalidTarget, target)
}

// searchDomain - planning.Domain над картою агента для одного виклику планувальника.
type searchDomain struct {
	world  *WorldMap
	target Target
	log    LogFunc
}

// NewSearchDomain будує домен пошуку для цільового класу.
func NewSearchDomain(world *WorldMap, target Target, log LogFunc) planning.Domain[SearchNode, Coord] {
	return &searchDomain{world: world, target: target, log: log}
}

// Expand генерує до чотирьох сусідів. Клітинки, відомі як Wall, відкидаються.
// Невідомі клітинки вважаються прохідними - помилку виправить удар.
func (d *searchDomain) Expand(s SearchNode, path []planning.Action) []planning.Successor[SearchNode] {
	children := make([]planning.Successor[SearchNode], 0, len(expansionPatterns))

	for _, p := range expansionPatterns {
		heading := p.turn(s.Heading)
		dx, dy := heading.Offset()
		next := SearchNode{X: s.X + dx, Y: s.Y + dy, Heading: heading}

		if d.world.Cell(next.X, next.Y) == Wall {
			continue
		}

		// Кожна дитина отримує власну копію шляху
		actions := make([]planning.Action, 0, len(path)+len(p.actions))
		actions = append(actions, path...)
		actions = append(actions, p.actions...)

		children = append(children, planning.Successor[SearchNode]{Actions: actions, State: next})
	}

	return children
}

func (d *searchDomain) IsGoal(s SearchNode) bool {
	ok, err := d.world.Matches(s.X, s.Y, d.target)
	if err != nil {
		d.log.printf("Entered invalid agent state: %v", err)
		return false
	}
	return ok
}

func (d *searchDomain) Key(s SearchNode) Coord {
	return Coord{X: s.X, Y: s.Y}
}

// PlanRoute шукає найкоротший (у кроках BFS) маршрут від поточної пози агента
// до найближчої клітинки цільового класу.
// Порожній план без помилки - агент уже там. ai.ErrNoSolution - недосяжно.
func PlanRoute(world *WorldMap, target Target, log LogFunc) ([]planning.Action, error) {
	pose := world.Pose()
	start := SearchNode{X: pose.X, Y: pose.Y, Heading: pose.Heading}
	return ai.NewBFS[SearchNode, Coord]().MakePlan(start, NewSearchDomain(world, target, log))
}

// Simulate програє план від пози і повертає пройдені клітинки (для перевірок і UI).
func Simulate(from Pose, plan []planning.Action) []Coord {
	pose := from
	cells := []Coord{{X: pose.X, Y: pose.Y}}
	for _, a := range plan {
		switch a {
		case ActionTurnLeft:
			pose.Heading = pose.Heading.Left()
		case ActionTurnRight:
			pose.Heading = pose.Heading.Right()
		case ActionForward:
			pose.X, pose.Y = pose.Ahead()
			cells = append(cells, Coord{X: pose.X, Y: pose.Y})
		}
	}
	return cells
}
