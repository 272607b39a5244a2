package vacuum

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youryharchenko/go-vacuum/ai"
	"github.com/youryharchenko/go-vacuum/planning"
)

const (
	F = ActionForward
	L = ActionTurnLeft
	R = ActionTurnRight
)

// knownMap - карта без Unknown: усе всередині Clear.
func knownMap(t *testing.T, w, h int) *WorldMap {
	t.Helper()
	m := newMap(t, w, h)
	for x := 1; x < w-1; x++ {
		for y := 1; y < h-1; y++ {
			m.UpdateCell(x, y, Clear)
		}
	}
	return m
}

func TestExpand(t *testing.T) {
	m := newMap(t, 5, 5)
	d := NewSearchDomain(m, TargetUnknown, nil)

	t.Run("order and wall filtering", func(t *testing.T) {
		// З (1,1) на схід: вперед (2,1), ліворуч - стіна, праворуч (1,2), назад - стіна
		children := d.Expand(SearchNode{X: 1, Y: 1, Heading: East}, nil)
		require.Len(t, children, 2)

		assert.Equal(t, SearchNode{X: 2, Y: 1, Heading: East}, children[0].State)
		assert.Equal(t, []planning.Action{F}, children[0].Actions)

		assert.Equal(t, SearchNode{X: 1, Y: 2, Heading: South}, children[1].State)
		assert.Equal(t, []planning.Action{R, F}, children[1].Actions)
	})

	t.Run("all four patterns", func(t *testing.T) {
		children := d.Expand(SearchNode{X: 2, Y: 2, Heading: North}, nil)
		require.Len(t, children, 4)

		want := []planning.Successor[SearchNode]{
			{Actions: []planning.Action{F}, State: SearchNode{X: 2, Y: 1, Heading: North}},
			{Actions: []planning.Action{L, F}, State: SearchNode{X: 1, Y: 2, Heading: West}},
			{Actions: []planning.Action{R, F}, State: SearchNode{X: 3, Y: 2, Heading: East}},
			{Actions: []planning.Action{R, R, F}, State: SearchNode{X: 2, Y: 3, Heading: South}},
		}
		assert.Equal(t, want, children)
	})

	t.Run("children own their paths", func(t *testing.T) {
		parent := make([]planning.Action, 1, 16)
		parent[0] = L
		children := d.Expand(SearchNode{X: 2, Y: 2, Heading: North}, parent)
		require.Len(t, children, 4)

		children[0].Actions[0] = ActionSuck
		children[1].Actions = append(children[1].Actions, ActionSuck)

		assert.Equal(t, []planning.Action{L}, parent)
		assert.Equal(t, []planning.Action{L, R, F}, children[2].Actions)
		assert.Equal(t, []planning.Action{L, R, R, F}, children[3].Actions)
	})

	t.Run("unknown cells are passable, known walls are not", func(t *testing.T) {
		m := newMap(t, 5, 5)
		m.UpdateCell(2, 1, Wall)
		children := NewSearchDomain(m, TargetUnknown, nil).Expand(SearchNode{X: 1, Y: 1, Heading: East}, nil)
		require.Len(t, children, 1)
		assert.Equal(t, SearchNode{X: 1, Y: 2, Heading: South}, children[0].State)
	})
}

func TestMatches(t *testing.T) {
	m := newMap(t, 5, 5)
	m.UpdateCell(2, 2, Dirt)

	cases := []struct {
		x, y   int
		target Target
		want   bool
	}{
		{1, 1, TargetHome, true},
		{2, 1, TargetHome, false},
		{2, 1, TargetUnknown, true},
		{2, 2, TargetUnknown, false},
		{2, 2, TargetDirt, true},
		{0, 3, TargetWall, true},
		{3, 3, TargetWall, false},
	}
	for _, c := range cases {
		got, err := m.Matches(c.x, c.y, c.target)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "(%d,%d) %s", c.x, c.y, c.target)
	}

	t.Run("home is the coordinate, not the stored status", func(t *testing.T) {
		m.UpdateCell(HomeX, HomeY, Clear)
		ok, err := m.Matches(HomeX, HomeY, TargetHome)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("invalid target logs and never matches", func(t *testing.T) {
		_, err := m.Matches(2, 1, Target(42))
		assert.ErrorIs(t, err, ErrInvalidTarget)

		var logs []string
		d := NewSearchDomain(m, Target(42), func(s string) { logs = append(logs, s) })
		assert.False(t, d.IsGoal(SearchNode{X: 2, Y: 1}))
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0], "invalid")

		_, err = PlanRoute(m, Target(42), nil)
		assert.ErrorIs(t, err, ai.ErrNoSolution)
	})
}

func TestPlanRoute(t *testing.T) {
	t.Run("home from home is empty", func(t *testing.T) {
		m := knownMap(t, 5, 5)
		plan, err := PlanRoute(m, TargetHome, nil)
		require.NoError(t, err)
		assert.Empty(t, plan)
	})

	t.Run("home from elsewhere is not empty", func(t *testing.T) {
		m := knownMap(t, 5, 5)
		m.pose = Pose{X: 3, Y: 1, Heading: East}
		plan, err := PlanRoute(m, TargetHome, nil)
		require.NoError(t, err)
		// Позиції дедуплікуються без напрямку: розворот на місці і два кроки
		assert.Equal(t, []planning.Action{R, R, F, F}, plan)
	})

	t.Run("forward wins among equal moves", func(t *testing.T) {
		m := newMap(t, 5, 5)
		m.UpdateCell(1, 1, Clear)
		plan, err := PlanRoute(m, TargetUnknown, nil)
		require.NoError(t, err)
		assert.Equal(t, []planning.Action{F}, plan)
	})

	t.Run("nearest dirt", func(t *testing.T) {
		m := knownMap(t, 6, 6)
		m.UpdateCell(1, 4, Dirt)
		m.UpdateCell(4, 4, Dirt)
		plan, err := PlanRoute(m, TargetDirt, nil)
		require.NoError(t, err)
		cells := Simulate(m.Pose(), plan)
		assert.Equal(t, Coord{X: 1, Y: 4}, cells[len(cells)-1])
	})

	t.Run("exhausted on an enclosed 3x3", func(t *testing.T) {
		m := knownMap(t, 3, 3)
		plan, err := PlanRoute(m, TargetUnknown, nil)
		assert.ErrorIs(t, err, ai.ErrNoSolution)
		assert.Empty(t, plan)
	})

	t.Run("exhausted when unknown cells are walled off", func(t *testing.T) {
		m := knownMap(t, 7, 5)
		for y := 1; y < 4; y++ {
			m.UpdateCell(3, y, Wall)
			m.UpdateCell(4, y, Unknown)
			m.UpdateCell(5, y, Unknown)
		}
		_, err := PlanRoute(m, TargetUnknown, nil)
		assert.ErrorIs(t, err, ai.ErrNoSolution)
	})
}

// randomBelief будує випадкову карту: стіни, відомі клітинки і Unknown.
func randomBelief(t *testing.T, rng *rand.Rand) *WorldMap {
	w, h := 4+rng.IntN(6), 4+rng.IntN(6)
	m := newMap(t, w, h)
	for x := 1; x < w-1; x++ {
		for y := 1; y < h-1; y++ {
			if x == HomeX && y == HomeY {
				continue
			}
			switch r := rng.Float64(); {
			case r < 0.2:
				m.UpdateCell(x, y, Wall)
			case r < 0.7:
				m.UpdateCell(x, y, Clear)
			}
		}
	}
	m.UpdateCell(HomeX, HomeY, Clear)
	return m
}

func TestPlanNeverCrossesWalls(t *testing.T) {
	rng := rand.New(rand.NewPCG(2024, 1))

	for i := 0; i < 300; i++ {
		m := randomBelief(t, rng)

		// Ставимо агента в довільну вільну клітинку
		for {
			x, y := 1+rng.IntN(m.Width()-2), 1+rng.IntN(m.Height()-2)
			if m.Cell(x, y) != Wall {
				m.pose = Pose{X: x, Y: y, Heading: Heading(rng.IntN(4))}
				break
			}
		}

		for _, target := range []Target{TargetUnknown, TargetHome, TargetDirt} {
			plan, err := PlanRoute(m, target, nil)
			if err != nil {
				require.ErrorIs(t, err, ai.ErrNoSolution)
				continue
			}
			for _, c := range Simulate(m.Pose(), plan) {
				require.NotEqual(t, Wall, m.Cell(c.X, c.Y), "map:\n%s plan %v", m, plan)
			}

			again, err := PlanRoute(m, target, nil)
			require.NoError(t, err)
			require.Equal(t, plan, again)
		}
	}
}

func TestSimulate(t *testing.T) {
	cells := Simulate(Pose{X: 1, Y: 1, Heading: East}, []planning.Action{F, R, F, F, L, F})
	assert.Equal(t, []Coord{{1, 1}, {2, 1}, {2, 2}, {2, 3}, {3, 3}}, cells)
}
