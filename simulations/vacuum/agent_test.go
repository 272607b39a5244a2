package vacuum

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youryharchenko/go-vacuum/planning"
)

var actionLetters = map[planning.Action]byte{
	ActionForward:   'F',
	ActionTurnLeft:  'L',
	ActionTurnRight: 'R',
	ActionSuck:      'S',
	ActionNoOp:      'N',
}

// recorder збирає телеметрію агента.
type recorder struct {
	lines []string
}

func (r *recorder) log(s string) { r.lines = append(r.lines, s) }

func (r *recorder) count(substr string) int {
	n := 0
	for _, l := range r.lines {
		if strings.Contains(l, substr) {
			n++
		}
	}
	return n
}

func newTestAgent(t *testing.T, w, h, steps int, log LogFunc) *Agent {
	t.Helper()
	a, err := NewAgent(AgentConfig{
		Width:       w,
		Height:      h,
		RandomSteps: steps,
		Log:         log,
		Rand:        rand.New(rand.NewPCG(7, 7)),
	})
	require.NoError(t, err)
	return a
}

// trace ганяє агента в кімнаті і повертає дії однією літерою кожна.
func trace(t *testing.T, env *Environment, a *Agent, maxCycles int) string {
	t.Helper()
	var sb strings.Builder
	for i := 0; i < maxCycles && !a.Halted(); i++ {
		act := a.Execute(env.Percept())
		letter, ok := actionLetters[act]
		require.True(t, ok, "unexpected action %q", act)
		sb.WriteByte(letter)
		env.Apply(act)
		a.SetPerformance(env.Score())
	}
	return sb.String()
}

func TestNewAgent(t *testing.T) {
	a := newTestAgent(t, 7, 5, DefaultRandomSteps, nil)
	assert.Equal(t, 70, a.IterationsLeft())
	assert.True(t, a.Placing())
	assert.False(t, a.Halted())
	assert.Equal(t, Pose{X: HomeX, Y: HomeY, Heading: East}, a.Pose())
	assert.Empty(t, a.Queue())

	_, err := NewAgent(AgentConfig{Width: 2, Height: 5})
	assert.ErrorIs(t, err, ErrGridTooSmall)

	_, err = NewAgent(AgentConfig{Width: 5, Height: 5, RandomSteps: -1})
	assert.Error(t, err)
}

func TestAgentStart(t *testing.T) {
	a := newTestAgent(t, 5, 5, 0, nil)

	// Перший такт лише закриває фазу розміщення
	assert.Equal(t, ActionSuck, a.Execute(Percept{Home: true}))
	assert.False(t, a.Placing())
	assert.Equal(t, 50, a.IterationsLeft())

	assert.Equal(t, ActionForward, a.Execute(Percept{Home: true}))
	assert.Equal(t, 49, a.IterationsLeft())

	m := a.Map()
	assert.Equal(t, Clear, m.Cell(HomeX, HomeY))
	assert.Equal(t, ActionForward, m.LastAction())
}

func TestAgentDirtFirst(t *testing.T) {
	a := newTestAgent(t, 5, 5, 0, nil)
	a.Execute(Percept{Home: true})

	a.queue = []planning.Action{ActionTurnLeft, ActionForward}
	assert.Equal(t, ActionSuck, a.Execute(Percept{Dirt: true, Home: true}))
	assert.Equal(t, []planning.Action{ActionTurnLeft, ActionForward}, a.Queue())
	assert.Equal(t, Dirt, a.Map().Cell(HomeX, HomeY))

	// Після прибирання черга продовжується з того ж місця
	assert.Equal(t, ActionTurnLeft, a.Execute(Percept{Home: true}))
	assert.Equal(t, North, a.Pose().Heading)
}

func TestAgentBumpMarksWall(t *testing.T) {
	a := newTestAgent(t, 5, 5, 0, nil)
	a.Execute(Percept{Home: true})
	require.Equal(t, ActionForward, a.Execute(Percept{Home: true}))

	a.Execute(Percept{Bump: true})
	m := a.Map()
	assert.Equal(t, Pose{X: HomeX, Y: HomeY, Heading: a.Pose().Heading}, a.Pose())
	assert.Equal(t, Wall, m.Cell(2, 1))
}

func TestAgentBudget(t *testing.T) {
	rec := &recorder{}
	a := newTestAgent(t, 5, 5, 0, rec.log)
	require.Equal(t, ActionSuck, a.Execute(Percept{Dirt: true, Home: true}))

	// Бюджет 2*5*5, потім тільки NOP
	for i := 0; i < 50; i++ {
		require.Equal(t, ActionSuck, a.Execute(Percept{Dirt: true, Home: true}), "cycle %d", i)
	}
	assert.False(t, a.Halted())

	for i := 0; i < 10; i++ {
		assert.Equal(t, ActionNoOp, a.Execute(Percept{Dirt: true, Home: true}))
	}
	assert.True(t, a.Halted())
	assert.Equal(t, 1, rec.count("Halting"))
	assert.Equal(t, 1, rec.count("Performance"))
}

func TestAgentHaltsAtHomeWhenMapKnown(t *testing.T) {
	env, err := NewEnvironmentFromLayout([]string{"###", "#.#", "###"})
	require.NoError(t, err)
	a := newTestAgent(t, 3, 3, 0, nil)

	assert.Equal(t, "SNN", trace(t, env, a, 100))
	assert.True(t, a.Halted())
	assert.Equal(t, -1, a.Performance())
}

func TestAgentTraces(t *testing.T) {
	cases := []struct {
		name     string
		layout   []string
		actions  string
		score    int
		finished bool
	}{
		{
			name:    "two dirt squares",
			layout:  []string{"#####", "#.D.#", "#...#", "#D..#", "#####"},
			actions: "SFSFRFFRFFSRFRFLFLFNN",
			score:   181,
		},
		{
			name:     "unreachable half",
			layout:   []string{"#######", "#..#..#", "#..#..#", "#..#..#", "#######"},
			actions:  "SFFRFFLFRRFRFRFFLFLFNN",
			score:    -20,
			finished: true,
		},
		{
			name:    "pillar",
			layout:  []string{"#####", "#...#", "#.#.#", "#..D#", "#####"},
			actions: "SFFRFFSRFFRFRFLFNN",
			score:   84,
		},
		{
			name:    "obstacles",
			layout:  []string{"#######", "#.D...#", "#.##..#", "#...#D#", "#D....#", "#######"},
			actions: "SFSFFFRFFSFRFFFFSRFFRFRFLFFFLFRRFLFFLFFLFRFLFFFNN",
			score:   253,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			env, err := NewEnvironmentFromLayout(c.layout)
			require.NoError(t, err)
			a := newTestAgent(t, env.Width(), env.Height(), 0, nil)

			assert.Equal(t, c.actions, trace(t, env, a, 1000))
			assert.Equal(t, c.score, env.Score())
			assert.True(t, env.Clean())
			assert.True(t, a.Halted())
			assert.Equal(t, c.finished, a.FinishedCleaning())
			assert.Equal(t, env.Pose(), a.Pose())
		})
	}
}

func TestAgentPlacementTracksPose(t *testing.T) {
	layout := []string{"#######", "#.D...#", "#.##..#", "#...#D#", "#D....#", "#######"}

	for seed := uint64(1); seed <= 30; seed++ {
		env, err := NewEnvironmentFromLayout(layout)
		require.NoError(t, err)
		a, err := NewAgent(AgentConfig{
			Width:       env.Width(),
			Height:      env.Height(),
			RandomSteps: DefaultRandomSteps,
			Rand:        rand.New(rand.NewPCG(seed, 3)),
		})
		require.NoError(t, err)

		for i := 0; i < DefaultRandomSteps+1; i++ {
			env.Apply(a.Execute(env.Percept()))
		}
		require.False(t, a.Placing())
		require.Equal(t, env.Pose(), a.Pose(), "seed %d", seed)

		res := RunEpisode(env, a, 1000)
		assert.True(t, res.Halted, "seed %d", seed)
		assert.Equal(t, env.Pose(), a.Pose(), "seed %d", seed)
		assert.LessOrEqual(t, res.Steps, 2*env.Width()*env.Height()+1)
	}
}

func TestAgentSnapshotsAreCopies(t *testing.T) {
	a := newTestAgent(t, 5, 5, 0, nil)
	a.Execute(Percept{Home: true})
	a.queue = []planning.Action{ActionForward}

	q := a.Queue()
	q[0] = ActionSuck
	assert.Equal(t, ActionForward, a.queue[0])

	m := a.Map()
	m.UpdateCell(2, 2, Wall)
	assert.Equal(t, Unknown, a.Map().Cell(2, 2))
}

func TestAgentPlacementTurns(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rec := &recorder{}
		a, err := NewAgent(AgentConfig{
			Width:       6,
			Height:      6,
			RandomSteps: DefaultRandomSteps,
			Log:         rec.log,
			Rand:        rand.New(rand.NewPCG(seed, 9)),
		})
		require.NoError(t, err)

		for i := 0; i < DefaultRandomSteps; i++ {
			heading := a.Pose().Heading
			act := a.Execute(Percept{})
			switch act {
			case ActionTurnLeft:
				assert.Equal(t, heading.Left(), a.Pose().Heading)
			case ActionTurnRight:
				assert.Equal(t, heading.Right(), a.Pose().Heading)
			default:
				assert.Equal(t, ActionForward, act)
			}
			assert.Equal(t, act, a.Map().LastAction())
		}
		assert.Zero(t, rec.count("invalid action"), "seed %d", seed)
	}
}
