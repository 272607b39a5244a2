package vacuum

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/youryharchenko/go-vacuum/ai"
	"github.com/youryharchenko/go-vacuum/planning"
)

// DefaultRandomSteps - кількість випадкових кроків перед початком роботи.
const DefaultRandomSteps = 10

// AgentConfig - параметри агента, що задаються при створенні.
type AgentConfig struct {
	Width, Height int
	RandomSteps   int
	Log           LogFunc
	Rand          *rand.Rand // nil - генератор від часу

	DumpMap   bool // логувати карту кожен такт
	DenseDump bool
}

// Agent - реактивний пилосос: будує карту з перцептів і планує маршрути BFS.
// Не потокобезпечний: один агент - один власник.
type Agent struct {
	world *WorldMap
	log   LogFunc

	placementLeft int
	placement     *ai.WeightedRandom

	iterations       int // бюджет тактів; < 0 - агент зупинився
	queue            []planning.Action
	finishedCleaning bool
	performance      int

	dumpMap   bool
	denseDump bool
}

func NewAgent(cfg AgentConfig) (*Agent, error) {
	world, err := NewWorldMap(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	if cfg.RandomSteps < 0 {
		return nil, fmt.Errorf("random steps must not be negative, got %d", cfg.RandomSteps)
	}

	// 1/6 ліворуч, 1/6 праворуч, 4/6 вперед
	placement, err := ai.NewWeightedRandom(cfg.Rand,
		ai.WeightedAction{Action: ActionTurnLeft, Weight: 1},
		ai.WeightedAction{Action: ActionTurnRight, Weight: 1},
		ai.WeightedAction{Action: ActionForward, Weight: 4},
	)
	if err != nil {
		return nil, err
	}

	return &Agent{
		world:         world,
		log:           cfg.Log,
		placementLeft: cfg.RandomSteps,
		placement:     placement,
		iterations:    2 * cfg.Width * cfg.Height,
		dumpMap:       cfg.DumpMap,
		denseDump:     cfg.DenseDump,
	}, nil
}

// Execute - один цикл рішення: перцепт на вході, одна дія на виході.
func (a *Agent) Execute(p Percept) planning.Action {
	// Випадкова стартова позиція
	if a.placementLeft > 0 {
		a.log.printf("Moving to random start position (%d steps left)", a.placementLeft)
		return a.randomStep(p.Bump)
	}

	// Наслідок останнього випадкового кроку видно лише зараз:
	// оновлюємо позу і більше її не чіпаємо в цьому такті.
	if a.placementLeft == 0 {
		a.placementLeft--
		a.world.UpdatePosition(p.Bump)
		a.world.SetLastAction(ActionSuck)
		a.log.printf("Processing percepts after position randomization")
		return ActionSuck
	}

	if a.iterations < 1 {
		if a.iterations == 0 {
			a.iterations--
			a.log.printf("Iteration counter is now 0. Halting!")
			a.log.printf("Performance: %d", a.performance)
		}
		a.world.SetLastAction(ActionNoOp)
		return ActionNoOp
	}
	a.iterations--

	a.fuse(p)

	if p.Dirt {
		a.log.printf("DIRT -> choosing SUCK action!")
		a.world.SetLastAction(ActionSuck)
		return ActionSuck
	}

	if a.finishedCleaning || a.world.AllKnown() {
		if p.Home {
			a.log.printf("Finished cleaning and returned to home!")
			a.iterations = 0
			a.world.SetLastAction(ActionNoOp)
			return ActionNoOp
		}
		if len(a.queue) == 0 {
			a.log.printf("All squares are visited, generating path to home...")
			a.queue = a.plan(TargetHome)
		}
	} else if p.Bump || len(a.queue) == 0 {
		a.queue = a.plan(TargetUnknown)
		if len(a.queue) == 0 {
			a.log.printf("No reachable unknown squares could be found, planning to home position.")
			a.finishedCleaning = true
			a.queue = a.plan(TargetHome)
		}
	}

	return a.dequeue()
}

// fuse вносить перцепт у карту.
func (a *Agent) fuse(p Percept) {
	a.world.UpdatePosition(p.Bump)
	pose := a.world.Pose()
	a.log.printf("Position: (%d, %d)\t\tDirection: %s", pose.X, pose.Y, pose.Heading)

	if p.Bump {
		// Клітинка перед агентом - стіна, у яку він щойно вдарився
		x, y := pose.Ahead()
		a.world.UpdateCell(x, y, Wall)
	}

	if p.Dirt {
		a.world.UpdateCell(pose.X, pose.Y, Dirt)
	} else {
		a.world.UpdateCell(pose.X, pose.Y, Clear)
	}

	if a.dumpMap {
		a.log.printf("\n%s", a.world.Dump(a.denseDump))
	}
}

func (a *Agent) randomStep(bump bool) planning.Action {
	a.placementLeft--
	a.world.UpdatePosition(bump)

	action := a.placement.Choose()
	if IsTurn(action) {
		turned, err := a.world.Turn(action)
		if err != nil {
			a.log.printf("Entered invalid action, doing nothing: %v", err)
		}
		return turned
	}
	a.world.SetLastAction(action)
	return action
}

func (a *Agent) plan(target Target) []planning.Action {
	route, err := PlanRoute(a.world, target, a.log)
	if errors.Is(err, ai.ErrNoSolution) {
		a.log.printf("Could not find path to %s square.", target)
		return nil
	}
	if err != nil {
		a.log.printf("Planning to %s failed: %v", target, err)
		return nil
	}
	a.log.printf("Next action(s) to %s = %v", target, route)
	return route
}

func (a *Agent) dequeue() planning.Action {
	if len(a.queue) == 0 {
		a.world.SetLastAction(ActionNoOp)
		return ActionNoOp
	}

	next := a.queue[0]
	a.queue = a.queue[1:]

	if IsTurn(next) {
		if _, err := a.world.Turn(next); err != nil {
			a.log.printf("Entered invalid action, doing nothing: %v", err)
			return ActionNoOp
		}
		return next
	}

	a.world.SetLastAction(next)
	return next
}

// SetPerformance - оцінка від середовища, логується при зупинці.
func (a *Agent) SetPerformance(score int) { a.performance = score }

func (a *Agent) Performance() int { return a.performance }

func (a *Agent) Pose() Pose { return a.world.Pose() }

// Map повертає копію карти агента.
func (a *Agent) Map() *WorldMap { return a.world.Clone() }

// Queue повертає копію черги запланованих дій.
func (a *Agent) Queue() []planning.Action {
	return append([]planning.Action(nil), a.queue...)
}

// Halted - агент повідомив про зупинку і далі віддає лише NOP.
func (a *Agent) Halted() bool { return a.iterations < 0 }

func (a *Agent) FinishedCleaning() bool { return a.finishedCleaning }

// Placing - агент ще в фазі випадкового розміщення.
func (a *Agent) Placing() bool { return a.placementLeft >= 0 }

// IterationsLeft - залишок бюджету тактів.
func (a *Agent) IterationsLeft() int { return a.iterations }
