package vacuum

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/youryharchenko/go-vacuum/mas"
	"github.com/youryharchenko/go-vacuum/planning"
)

// Команди-рядки, які розуміють агенти.
const (
	CmdTick  = "TICK"
	CmdReset = "RESET"
	CmdNew   = "NEW"
)

// Generation - номер епізоду пари кімната + пилосос. Кімната збільшує його
// при кожному скиданні; повідомлення з чужим номером відкидаються.

// PerceptRequest - пилосос питає кімнату, що він відчуває.
type PerceptRequest struct {
	Generation int
}

// PerceptMessage - відповідь кімнати.
type PerceptMessage struct {
	Generation int
	Percept    Percept
}

// ActionMessage - дія пилососа для кімнати.
type ActionMessage struct {
	Generation int
	Action     planning.Action
}

// StepResult - кімната підтверджує виконання дії.
type StepResult struct {
	Generation int
	Score      int
	Steps      int
	Clean      bool
}

// ResetMessage - кімната повернула агента на базу, пилосос починає з чистою пам'яттю.
type ResetMessage struct {
	Generation int
}

// EpisodeIDs генерує унікальні ідентифікатори пари агентів для одного запуску.
func EpisodeIDs() (roomID, cleanerID string) {
	id := uuid.NewString()[:8]
	return "room-" + id, "cleaner-" + id
}

// --- ROOM (Середовище) ---

// RoomAgent тримає справжню кімнату і застосовує до неї дії пилососа.
type RoomAgent struct {
	mas.BaseAgent
	CleanerID string
	Config    EnvironmentConfig

	mu  sync.RWMutex
	env *Environment
	gen int
}

func NewRoomAgent(id, cleanerID string, cfg EnvironmentConfig) (*RoomAgent, error) {
	env, err := NewEnvironment(cfg)
	if err != nil {
		return nil, err
	}
	return &RoomAgent{
		BaseAgent: mas.BaseAgent{IDVal: id},
		CleanerID: cleanerID,
		Config:    cfg,
		env:       env,
	}, nil
}

// NewRoomAgentWith обгортає вже готову кімнату. NEW згенерує кімнату того ж розміру.
func NewRoomAgentWith(id, cleanerID string, env *Environment) *RoomAgent {
	return &RoomAgent{
		BaseAgent: mas.BaseAgent{IDVal: id},
		CleanerID: cleanerID,
		Config:    EnvironmentConfig{Width: env.Width(), Height: env.Height()},
		env:       env,
	}
}

func (r *RoomAgent) Plan(ctx context.Context, msg mas.Envelope) ([]mas.Action, error) {
	switch payload := msg.Payload.(type) {

	case PerceptRequest:
		r.mu.RLock()
		defer r.mu.RUnlock()
		if payload.Generation != r.gen {
			return nil, nil
		}
		p := r.env.Percept()
		return []mas.Action{mas.Tell(msg.From, mas.Inform, PerceptMessage{Generation: r.gen, Percept: p})}, nil

	case ActionMessage:
		r.mu.Lock()
		defer r.mu.Unlock()
		// Дія, обрана до скидання, до нової кімнати не застосовується
		if payload.Generation != r.gen {
			return nil, nil
		}
		r.env.Apply(payload.Action)
		res := StepResult{Generation: r.gen, Score: r.env.Score(), Steps: r.env.Steps(), Clean: r.env.Clean()}
		return []mas.Action{mas.Tell(msg.From, mas.Inform, res)}, nil

	case string:
		switch payload {
		case CmdNew:
			env, err := NewEnvironment(r.Config)
			if err != nil {
				return nil, fmt.Errorf("room %s: %w", r.IDVal, err)
			}
			r.mu.Lock()
			r.env = env
			r.gen++
			gen := r.gen
			r.mu.Unlock()
			return []mas.Action{
				mas.SayLog("New room generated (%dx%d)", r.Config.Width, r.Config.Height),
				mas.Tell(r.CleanerID, mas.Request, ResetMessage{Generation: gen}),
			}, nil

		case CmdReset:
			// Нова пам'ять пилососа починається з (1,1) на схід, тож і справжня поза туди ж
			r.mu.Lock()
			r.env.ResetAgent()
			r.gen++
			gen := r.gen
			r.mu.Unlock()
			return []mas.Action{
				mas.SayLog("Cleaner returned to home"),
				mas.Tell(r.CleanerID, mas.Request, ResetMessage{Generation: gen}),
			}, nil
		}
	}

	return nil, nil
}

// RoomSnapshot - копія стану кімнати для UI.
type RoomSnapshot struct {
	Generation int
	Layout     []string
	Pose       Pose
	Score      int
	Steps      int
	Clean      bool
}

func (r *RoomAgent) Snapshot() RoomSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RoomSnapshot{
		Generation: r.gen,
		Layout:     r.env.Layout(),
		Pose:       r.env.Pose(),
		Score:      r.env.Score(),
		Steps:      r.env.Steps(),
		Clean:      r.env.Clean(),
	}
}

// --- CLEANER (Пилосос) ---

// CleanerAgent - обгортка над Agent: один TICK - один цикл рішення.
type CleanerAgent struct {
	mas.BaseAgent
	RoomID string
	Config AgentConfig

	mu       sync.RWMutex
	brain    *Agent
	awaiting bool // чекаємо відповіді кімнати, нові TICK ігноруються
	cycles   int
	gen      int
}

func NewCleanerAgent(id, roomID string, cfg AgentConfig) (*CleanerAgent, error) {
	brain, err := NewAgent(cfg)
	if err != nil {
		return nil, err
	}
	return &CleanerAgent{
		BaseAgent: mas.BaseAgent{IDVal: id},
		RoomID:    roomID,
		Config:    cfg,
		brain:     brain,
	}, nil
}

func (c *CleanerAgent) Plan(ctx context.Context, msg mas.Envelope) ([]mas.Action, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch payload := msg.Payload.(type) {

	case PerceptMessage:
		// Перцепт, знятий до скидання, новому мозку не належить
		if payload.Generation != c.gen {
			return nil, nil
		}
		// --- Decide ---
		action := c.brain.Execute(payload.Percept)
		c.cycles++
		return []mas.Action{mas.Tell(c.RoomID, mas.Request, ActionMessage{Generation: c.gen, Action: action})}, nil

	case StepResult:
		if payload.Generation != c.gen {
			return nil, nil
		}
		c.brain.SetPerformance(payload.Score)
		c.awaiting = false
		return nil, nil

	case ResetMessage:
		brain, err := NewAgent(c.Config)
		if err != nil {
			return nil, fmt.Errorf("cleaner %s: %w", c.IDVal, err)
		}
		c.brain = brain
		c.gen = payload.Generation
		c.awaiting = false
		c.cycles = 0
		return []mas.Action{mas.SayLog("Memory reset")}, nil

	case string:
		switch payload {
		case CmdTick:
			if c.awaiting || c.brain.Halted() {
				return nil, nil
			}
			c.awaiting = true
			return []mas.Action{mas.Tell(c.RoomID, mas.Request, PerceptRequest{Generation: c.gen})}, nil

		case CmdReset:
			// Скидання йде через кімнату: вона повертає агента на базу
			return []mas.Action{mas.Tell(c.RoomID, mas.Request, CmdReset)}, nil
		}
	}

	return nil, nil
}

// CleanerSnapshot - копія стану пилососа для UI.
type CleanerSnapshot struct {
	Generation int
	Belief     *WorldMap
	Pose       Pose
	Queue      []planning.Action
	Cycles     int
	Halted     bool
	Finished   bool
	Awaiting   bool // відповідь кімнати ще не прийшла
}

func (c *CleanerAgent) Snapshot() CleanerSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CleanerSnapshot{
		Generation: c.gen,
		Belief:     c.brain.Map(),
		Pose:       c.brain.Pose(),
		Queue:      c.brain.Queue(),
		Cycles:     c.cycles,
		Halted:     c.brain.Halted(),
		Finished:   c.brain.FinishedCleaning(),
		Awaiting:   c.awaiting,
	}
}

// Spawn створює пару кімната + пилосос у системі.
func Spawn(sys *mas.System, agentCfg AgentConfig, envCfg EnvironmentConfig) (*RoomAgent, *CleanerAgent, error) {
	roomID, cleanerID := EpisodeIDs()

	room, err := NewRoomAgent(roomID, cleanerID, envCfg)
	if err != nil {
		return nil, nil, err
	}
	cleaner, err := NewCleanerAgent(cleanerID, roomID, agentCfg)
	if err != nil {
		return nil, nil, err
	}

	if err := sys.Spawn(room); err != nil {
		return nil, nil, err
	}
	if err := sys.Spawn(cleaner); err != nil {
		sys.Kill(roomID)
		return nil, nil, err
	}
	return room, cleaner, nil
}

// Drive пінає пилососа кожні tick, поки система жива.
func Drive(sys *mas.System, cleanerID string, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := sys.Send(sys.Context(), "admin", cleanerID, CmdTick); err != nil {
				return
			}
		case <-sys.Context().Done():
			return
		}
	}
}
