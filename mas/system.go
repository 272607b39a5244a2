package mas

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

var (
	ErrAgentExists   = errors.New("agent already exists")
	ErrAgentNotFound = errors.New("agent not found")
	ErrShuttingDown  = errors.New("system is shutting down")
)

// DefaultInboxSize - розмір буфера вхідного каналу агента.
const DefaultInboxSize = 100

// System - середовище виконання агентів: реєстр, маршрутизація повідомлень
// і контроль життєвого циклу горутин.
type System struct {
	mu       sync.RWMutex
	agents   map[string]Agent         // Тут живуть типи
	registry map[string]chan Envelope // Тут живуть канали (runtime)

	inboxSize int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option - функціональна опція для налаштування системи.
type Option func(*System)

// WithContext дозволяє передати батьківський контекст (наприклад, для тестів або signal.Notify).
func WithContext(ctx context.Context) Option {
	return func(s *System) {
		s.cancel()
		s.ctx, s.cancel = context.WithCancel(ctx)
	}
}

// WithInboxSize змінює розмір буфера вхідних каналів.
func WithInboxSize(n int) Option {
	return func(s *System) {
		if n > 0 {
			s.inboxSize = n
		}
	}
}

// NewSystem створює новий екземпляр системи.
func NewSystem(opts ...Option) *System {
	defaultCtx, defaultCancel := context.WithCancel(context.Background())

	s := &System{
		agents:    make(map[string]Agent),
		registry:  make(map[string]chan Envelope),
		inboxSize: DefaultInboxSize,
		ctx:       defaultCtx,
		cancel:    defaultCancel,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *System) Context() context.Context {
	return s.ctx
}

// Shutdown зупиняє всі агенти і чекає завершення їхніх циклів.
func (s *System) Shutdown() error {
	log.Println("System begin Shutdown")
	s.cancel()
	s.wg.Wait()
	return nil
}

func (s *System) GetAgent(id string) (Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agent, exists := s.agents[id]
	return agent, exists
}

// Spawn реєструє нового агента в системі та запускає його цикл обробки.
func (s *System) Spawn(agent Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return fmt.Errorf("spawn failed: %w", ErrShuttingDown)
	}

	id := agent.ID()

	// Перевірка на унікальність ID
	if _, exists := s.agents[id]; exists {
		return fmt.Errorf("spawn failed: agent with ID '%s': %w", id, ErrAgentExists)
	}

	inbox := make(chan Envelope, s.inboxSize)

	// s.registry потрібен для маршрутизації (Send), s.agents - для GetAgent
	s.registry[id] = inbox
	s.agents[id] = agent

	agent.Bind(s, inbox, agent)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		// Якщо s.Shutdown() скасує контекст, агент отримає сигнал ctx.Done()
		if err := agent.Run(s.ctx); err != nil {
			log.Printf("Agent %s stopped with error: %v\n", id, err)
		}
	}()

	return nil
}

// Send відправляє повідомлення від одного агента іншому.
// Ця операція є потокобезпечною.
//
// Аргументи:
//
//	ctx     - Контекст виконання (можна використати для тайм-ауту: context.WithTimeout).
//	fromID  - ID відправника.
//	toID    - ID отримувача.
//	payload - Корисне навантаження.
func (s *System) Send(ctx context.Context, fromID, toID string, payload any) error {
	return s.deliver(ctx, Envelope{From: fromID, To: toID, Payload: payload})
}

// SendTyped - як Send, але з перформативом (REQUEST / INFORM / PROPOSE).
func (s *System) SendTyped(ctx context.Context, fromID, toID string, kind Performative, payload any) error {
	return s.deliver(ctx, Envelope{From: fromID, To: toID, Type: kind, Payload: payload})
}

func (s *System) deliver(ctx context.Context, env Envelope) error {
	// RLock, бо це операція читання, яка відбувається дуже часто.
	s.mu.RLock()
	ch, exists := s.registry[env.To]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("send failed: agent '%s': %w", env.To, ErrAgentNotFound)
	}

	// Доставка з урахуванням Backpressure
	select {
	case ch <- env:
		return nil

	case <-ctx.Done():
		return fmt.Errorf("send canceled by caller: %w", ctx.Err())

	case <-s.ctx.Done():
		return ErrShuttingDown
	}
}

// Kill видаляє агента з реєстру. Його горутина завершиться разом із системою.
func (s *System) Kill(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.agents, id)
	delete(s.registry, id)
}

// IDs повертає ідентифікатори всіх зареєстрованих агентів.
func (s *System) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.agents))
	for id := range s.agents {
		ids = append(ids, id)
	}
	return ids
}
