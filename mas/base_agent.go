package mas

import (
	"context"
	"log"
)

// BaseAgent бере на себе всю рутину: канали, системні виклики, цикл.
type BaseAgent struct {
	IDVal string

	// Приватні (інфраструктура)
	sys   *System
	inbox <-chan Envelope

	me Agent
}

func (b *BaseAgent) ID() string { return b.IDVal }

func (b *BaseAgent) Bind(sys *System, inbox <-chan Envelope, me Agent) {
	b.sys = sys
	b.inbox = inbox
	b.me = me
}

// Run - стандартний цикл для всіх агентів
func (b *BaseAgent) Run(ctx context.Context) error {
	log.Println("BaseAgent running:", b.ID())

	for {
		select {
		case msg := <-b.inbox:
			b.processMessage(ctx, msg)
		case <-ctx.Done():
			log.Println("BaseAgent done:", b.ID())
			b.drainInbox(ctx)
			return nil
		}
	}
}

// drainInbox вичитує залишки повідомлень без блокування
func (b *BaseAgent) drainInbox(ctx context.Context) {
	for {
		select {
		case msg := <-b.inbox:
			b.processMessage(ctx, msg)
		default:
			return
		}
	}
}

func (b *BaseAgent) processMessage(ctx context.Context, msg Envelope) {
	actions, err := b.me.Plan(ctx, msg)
	if err != nil {
		log.Printf("Agent %s planning error: %v\n", b.IDVal, err)
		return
	}

	for _, action := range actions {
		// Під час зупинки Send може впасти - це нормально, лише логуємо
		if err := action(b.me, b.sys); err != nil {
			log.Printf("Agent %s action failed: %v\n", b.IDVal, err)
		}
	}
}
