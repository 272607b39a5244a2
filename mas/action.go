package mas

import (
	"log"
)

// Action - це команда, яку агент хоче виконати (наприклад: "Надіслати повідомлення", "Змінити стан")
type Action func(agent Agent, sys *System) error

// Send створює дію відправки повідомлення
func Send(to string, payload any) Action {
	return func(a Agent, sys *System) error {
		return sys.Send(sys.Context(), a.ID(), to, payload)
	}
}

// Tell - Send з перформативом.
func Tell(to string, kind Performative, payload any) Action {
	return func(a Agent, sys *System) error {
		return sys.SendTyped(sys.Context(), a.ID(), to, kind, payload)
	}
}

// SayLog просто пише в лог (для дебагу)
func SayLog(format string, args ...any) Action {
	return func(a Agent, sys *System) error {
		log.Printf("[LOG %s]: "+format+"\n", append([]any{a.ID()}, args...)...)
		return nil
	}
}
