package planning

import (
	"fmt"
)

// Action - це атомарна дія, яку агент може виконати.
// Ми використовуємо string для простоти серіалізації та логування.
// Конкретні домени оголошують свій закритий набір констант цього типу.
type Action string

// State - це "зліпок" реальності в конкретний момент часу.
// fmt.Stringer - щоб ми могли логувати стан у консоль.
type State interface {
	fmt.Stringer
}

// Successor - дочірній вузол графа пошуку.
// Actions - повна послідовність дій від кореня до State.
// Кожен Successor володіє власною копією Actions.
type Successor[S State] struct {
	Actions []Action
	State   S
}

// Domain - описує правила світу для пошуку.
// Це чиста логіка: вона не змінює стан світу, а лише відповідає на запитання про нього.
//
// K - ключ дедуплікації вузлів (наприклад, тільки координати, без напрямку).
type Domain[S State, K comparable] interface {
	// Expand повертає досяжних сусідів вузла. path - дії, що привели до s.
	Expand(s S, path []Action) []Successor[S]

	// IsGoal перевіряє, чи задовольняє стан цільовий клас.
	IsGoal(s S) bool

	// Key повертає ключ, за яким пошук відмічає відвідані вузли.
	Key(s S) K
}

// Planner - об'єкт, який будує повний план (послідовність дій)
// від start до найближчого цільового стану, не виконуючи їх.
type Planner[S State, K comparable] interface {
	MakePlan(start S, domain Domain[S, K]) ([]Action, error)
}
