package ai

import (
	"github.com/youryharchenko/go-vacuum/planning"
)

// BFSPlanner реалізує Breadth-First Search по абстрактному графу станів.
// Світ досліджується шарами, тому перший знайдений план має найменшу
// кількість розширень.
//
// Ціль перевіряється при генерації дочірнього вузла, а не при його
// розширенні: сусід на відстані одного кроку завжди виграє у того самого
// вузла, знайденого пізніше довшим шляхом.
//
// Відвідані вузли відмічаються за ключем domain.Key. Якщо ключ грубіший за
// стан (наприклад, без напрямку), вузол, уперше досягнутий одним способом,
// більше не ставиться в чергу іншим.
type BFSPlanner[S planning.State, K comparable] struct {
	// Expanded - скільки вузлів було розширено під час останнього виклику.
	Expanded int
}

func NewBFS[S planning.State, K comparable]() *BFSPlanner[S, K] {
	return &BFSPlanner[S, K]{}
}

// MakePlan повертає послідовність дій від start до найближчого цільового вузла.
// Якщо start уже ціль - порожній план і nil.
// Якщо ціль недосяжна - nil і ErrNoSolution.
func (p *BFSPlanner[S, K]) MakePlan(start S, domain planning.Domain[S, K]) ([]planning.Action, error) {
	p.Expanded = 0

	if domain.IsGoal(start) {
		return []planning.Action{}, nil
	}

	// Черга вузлів, які треба розширити (Frontier)
	queue := []planning.Successor[S]{{State: start}}
	reached := map[K]struct{}{domain.Key(start): {}}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		p.Expanded++

		for _, child := range domain.Expand(node.State, node.Actions) {
			// Рання перевірка цілі
			if domain.IsGoal(child.State) {
				return child.Actions, nil
			}

			key := domain.Key(child.State)
			if _, seen := reached[key]; !seen {
				reached[key] = struct{}{}
				queue = append(queue, child)
			}
		}
	}

	return nil, ErrNoSolution
}
