package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2/data/binding"

	"github.com/youryharchenko/go-vacuum/mas"
)

// MaxLogLength - після цієї довжини початок логу обрізається.
const MaxLogLength = 20000

// AppendLog безпечно додає рядок до binding
func AppendLog(data binding.String, text string) {
	current, _ := data.Get()
	// Якщо лог дуже довгий, обрізаємо початок, щоб не їсти пам'ять
	if len(current) > MaxLogLength {
		current = current[len(current)-MaxLogLength*4/5:]
	}
	_ = data.Set(current + "\n" + text)
}

// LogSink повертає приймач логів пилососа, що пише в binding.
func LogSink(data binding.String, prefix string) func(string) {
	return func(s string) {
		AppendLog(data, prefix+s)
	}
}

// LogWindowAgent - це агент, який керує текстовим полем на екрані
type LogWindowAgent struct {
	mas.BaseAgent

	// Приватне поле - "ниточка" до інтерфейсу
	output binding.String
}

func NewLogWindowAgent(id string, data binding.String) *LogWindowAgent {
	return &LogWindowAgent{
		BaseAgent: mas.BaseAgent{IDVal: id},
		output:    data,
	}
}

// Plan - всі повідомлення, що приходять, ми просто відображаємо
func (g *LogWindowAgent) Plan(ctx context.Context, msg mas.Envelope) ([]mas.Action, error) {
	AppendLog(g.output, fmt.Sprintf("[%s -> %s]: %+v", msg.From, g.IDVal, msg.Payload))
	return nil, nil
}
