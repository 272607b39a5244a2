package mas

type Performative string

const (
	Request Performative = "REQUEST"
	Inform  Performative = "INFORM"
)

type Envelope struct {
	From    string
	To      string
	Type    Performative
	Payload any
}
