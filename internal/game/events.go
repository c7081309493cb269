package game

type EventType int

const (
	EventSpawned EventType = iota
	EventCulled
	EventCollision
	EventGameOverNotice
	EventAgentReady
	EventDriveStart // countdown over, the user car takes input
)

type Event struct {
	Type     EventType
	Obstacle ObstacleID
	Pos      Vec3
	Count    int // e.g. number of cars culled this tick
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
