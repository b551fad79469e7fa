package game

// EventType 事件类型
type EventType string

const (
	EventUnitPlaced    EventType = "unit_placed"
	EventUnitDestroyed EventType = "unit_destroyed"
	EventEnemySpawned  EventType = "enemy_spawned"
	EventEnemyKilled   EventType = "enemy_killed"
	EventEnemyCaptured EventType = "enemy_captured"
	EventWaveStarted   EventType = "wave_started"
	EventWaveCleared   EventType = "wave_cleared"
	EventBaseBreached  EventType = "base_breached"
	EventRebirth       EventType = "rebirth"
	EventReset         EventType = "reset"
)

// Event 事件
type Event struct {
	Type EventType
	Wave int         // 事件发生时的波次
	Tick uint64      // 事件发生时的 tick
	Data interface{} // 事件数据，如实体 ID 或类型名称
}

// Listener 事件订阅者
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc 让普通函数实现 Listener
type ListenerFunc func(event Event)

// OnEvent 调用 f(event)
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Dispatcher 事件分发器
// 同步分发，订阅者在 Session 的 goroutine 中被调用
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher 创建新的分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe 订阅事件
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe 取消订阅
// listener 必须是可比较的类型（通常是指针），ListenerFunc 订阅后无法取消
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listeners, exists := d.listeners[eventType]; exists {
		for i, l := range listeners {
			if l == listener {
				d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Dispatch 把事件发送给所有订阅者
func (d *Dispatcher) Dispatch(event Event) {
	if listeners, exists := d.listeners[event.Type]; exists {
		for _, listener := range listeners {
			listener.OnEvent(event)
		}
	}
}
