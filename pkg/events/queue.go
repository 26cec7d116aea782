package events

// Queue 整局共享的表现层事件队列
// 核心只负责 Push，外部协作者每帧调用 Drain 取走事件，永远不会阻塞模拟
type Queue struct {
	events     []Event
	dispatcher *Dispatcher
}

// NewQueue 创建空队列
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 64)}
}

// SetDispatcher 设置分发器，Push 时同步通知订阅者
func (q *Queue) SetDispatcher(d *Dispatcher) {
	q.dispatcher = d
}

// Push 追加事件
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
	if q.dispatcher != nil {
		q.dispatcher.Dispatch(e)
	}
}

// Len 当前待消费事件数量
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain 按产生顺序返回所有事件并清空队列
func (q *Queue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := make([]Event, len(q.events))
	copy(out, q.events)
	q.events = q.events[:0]
	return out
}

// Listener 事件订阅者
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc 函数形式的订阅者
type ListenerFunc func(e Event)

// OnEvent 调用函数本身
func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Dispatcher 按事件种类分发给订阅者
type Dispatcher struct {
	listeners map[Kind][]Listener
}

// NewDispatcher 创建分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[Kind][]Listener)}
}

// Subscribe 订阅指定种类的事件
func (d *Dispatcher) Subscribe(kind Kind, l Listener) {
	d.listeners[kind] = append(d.listeners[kind], l)
}

// Dispatch 通知所有订阅了该种类的监听者
func (d *Dispatcher) Dispatch(e Event) {
	for _, l := range d.listeners[e.Kind()] {
		l.OnEvent(e)
	}
}
