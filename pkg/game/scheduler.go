package game

import (
	"container/heap"
	"log"
	"time"
)

// TimerID 定时器句柄，0 为无效值
type TimerID uint64

// timer 单个待触发的回调
type timer struct {
	id        TimerID
	at        time.Duration // 触发时刻（虚拟时间）
	interval  time.Duration // 重复间隔，0 表示一次性
	seq       uint64        // 入队序号，同一时刻按先入先出触发
	fn        func()
	cancelled bool
	index     int
}

// timerQueue 按 (at, seq) 排序的最小堆
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at == q[j].at {
		return q[i].seq < q[j].seq
	}
	return q[i].at < q[j].at
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler 虚拟时间定时器队列
//
// 出怪、波次推进和被动收入都通过它调度。时间只在 Advance 中前进，
// 测试可以直接推进虚拟时间而不依赖真实时钟。
// 不是并发安全的，只能在持有它的 Session 所在的 goroutine 中使用。
type Scheduler struct {
	now    time.Duration
	nextID TimerID
	seq    uint64
	queue  timerQueue
	timers map[TimerID]*timer
}

// NewScheduler 创建空的调度器，虚拟时间从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{
		nextID: 1,
		timers: make(map[TimerID]*timer),
	}
}

// Now 当前虚拟时间
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending 尚未触发（且未取消）的定时器数量
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// After 在 delay 之后触发一次 fn
// delay <= 0 时在下一次 Advance 中立即触发
func (s *Scheduler) After(delay time.Duration, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	return s.schedule(delay, 0, fn)
}

// Every 每隔 interval 触发一次 fn，直到被取消
func (s *Scheduler) Every(interval time.Duration, fn func()) TimerID {
	if interval <= 0 {
		log.Printf("[Scheduler] Warning: ignoring repeating timer with non-positive interval %v", interval)
		return 0
	}
	return s.schedule(interval, interval, fn)
}

func (s *Scheduler) schedule(delay, interval time.Duration, fn func()) TimerID {
	id := s.nextID
	s.nextID++
	t := &timer{
		id:       id,
		at:       s.now + delay,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
	}
	s.seq++
	s.timers[id] = t
	heap.Push(&s.queue, t)
	return id
}

// Cancel 取消定时器，返回是否确实取消了一个待触发的定时器
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.timers[id]
	if !ok {
		return false
	}
	t.cancelled = true
	delete(s.timers, id)
	return true
}

// CancelAll 取消所有待触发的定时器
func (s *Scheduler) CancelAll() {
	for _, t := range s.queue {
		t.cancelled = true
	}
	s.queue = s.queue[:0]
	s.timers = make(map[TimerID]*timer)
}

// Advance 推进虚拟时间 dt，按触发时刻顺序执行所有到期的回调
// 回调中新调度的定时器如果也在本次推进范围内，同样会被触发
// 返回：实际执行的回调数量
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	fired := 0

	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.at > target {
			break
		}
		heap.Pop(&s.queue)
		if next.cancelled {
			continue
		}
		s.now = next.at

		if next.interval > 0 {
			// 先重新入队再执行，回调内部可以取消自己
			next.at += next.interval
			next.seq = s.seq
			s.seq++
			heap.Push(&s.queue, next)
		} else {
			delete(s.timers, next.id)
		}

		next.fn()
		fired++
	}

	s.now = target
	return fired
}
