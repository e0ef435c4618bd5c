package bridge

import (
	"sync/atomic"
	"time"

	"github.com/open-mv-sandbox/ptero-sub000/pkg/actor"

	"github.com/RussellLuo/timingwheel"
)

// Timer 一次性定时消息
type Timer struct {
	b     *Bridge
	t     *timingwheel.Timer
	fired atomic.Bool
}

// After d 之后把 msg 发给 reply
func After[M any](b *Bridge, d time.Duration, reply actor.Addr[M], msg M) (*Timer, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	timer := &Timer{b: b}
	b.pending.Add(1)
	timer.t = b.wheel.AfterFunc(d, func() {
		if !timer.fired.CompareAndSwap(false, true) {
			return
		}
		b.post(func(w *actor.World) {
			reply.Send(w, msg)
		})
	})
	return timer, nil
}

// Stop 取消定时器，已经触发时返回 false
func (t *Timer) Stop() bool {
	if !t.fired.CompareAndSwap(false, true) {
		return false
	}
	t.t.Stop()
	// 桥接器停止时已清零
	if t.b.stopped.Load() {
		return true
	}
	t.b.pending.Add(-1)
	t.b.wake()
	return true
}
