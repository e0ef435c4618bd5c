// Package bridge 外部协作者桥接
// 阻塞任务在 ants 协程池上执行，定时消息由时间轮触发，
// 结果经无锁队列回到拥有 World 的 goroutine，由 Pump 投递。
package bridge

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/actor"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/glog"

	"github.com/RussellLuo/timingwheel"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Result 阻塞任务的结果
type Result[R any] struct {
	Value R
	Err   error
}

// Bridge 阻塞任务与定时器的桥接器
// Go/After 可在任意 goroutine 调用；Pump/Wait/Run 只能在拥有 World 的 goroutine 调用。
type Bridge struct {
	cfg   Config
	pool  *ants.Pool
	wheel *timingwheel.TimingWheel
	inbox *mpsc
	// signal 有新投递时写入，容量为 1
	signal chan struct{}

	group  sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	// pending 已提交但尚未投递的任务与定时器
	pending atomic.Int64
	panics  atomic.Uint64
	started atomic.Bool
	stopped atomic.Bool
}

// New 创建桥接器，需要 Start 之后才能使用
func New(cfg *Config) *Bridge {
	c := DefaultConfig()
	if cfg != nil {
		*c = *cfg
	}
	c.normalize()
	return &Bridge{
		cfg:    *c,
		inbox:  newMpsc(),
		signal: make(chan struct{}, 1),
	}
}

// Start 创建协程池并启动时间轮
func (b *Bridge) Start(ctx context.Context) error {
	if b.stopped.Load() {
		return errors.WithStack(errs.ErrBridgeStopped)
	}
	if !b.started.CompareAndSwap(false, true) {
		return nil
	}
	pool, err := ants.NewPool(b.cfg.PoolSize)
	if err != nil {
		b.started.Store(false)
		return errors.Wrap(err, "create bridge pool")
	}
	b.pool = pool
	b.wheel = timingwheel.NewTimingWheel(b.cfg.Tick, b.cfg.WheelSize)
	b.wheel.Start()
	b.ctx, b.cancel = context.WithCancel(context.Background())

	glog.Debug("bridge started",
		zap.Int("poolSize", b.cfg.PoolSize),
		zap.Duration("tick", b.cfg.Tick),
		zap.Int64("wheelSize", b.cfg.WheelSize))
	return nil
}

// Stop 取消运行中的任务，等待其退出，丢弃尚未投递的结果
func (b *Bridge) Stop(ctx context.Context) error {
	if !b.started.Load() || !b.stopped.CompareAndSwap(false, true) {
		return nil
	}
	b.cancel()
	b.wheel.Stop()

	done := make(chan struct{})
	go func() {
		b.group.Wait()
		close(done)
	}()
	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = errors.Wrap(ctx.Err(), "等待桥接任务退出超时")
	}
	b.pool.Release()

	dropped := 0
	for d := b.inbox.pop(); d != nil; d = b.inbox.pop() {
		dropped++
	}
	if dropped > 0 {
		glog.Warn("bridge stopped with undelivered results", zap.Int("dropped", dropped))
	}
	b.pending.Store(0)
	return err
}

func (b *Bridge) check() error {
	if b.stopped.Load() {
		return errors.WithStack(errs.ErrBridgeStopped)
	}
	if !b.started.Load() {
		return errors.WithStack(errs.ErrBridgeNotStarted)
	}
	return nil
}

// post 生产者侧：入队并唤醒 Wait
func (b *Bridge) post(d delivery) {
	b.inbox.push(d)
	b.wake()
}

func (b *Bridge) wake() {
	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Go 在协程池上执行 fn，结果作为消息发给 reply
// fn 收到的 ctx 在桥接器停止时取消；fn 中的 panic 转为 Result.Err
func Go[R any](b *Bridge, fn func(ctx context.Context) (R, error), reply actor.Addr[Result[R]]) error {
	if err := b.check(); err != nil {
		return err
	}
	b.pending.Add(1)
	b.group.Add(1)
	err := b.pool.Submit(func() {
		defer b.group.Done()
		value, err := call(b, fn)
		b.post(func(w *actor.World) {
			reply.Send(w, Result[R]{Value: value, Err: err})
		})
	})
	if err != nil {
		b.pending.Add(-1)
		b.group.Done()
		return errors.Wrap(err, "submit bridge job")
	}
	return nil
}

func call[R any](b *Bridge, fn func(ctx context.Context) (R, error)) (value R, err error) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			glog.Error("bridge job panicked", zap.Any("panic", r))
			err = errors.Errorf("bridge job panicked: %v", r)
		}
	}()
	return fn(b.ctx)
}

// Pump 把已完成的结果投递到 World，返回投递数量
// 投递只是入队，之后需要调用 RunUntilIdle 处理
func (b *Bridge) Pump(w *actor.World) int {
	n := 0
	for d := b.inbox.pop(); d != nil; d = b.inbox.pop() {
		d(w)
		b.pending.Add(-1)
		n++
	}
	return n
}

// Wait 阻塞直到有结果可以投递或 ctx 结束
// 没有待完成的任务与定时器时立即返回
func (b *Bridge) Wait(ctx context.Context) error {
	for {
		if !b.inbox.empty() || b.pending.Load() == 0 {
			return nil
		}
		select {
		case <-b.signal:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Panics 任务 panic 的累计次数
func (b *Bridge) Panics() uint64 {
	return b.panics.Load()
}

// Pending 尚未投递的任务与定时器数量
func (b *Bridge) Pending() int {
	return int(b.pending.Load())
}

// Run 驱动 World 直到 World 空闲且没有待完成的任务与定时器
func (b *Bridge) Run(ctx context.Context, w *actor.World) error {
	for {
		if err := w.RunUntilIdle(); err != nil {
			return err
		}
		if b.Pending() == 0 {
			return nil
		}
		if err := b.Wait(ctx); err != nil {
			return err
		}
		b.Pump(w)
	}
}
