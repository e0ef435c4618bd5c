package actor

import (
	"reflect"

	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/glog"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

type systemSlot struct {
	entry anyEntry
	opts  *Options
	key   reflect.Type
	// closing 等待注销，不再接受新 actor
	closing bool
}

// World 单线程协作式 actor 调度器
// 管理地址空间、System 注册表、运行队列与待处理的生命周期过渡。
// World 不是并发安全的，只能在一个 goroutine 中使用。
type World struct {
	systems arena[*systemSlot]
	keyed   map[reflect.Type]SystemId
	tree    tree
	queue   []SystemId

	pendingStart      []ActorId
	pendingStop       []ActorId
	pendingUnregister []SystemId

	running   bool
	maxPasses int
}

// NewWorld 创建空的 World
func NewWorld(options ...WorldOption) *World {
	w := &World{
		keyed: make(map[reflect.Type]SystemId),
	}
	for _, option := range options {
		option(w)
	}
	return w
}

// Register 注册一个 System，返回其标识
// 同类 actor 应尽量复用同一个 System，批量处理效率更高
func Register[I any, M any](w *World, sys System[I, M], options ...Option) SystemId {
	opts := loadOptions(options...)
	if opts.Name == "" {
		opts.Name = debugName(sys)
	}
	slot := &systemSlot{
		entry: newEntry[I, M](sys, opts),
		opts:  opts,
		key:   reflect.TypeOf(sys),
	}
	id := SystemId{idx: w.systems.insert(slot)}
	if _, exists := w.keyed[slot.key]; !exists && slot.key != nil {
		w.keyed[slot.key] = id
	}

	glog.Debug("system registered",
		zap.Stringer("system", id),
		zap.String("name", opts.Name),
		zap.Bool("highPriority", opts.HighPriority))
	return id
}

// Ensure 返回同一动态类型的已注册 System，不存在时注册一个新的
func Ensure[I any, M any](w *World, sys System[I, M], options ...Option) SystemId {
	if id, ok := w.keyed[reflect.TypeOf(sys)]; ok {
		if slot, ok := w.systems.get(id.idx); ok && !slot.closing {
			return id
		}
	}
	return Register(w, sys, options...)
}

// Create 在 system 下创建 actor，parent 为零值时没有父节点
// 新 actor 处于待启动状态，若在下一次过渡阶段前没有 Start，会被自动停止移除
func (w *World) Create(system SystemId, parent ActorId) (ActorId, error) {
	slot, ok := w.systems.get(system.idx)
	if !ok || slot.closing {
		return ActorId{}, errors.Wrapf(errs.ErrSystemUnavailable, "create actor on %s", system)
	}
	if !parent.IsZero() {
		if p, ok := w.tree.get(parent); ok && p.stopping {
			return ActorId{}, errors.Wrapf(errs.ErrParentNotFound, "parent %s is stopping", parent)
		}
	}

	id, err := w.tree.insert(&node{
		parent:  parent,
		system:  system,
		label:   slot.opts.Name,
		pending: true,
	})
	if err != nil {
		return ActorId{}, err
	}
	w.pendingStart = append(w.pendingStart, id)

	glog.Debug("creating actor", zap.Stringer("actor", id), zap.Stringer("parent", parent), zap.String("system", slot.opts.Name))
	return id, nil
}

// Start 安装实例，actor 开始接收消息
func (w *World) Start(id ActorId, instance any) error {
	n, ok := w.tree.get(id)
	if !ok || n.stopping {
		return errors.Wrapf(errs.ErrActorNotFound, "start %s", id)
	}
	if !n.pending {
		return errors.Wrapf(errs.ErrActorAlreadyStarted, "start %s", id)
	}
	slot, ok := w.systems.get(n.system.idx)
	if !ok || slot.closing {
		return errors.Wrapf(errs.ErrSystemUnavailable, "start %s on %s", id, n.system)
	}
	if err := slot.entry.insert(id, instance); err != nil {
		return err
	}

	n.pending = false
	w.pendingStart = slices.DeleteFunc(w.pendingStart, func(p ActorId) bool {
		return p == id
	})

	glog.Debug("starting actor", zap.Stringer("actor", id), zap.String("system", slot.opts.Name))
	return nil
}

// Start 泛型版本，编译期约束实例类型
func Start[I any](w *World, id ActorId, instance I) error {
	return w.Start(id, instance)
}

// Send 发送消息，不会就地处理；失败时丢弃消息并记录诊断日志
func Send[M any](w *World, addr Addr[M], msg M) {
	if err := w.deliver(addr.id, NewSlot(msg)); err != nil {
		glog.Warn("failed to send message", zap.Stringer("actor", addr.id), zap.Error(err))
	}
}

func (w *World) deliver(id ActorId, slot *Slot) error {
	n, ok := w.tree.get(id)
	if !ok {
		return errors.Wrapf(errs.ErrActorNotFound, "send to %s", id)
	}
	if n.stopping {
		return errors.Wrapf(errs.ErrActorNotFound, "send to stopping %s", id)
	}
	if n.pending {
		return errors.Wrapf(errs.ErrActorNotFound, "send to %s before start", id)
	}
	sys, ok := w.systems.get(n.system.idx)
	if !ok {
		return errors.Wrapf(errs.ErrSystemUnavailable, "send to %s", id)
	}
	if err := sys.entry.enqueue(id, slot); err != nil {
		return err
	}

	w.schedule(n.system, sys.opts.HighPriority)
	return nil
}

// schedule 每个 System 在运行队列中最多一个条目
func (w *World) schedule(system SystemId, highPriority bool) {
	if slices.Contains(w.queue, system) {
		return
	}
	if highPriority {
		w.queue = slices.Insert(w.queue, 0, system)
	} else {
		w.queue = append(w.queue, system)
	}
}

// Stop 立即标记 actor 及其全部后代为停止状态，实际移除推迟到下一次过渡阶段
// 标记之后发往这些 actor 的消息都不会到达用户逻辑
func (w *World) Stop(id ActorId) error {
	n, ok := w.tree.get(id)
	if !ok {
		return errors.Wrapf(errs.ErrActorNotFound, "stop %s", id)
	}
	if n.stopping {
		return nil
	}

	w.tree.walk(id, func(_ ActorId, n *node) {
		n.stopping = true
	})
	w.pendingStop = append(w.pendingStop, id)

	glog.Debug("stopping actor", zap.Stringer("actor", id))
	return nil
}

// Unregister 注销 System，仍有 actor 使用时失败；实际移除推迟到下一次过渡阶段
func (w *World) Unregister(system SystemId) error {
	slot, ok := w.systems.get(system.idx)
	if !ok || slot.closing {
		return errors.Wrapf(errs.ErrSystemUnavailable, "unregister %s", system)
	}

	inUse := 0
	w.tree.each(func(_ ActorId, n *node) bool {
		if n.system == system && !n.stopping {
			inUse++
		}
		return true
	})
	if inUse > 0 {
		return errors.Wrapf(errs.ErrSystemStillInUse, "%s has %d live actors", slot.opts.Name, inUse)
	}

	slot.closing = true
	w.pendingUnregister = append(w.pendingUnregister, system)
	return nil
}

// RunUntilIdle 循环处理运行队列直到没有待处理的 System
// actor 之间互相不停发送消息时不会返回，可用 WithMaxPasses 限制
func (w *World) RunUntilIdle() error {
	if w.running {
		glog.Error("run until idle called while already running")
		return errors.WithStack(errs.ErrAlreadyRunning)
	}
	w.running = true
	defer func() {
		w.running = false
	}()

	if err := w.applyPending(); err != nil {
		return errors.Wrap(err, "failed to apply pending")
	}

	passes := 0
	for len(w.queue) > 0 {
		if w.maxPasses > 0 && passes >= w.maxPasses {
			return errs.ErrPassLimit(w.maxPasses)
		}
		system := w.queue[0]
		w.queue = slices.Delete(w.queue, 0, 1)

		w.process(system)
		passes++

		if err := w.applyPending(); err != nil {
			return errors.Wrap(err, "failed to apply pending")
		}
	}
	return nil
}

func (w *World) process(system SystemId) {
	slot, ok := w.systems.get(system.idx)
	if !ok {
		glog.Warn("scheduled system no longer exists", zap.Stringer("system", system))
		return
	}
	slot.entry.process(w)
}

// applyPending 过渡阶段：清理未启动的 actor，完成停止与注销
func (w *World) applyPending() error {
	if len(w.pendingStart) > 0 {
		pending := w.pendingStart
		w.pendingStart = nil
		// 逆序，先子后父
		for i := len(pending) - 1; i >= 0; i-- {
			id := pending[i]
			n, ok := w.tree.get(id)
			if !ok || !n.pending || n.stopping {
				continue
			}
			glog.Info("actor failed to start in time, cleaning up", zap.Stringer("actor", id), zap.String("label", n.label))
			if err := w.Stop(id); err != nil {
				return err
			}
		}
	}

	for len(w.pendingStop) > 0 {
		stops := w.pendingStop
		w.pendingStop = nil
		for _, id := range stops {
			// 祖先已经先被移除
			if !w.tree.contains(id) {
				continue
			}
			if err := w.tree.remove(id, w.finalize); err != nil {
				return err
			}
		}
	}

	if len(w.pendingUnregister) > 0 {
		systems := w.pendingUnregister
		w.pendingUnregister = nil
		for _, system := range systems {
			w.finalizeUnregister(system)
		}
	}
	return nil
}

func (w *World) finalize(id ActorId, n *node) {
	if slot, ok := w.systems.get(n.system.idx); ok {
		slot.entry.remove(id)
	}
	glog.Debug("actor removed", zap.Stringer("actor", id), zap.String("label", n.label))
}

func (w *World) finalizeUnregister(system SystemId) {
	slot, ok := w.systems.remove(system.idx)
	if !ok {
		return
	}
	if id, ok := w.keyed[slot.key]; ok && id == system {
		delete(w.keyed, slot.key)
	}
	w.queue = slices.DeleteFunc(w.queue, func(s SystemId) bool {
		return s == system
	})
	glog.Debug("system unregistered", zap.Stringer("system", system), zap.String("name", slot.opts.Name))
}

func (w *World) isStopping(id ActorId) bool {
	n, ok := w.tree.get(id)
	return !ok || n.stopping
}

// Contains actor 是否存活（已启动且未标记停止）
func (w *World) Contains(id ActorId) bool {
	n, ok := w.tree.get(id)
	return ok && !n.pending && !n.stopping
}

// Parent 返回 actor 的父节点
func (w *World) Parent(id ActorId) (ActorId, bool) {
	n, ok := w.tree.get(id)
	if !ok || n.parent.IsZero() {
		return ActorId{}, false
	}
	return n.parent, true
}

// SetLabel 设置调试标签
func (w *World) SetLabel(id ActorId, label string) {
	if n, ok := w.tree.get(id); ok {
		n.label = label
	}
}

// Label 返回调试标签
func (w *World) Label(id ActorId) string {
	if n, ok := w.tree.get(id); ok {
		return n.label
	}
	return ""
}

// Len 地址空间中的节点数量，包括待启动与待移除的节点
func (w *World) Len() int {
	return w.tree.len()
}

// Counts 按 System 名称统计节点数量
func (w *World) Counts() map[string]int {
	counts := make(map[string]int)
	for system, count := range w.tree.counts() {
		name := "Unknown"
		if slot, ok := w.systems.get(system.idx); ok {
			name = slot.opts.Name
		}
		counts[name] += count
	}
	return counts
}

// Close 检查是否还有未停止的 actor，返回每个 System 的剩余数量
func (w *World) Close() map[string]int {
	counts := w.Counts()
	if len(counts) > 0 {
		glog.Warn("actors not stopped before world close", zap.Any("counts", counts))
	}
	return counts
}
