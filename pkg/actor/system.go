package actor

import (
	"reflect"
	"strings"

	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/glog"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// After 处理结束后 actor 的去向
type After int

const (
	// Continue 继续存活
	Continue After = iota
	// Stop 在下一次过渡阶段停止并移除
	Stop
)

// System 一类 actor 的处理逻辑
// 同一 System 下的所有实例类型都是 I，只接收 M 类型的消息。
// Process 每次处理一个实例在本轮积累的全部消息，未取出的消息会被丢弃。
//
// Process 返回错误时实例保持处理前的状态。默认只保护值类型实例的顶层字段，
// 指针实例或字段中的 map、slice 被修改后不会恢复；
// 注册时使用 WithRollback 会在处理前保存快照，出错时原地恢复。
type System[I any, M any] interface {
	Process(ctx *Context, instance *I, inbox *Inbox[M]) (After, error)
}

// SystemFunc 函数形式的 System
type SystemFunc[I any, M any] func(ctx *Context, instance *I, inbox *Inbox[M]) (After, error)

func (f SystemFunc[I, M]) Process(ctx *Context, instance *I, inbox *Inbox[M]) (After, error) {
	return f(ctx, instance, inbox)
}

// Inbox 单个实例本轮待处理的消息，按发送顺序排列
type Inbox[M any] struct {
	items []M
	pos   int
}

// Next 取出下一条消息
func (b *Inbox[M]) Next() (M, bool) {
	var zero M
	if b.pos >= len(b.items) {
		return zero, false
	}
	msg := b.items[b.pos]
	b.items[b.pos] = zero
	b.pos++
	return msg, true
}

// Len 剩余消息数量
func (b *Inbox[M]) Len() int {
	return len(b.items) - b.pos
}

// Drain 依次处理全部剩余消息
func (b *Inbox[M]) Drain(fn func(msg M)) {
	for msg, ok := b.Next(); ok; msg, ok = b.Next() {
		fn(msg)
	}
}

// anyEntry 类型擦除后的 System 条目，由 World 统一调度
type anyEntry interface {
	name() string
	family() Family
	insert(id ActorId, instance any) error
	enqueue(id ActorId, slot *Slot) error
	remove(id ActorId)
	process(w *World)
	len() int
}

// borrower 按实例类型借出、归还实例
type borrower[I any] interface {
	borrow(id ActorId) (I, error)
	giveBack(id ActorId, instance I)
}

type record[I any, M any] struct {
	instance I
	queue    []M
	// ready 已在待处理列表中
	ready    bool
	borrowed bool
}

type entry[I any, M any] struct {
	sys        System[I, M]
	opts       *Options
	fam        Family
	records    map[ActorId]*record[I, M]
	ready      []ActorId
	processing bool
}

var _ anyEntry = (*entry[struct{}, struct{}])(nil)

func newEntry[I any, M any](sys System[I, M], opts *Options) *entry[I, M] {
	return &entry[I, M]{
		sys:     sys,
		opts:    opts,
		fam:     FamilyOf[M](),
		records: make(map[ActorId]*record[I, M]),
	}
}

func (e *entry[I, M]) name() string {
	return e.opts.Name
}

func (e *entry[I, M]) family() Family {
	return e.fam
}

func (e *entry[I, M]) len() int {
	return len(e.records)
}

func (e *entry[I, M]) insert(id ActorId, instance any) error {
	inst, ok := instance.(I)
	if !ok {
		return errors.Wrapf(errs.ErrInstanceWrongType, "system %s expects %s, got %T",
			e.opts.Name, reflect.TypeOf((*I)(nil)).Elem(), instance)
	}
	if _, exists := e.records[id]; exists {
		return errors.Wrapf(errs.ErrActorAlreadyStarted, "%s", id)
	}
	e.records[id] = &record[I, M]{instance: inst}
	return nil
}

func (e *entry[I, M]) enqueue(id ActorId, slot *Slot) error {
	msg, ok := Take[M](slot)
	if !ok {
		return errors.Wrapf(errs.ErrFamilyMismatch, "system %s expects %s, got %s",
			e.opts.Name, e.fam, slot.Family())
	}
	rec, ok := e.records[id]
	if !ok {
		return errors.Wrapf(errs.ErrActorNotFound, "no instance for %s", id)
	}
	rec.queue = append(rec.queue, msg)
	if !rec.ready {
		rec.ready = true
		e.ready = append(e.ready, id)
	}
	return nil
}

func (e *entry[I, M]) remove(id ActorId) {
	rec, ok := e.records[id]
	if !ok {
		return
	}
	delete(e.records, id)
	if n := len(rec.queue); n > 0 {
		glog.Warn("actor removed with unprocessed messages",
			zap.Stringer("actor", id),
			zap.String("system", e.opts.Name),
			zap.Int("dropped", n))
	}
}

// process 批量处理所有有消息的实例
func (e *entry[I, M]) process(w *World) {
	if e.processing {
		glog.Error("system re-entered while processing", zap.String("system", e.opts.Name))
		return
	}
	e.processing = true
	defer func() {
		e.processing = false
	}()

	batch := e.ready
	e.ready = nil
	for _, id := range batch {
		rec, ok := e.records[id]
		if !ok {
			continue
		}
		rec.ready = false
		if w.isStopping(id) {
			continue
		}
		if rec.borrowed {
			glog.Error("instance already borrowed, skipping",
				zap.Stringer("actor", id),
				zap.String("system", e.opts.Name))
			continue
		}

		inbox := &Inbox[M]{items: rec.queue}
		rec.queue = nil
		e.run(w, id, rec, inbox)
	}
}

func (e *entry[I, M]) run(w *World, id ActorId, rec *record[I, M], inbox *Inbox[M]) {
	var snap *snapshot
	if e.opts.Rollback {
		snap = takeSnapshot(&rec.instance)
	}

	rec.borrowed = true
	work := rec.instance
	after, err := invoke(func() (After, error) {
		return e.sys.Process(Of(w, id), &work, inbox)
	})
	rec.borrowed = false

	if err != nil {
		glog.Error("actor failed while processing",
			zap.Stringer("actor", id),
			zap.String("system", e.opts.Name),
			zap.Int("dropped", inbox.Len()),
			zap.Error(err))
		snap.restore()
		return
	}

	rec.instance = work
	if n := inbox.Len(); n > 0 {
		glog.Warn("actor did not process all pending messages",
			zap.Stringer("actor", id),
			zap.String("system", e.opts.Name),
			zap.Int("dropped", n))
	}

	if after == Stop {
		if err := w.Stop(id); err != nil {
			glog.Warn("failed to stop actor after processing", zap.Stringer("actor", id), zap.Error(err))
		}
	}
}

func (e *entry[I, M]) borrow(id ActorId) (I, error) {
	var zero I
	rec, ok := e.records[id]
	if !ok {
		return zero, errors.Wrapf(errs.ErrActorNotFound, "no instance for %s", id)
	}
	if rec.borrowed {
		glog.Error("instance already borrowed",
			zap.Stringer("actor", id),
			zap.String("system", e.opts.Name))
		return zero, errors.Wrapf(errs.ErrInstanceBorrowed, "%s", id)
	}
	rec.borrowed = true
	return rec.instance, nil
}

func (e *entry[I, M]) giveBack(id ActorId, instance I) {
	rec, ok := e.records[id]
	if !ok {
		return
	}
	rec.instance = instance
	rec.borrowed = false
}

// invoke 调用用户逻辑，panic 转为错误
func invoke(fn func() (After, error)) (after After, err error) {
	defer func() {
		if r := recover(); r != nil {
			after = Continue
			err = errors.Errorf("actor panicked: %v", r)
		}
	}()
	return fn()
}

// debugName 类型名去掉包路径与泛型参数
func debugName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "Unknown"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	name, _, _ = strings.Cut(name, "[")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "Unknown"
	}
	return name
}
