package bridge

import (
	"sync/atomic"
	"unsafe"

	"github.com/open-mv-sandbox/ptero-sub000/pkg/actor"
)

// delivery 在拥有 World 的 goroutine 上执行的投递
type delivery func(w *actor.World)

type mpscNode struct {
	next *mpscNode
	val  delivery
}

// mpsc 无锁多生产者单消费者队列
// push 可在任意 goroutine 调用，pop/empty 只能由消费者调用
type mpsc struct {
	head, tail *mpscNode
}

func newMpsc() *mpsc {
	q := &mpsc{}
	stub := &mpscNode{}
	q.head = stub
	q.tail = stub
	return q
}

func (q *mpsc) push(x delivery) {
	n := &mpscNode{val: x}
	prev := (*mpscNode)(atomic.SwapPointer((*unsafe.Pointer)(unsafe.Pointer(&q.head)), unsafe.Pointer(n)))
	atomic.StorePointer((*unsafe.Pointer)(unsafe.Pointer(&prev.next)), unsafe.Pointer(n))
}

func (q *mpsc) pop() delivery {
	tail := q.tail
	next := (*mpscNode)(atomic.LoadPointer((*unsafe.Pointer)(unsafe.Pointer(&tail.next)))) // acquire
	if next == nil {
		return nil
	}
	q.tail = next
	v := next.val
	next.val = nil
	return v
}

func (q *mpsc) empty() bool {
	tail := q.tail
	return atomic.LoadPointer((*unsafe.Pointer)(unsafe.Pointer(&tail.next))) == nil
}
