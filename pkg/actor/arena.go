package actor

// index 带代数校验的槽位索引，gen 为 0 表示无效
type index struct {
	slot uint32
	gen  uint32
}

func (i index) valid() bool {
	return i.gen != 0
}

type arenaEntry[T any] struct {
	gen   uint32
	live  bool
	value T
}

// arena 代数校验的槽位表，槽位释放后复用，复用时代数递增，旧索引因此失效
type arena[T any] struct {
	entries []arenaEntry[T]
	free    []uint32
	count   int
}

func (a *arena[T]) insert(value T) index {
	a.count++
	if n := len(a.free); n > 0 {
		slot := a.free[n-1]
		a.free = a.free[:n-1]
		e := &a.entries[slot]
		e.gen++
		if e.gen == 0 {
			e.gen = 1
		}
		e.live = true
		e.value = value
		return index{slot: slot, gen: e.gen}
	}
	a.entries = append(a.entries, arenaEntry[T]{gen: 1, live: true, value: value})
	return index{slot: uint32(len(a.entries) - 1), gen: 1}
}

func (a *arena[T]) get(i index) (T, bool) {
	var zero T
	if !i.valid() || int(i.slot) >= len(a.entries) {
		return zero, false
	}
	e := &a.entries[i.slot]
	if !e.live || e.gen != i.gen {
		return zero, false
	}
	return e.value, true
}

func (a *arena[T]) contains(i index) bool {
	_, ok := a.get(i)
	return ok
}

func (a *arena[T]) remove(i index) (T, bool) {
	value, ok := a.get(i)
	if !ok {
		return value, false
	}
	e := &a.entries[i.slot]
	var zero T
	e.live = false
	e.value = zero
	a.free = append(a.free, i.slot)
	a.count--
	return value, true
}

func (a *arena[T]) len() int {
	return a.count
}

// each 按槽位顺序遍历存活条目，fn 返回 false 时停止
func (a *arena[T]) each(fn func(i index, value T) bool) {
	for slot := range a.entries {
		e := &a.entries[slot]
		if !e.live {
			continue
		}
		if !fn(index{slot: uint32(slot), gen: e.gen}, e.value) {
			return
		}
	}
}
