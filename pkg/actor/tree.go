package actor

import (
	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// node 地址空间中的节点，只记录身份与层级
type node struct {
	parent   ActorId
	system   SystemId
	label    string
	children []ActorId
	// pending 已创建但尚未启动
	pending bool
	// stopping 已标记停止，等待下一次过渡阶段移除
	stopping bool
}

type tree struct {
	nodes arena[*node]
}

func (t *tree) insert(n *node) (ActorId, error) {
	var parent *node
	if !n.parent.IsZero() {
		p, ok := t.nodes.get(n.parent.idx)
		if !ok {
			return ActorId{}, errors.Wrapf(errs.ErrParentNotFound, "parent %s", n.parent)
		}
		parent = p
	}

	id := ActorId{idx: t.nodes.insert(n)}
	if parent != nil {
		parent.children = append(parent.children, id)
	}
	return id, nil
}

func (t *tree) get(id ActorId) (*node, bool) {
	return t.nodes.get(id.idx)
}

func (t *tree) contains(id ActorId) bool {
	return t.nodes.contains(id.idx)
}

func (t *tree) len() int {
	return t.nodes.len()
}

// walk 先序遍历 id 及其全部后代
func (t *tree) walk(id ActorId, fn func(id ActorId, n *node)) {
	n, ok := t.get(id)
	if !ok {
		return
	}
	fn(id, n)
	for _, child := range n.children {
		t.walk(child, fn)
	}
}

// remove 后序移除 id 及其全部后代，每移除一个节点回调一次 onRemoved
func (t *tree) remove(id ActorId, onRemoved func(id ActorId, n *node)) error {
	n, ok := t.get(id)
	if !ok {
		return errors.Wrapf(errs.ErrNodeNotFound, "remove %s", id)
	}

	t.removeInner(id, n, onRemoved)

	if parent, ok := t.get(n.parent); ok {
		parent.children = slices.DeleteFunc(parent.children, func(c ActorId) bool {
			return c == id
		})
	}
	return nil
}

func (t *tree) removeInner(id ActorId, n *node, onRemoved func(id ActorId, n *node)) {
	children := n.children
	n.children = nil
	for _, child := range children {
		if c, ok := t.get(child); ok {
			t.removeInner(child, c, onRemoved)
		}
	}

	t.nodes.remove(id.idx)
	if onRemoved != nil {
		onRemoved(id, n)
	}
}

// counts 统计每个 System 下的存活节点数
func (t *tree) counts() map[SystemId]int {
	counts := make(map[SystemId]int)
	t.nodes.each(func(_ index, n *node) bool {
		counts[n.system]++
		return true
	})
	return counts
}

func (t *tree) each(fn func(id ActorId, n *node) bool) {
	t.nodes.each(func(i index, n *node) bool {
		return fn(ActorId{idx: i}, n)
	})
}
