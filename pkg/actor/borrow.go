package actor

import (
	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"

	"github.com/pkg/errors"
)

// With 借出 actor 的实例执行 fn，结束后归还
// 实例正在处理中时返回 ErrInstanceBorrowed，不会产生别名；
// fn 出错时实例按原样归还。
func With[I any](w *World, id ActorId, fn func(ctx *Context, instance *I) (After, error)) error {
	n, ok := w.tree.get(id)
	if !ok || n.stopping {
		return errors.Wrapf(errs.ErrActorNotFound, "borrow %s", id)
	}
	slot, ok := w.systems.get(n.system.idx)
	if !ok {
		return errors.Wrapf(errs.ErrSystemUnavailable, "borrow %s", id)
	}
	b, ok := slot.entry.(borrower[I])
	if !ok {
		return errors.Wrapf(errs.ErrInstanceWrongType, "borrow %s from %s", id, slot.opts.Name)
	}

	instance, err := b.borrow(id)
	if err != nil {
		return err
	}
	work := instance
	after, err := invoke(func() (After, error) {
		return fn(Of(w, id), &work)
	})
	if err != nil {
		b.giveBack(id, instance)
		return err
	}
	b.giveBack(id, work)

	if after == Stop {
		return w.Stop(id)
	}
	return nil
}
