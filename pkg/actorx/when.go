// Package actorx 函数式适配 actor
// 所有适配器都是高优先级 actor，挂在当前上下文的 actor 之下。
package actorx

import (
	"github.com/open-mv-sandbox/ptero-sub000/pkg/actor"
)

type whenActor[M any] struct {
	fn func(ctx *actor.Context, msg M) bool
}

type whenSystem[M any] struct{}

func (whenSystem[M]) Process(ctx *actor.Context, a *whenActor[M], inbox *actor.Inbox[M]) (actor.After, error) {
	after := actor.Continue
	inbox.Drain(func(msg M) {
		if !a.fn(ctx, msg) {
			after = actor.Stop
		}
	})
	return after, nil
}

// When 创建收到消息时执行 fn 的 actor
// fn 返回 false 时 actor 在下一次过渡阶段停止
func When[M any](ctx *actor.Context, fn func(ctx *actor.Context, msg M) bool) (actor.Addr[M], error) {
	return start(ctx, "when", fn)
}

func start[M any](ctx *actor.Context, label string, fn func(ctx *actor.Context, msg M) bool) (actor.Addr[M], error) {
	system := actor.Ensure[whenActor[M], M](ctx.World, whenSystem[M]{}, actor.WithHighPriority())
	id, _, err := ctx.Create(system)
	if err != nil {
		return actor.Addr[M]{}, err
	}
	if err := actor.Start(ctx.World, id, whenActor[M]{fn: fn}); err != nil {
		return actor.Addr[M]{}, err
	}
	ctx.SetLabel(id, label)
	return actor.AddrOf[M](id), nil
}
