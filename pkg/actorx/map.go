package actorx

import (
	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/actor"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/glog"

	"go.uber.org/zap"
)

// Map 创建把 A 转换为 B 并转发给 target 的中继 actor
func Map[A any, B any](ctx *actor.Context, target actor.Addr[B], fn func(A) B) (actor.Addr[A], error) {
	return start(ctx, "map", func(ctx *actor.Context, msg A) bool {
		target.Send(ctx.World, fn(msg))
		return true
	})
}

// MapOnce 与 Map 相同，但只转发一次，之后停止
// 同一批次中的后续消息会被丢弃并记录诊断日志
func MapOnce[A any, B any](ctx *actor.Context, target actor.Addr[B], fn func(A) B) (actor.Addr[A], error) {
	called := false
	return start(ctx, "map-once", func(ctx *actor.Context, msg A) bool {
		if called {
			glog.Error("relay rejected message",
				zap.Stringer("actor", ctx.Current()),
				zap.Error(errs.ErrCalledMoreThanOnce))
			return false
		}
		called = true
		target.Send(ctx.World, fn(msg))
		return false
	})
}
