package actor

import (
	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"

	"github.com/pkg/errors"
)

// Void 占位 actor，不应收到任何消息
// 需要先占住一个位置、之后再换成真正的 actor 时使用。
type Void struct{}

type voidSystem struct{}

func (voidSystem) Process(*Context, *Void, *Inbox[Void]) (After, error) {
	return Continue, errors.WithStack(errs.ErrVoidProcessed)
}

// StartVoid 在 ctx 下创建并启动一个占位 actor
func StartVoid(ctx *Context) (Addr[Void], error) {
	system := Ensure[Void, Void](ctx.World, voidSystem{}, WithName("void"))
	id, _, err := ctx.Create(system)
	if err != nil {
		return Addr[Void]{}, err
	}
	if err := Start(ctx.World, id, Void{}); err != nil {
		return Addr[Void]{}, err
	}
	return AddrOf[Void](id), nil
}
