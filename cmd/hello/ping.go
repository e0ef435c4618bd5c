package main

import (
	"fmt"

	"github.com/open-mv-sandbox/ptero-sub000/pkg/actor"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/glog"

	"go.uber.org/zap"
)

// Ping 问候消息
type Ping string

type pingActor struct {
	greeted int
}

type pingSystem struct{}

// Process 只处理一批消息，之后停止
func (pingSystem) Process(ctx *actor.Context, p **pingActor, inbox *actor.Inbox[Ping]) (actor.After, error) {
	glog.Debug("handling queued messages", zap.Stringer("actor", ctx.Current()), zap.Int("count", inbox.Len()))
	inbox.Drain(func(msg Ping) {
		(*p).greeted++
		fmt.Printf("Hello, %s!\n", msg)
	})
	return actor.Stop, nil
}

// startPing 对外只暴露地址，actor 本身不公开
func startPing(ctx *actor.Context) (actor.Addr[Ping], error) {
	system := actor.Ensure[*pingActor, Ping](ctx.World, pingSystem{}, actor.WithName("ping"))
	id, _, err := ctx.Create(system)
	if err != nil {
		return actor.Addr[Ping]{}, err
	}
	if err := actor.Start(ctx.World, id, &pingActor{}); err != nil {
		return actor.Addr[Ping]{}, err
	}
	glog.Debug("ping actor started", zap.Stringer("actor", id))
	return actor.AddrOf[Ping](id), nil
}
