package main

import (
	"fmt"

	"github.com/open-mv-sandbox/ptero-sub000/pkg/actor"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/glog"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/schedule"

	"go.uber.org/zap"
)

// HelloMsg 问候消息
type HelloMsg string

// helloActor 收到消息时只入队并把自己推入调度队列，处理推迟到 drain
type helloActor struct {
	id       actor.ActorId
	queue    []string
	schedule *schedule.Schedule
}

func (h *helloActor) Process(ctx *actor.Context) (actor.After, error) {
	glog.Debug("processing scheduled messages", zap.Int("count", len(h.queue)))
	for _, entry := range h.queue {
		fmt.Printf("Hello, %s!\n", entry)
	}
	h.queue = h.queue[:0]
	return actor.Continue, nil
}

func handleHello(ctx *actor.Context, h **helloActor, inbox *actor.Inbox[HelloMsg]) (actor.After, error) {
	inbox.Drain(func(msg HelloMsg) {
		glog.Debug("queuing message", zap.Stringer("actor", ctx.Current()))
		(*h).queue = append((*h).queue, string(msg))
	})
	schedule.PushProcess[*helloActor]((*h).schedule, (*h).id)
	return actor.Continue, nil
}

func startHello(ctx *actor.Context, s *schedule.Schedule) (actor.Addr[HelloMsg], error) {
	system := actor.Ensure[*helloActor, HelloMsg](ctx.World, actor.SystemFunc[*helloActor, HelloMsg](handleHello),
		actor.WithName("hello"))
	id, _, err := ctx.Create(system)
	if err != nil {
		return actor.Addr[HelloMsg]{}, err
	}
	h := &helloActor{id: id, schedule: s}
	if err := actor.Start(ctx.World, id, h); err != nil {
		return actor.Addr[HelloMsg]{}, err
	}
	return actor.AddrOf[HelloMsg](id), nil
}
