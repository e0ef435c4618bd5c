package app

import (
	"context"

	"github.com/open-mv-sandbox/ptero-sub000/pkg/actor"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/bridge"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/lib/component"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/lib/serializer"
)

type bridgeComponent struct {
	component.BaseComponent[*App]
	b *bridge.Bridge
}

func (c *bridgeComponent) Name() string {
	return "bridge"
}

func (c *bridgeComponent) Init(a *App) error {
	c.b = bridge.New(&a.Config.Bridge)
	a.Bridge = c.b
	return nil
}

func (c *bridgeComponent) Start(ctx context.Context, a *App) error {
	return c.b.Start(ctx)
}

func (c *bridgeComponent) Stop(ctx context.Context) error {
	return c.b.Stop(ctx)
}

type worldComponent struct {
	component.BaseComponent[*App]
	world         *actor.World
	warnUnstopped bool
}

func (c *worldComponent) Name() string {
	return "world"
}

func (c *worldComponent) Init(a *App) error {
	codec, err := serializer.ByName(a.Config.Codec.Name)
	if err != nil {
		return err
	}
	c.world = actor.NewWorld(actor.WithMaxPasses(a.Config.Runtime.MaxPasses))
	c.warnUnstopped = a.Config.Runtime.WarnUnstopped
	a.World = c.world
	a.Codec = codec
	return nil
}

func (c *worldComponent) Stop(ctx context.Context) error {
	if c.warnUnstopped {
		c.world.Close()
	}
	return nil
}
