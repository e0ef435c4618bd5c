// Package app 进程引导
// 按顺序装配日志、桥接器与 World 组件，关闭时逆序释放。
package app

import (
	"context"

	"github.com/open-mv-sandbox/ptero-sub000/internal/logger"
	"github.com/open-mv-sandbox/ptero-sub000/internal/profile"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/actor"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/bridge"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/lib/component"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/lib/serializer"

	"go.uber.org/zap"
)

// App 进程宿主，组件启动后 World/Bridge/Codec 可用
type App struct {
	Name   string
	Config *profile.Config

	World  *actor.World
	Bridge *bridge.Bridge
	Codec  serializer.ISerializer

	components *component.Manager[*App]
}

// New 创建宿主并注册内置组件，extra 在内置组件之后启动
func New(name string, cfg *profile.Config, extra ...component.IComponent[*App]) (*App, error) {
	if cfg == nil {
		cfg = profile.Default()
	}
	a := &App{
		Name:       name,
		Config:     cfg,
		components: component.NewManager[*App](),
	}
	builtin := []component.IComponent[*App]{
		logger.NewComponent[*App](&cfg.Log, nil, zap.String("app", name)),
		&bridgeComponent{},
		&worldComponent{},
	}
	for _, c := range append(builtin, extra...) {
		if err := a.components.Register(c); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Start 初始化并启动全部组件
func (a *App) Start(ctx context.Context) error {
	if err := a.components.Init(a); err != nil {
		return err
	}
	return a.components.Start(ctx, a)
}

// Stop 逆序停止全部组件
func (a *App) Stop(ctx context.Context) error {
	return a.components.Stop(ctx)
}

// Run 驱动 World 直到空闲且桥接器没有待完成项
func (a *App) Run(ctx context.Context) error {
	return a.Bridge.Run(ctx, a.World)
}

// Components 按启动顺序返回组件名称
func (a *App) Components() []string {
	return a.components.GetComponentNames()
}
