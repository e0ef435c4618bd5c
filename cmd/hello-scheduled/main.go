package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/open-mv-sandbox/ptero-sub000/internal/app"
	"github.com/open-mv-sandbox/ptero-sub000/internal/profile"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/actor"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/glog"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/schedule"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "yaml 配置文件路径")
	pflag.Parse()

	cfg, err := profile.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		glog.Error("hello-scheduled failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *profile.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a, err := app.New("hello-scheduled", cfg)
	if err != nil {
		return err
	}
	if err := a.Start(ctx); err != nil {
		return err
	}
	defer a.Stop(ctx)

	s := schedule.New()
	addr, err := startHello(actor.Root(a.World), s)
	if err != nil {
		return err
	}

	glog.Info("sending messages")
	addr.Send(a.World, "World")
	addr.Send(a.World, "Actors")

	glog.Debug("processing actors")
	if err := s.RunUntilIdle(a.World); err != nil {
		return err
	}

	// 服务不会自己停止
	if err := a.World.Stop(addr.ID()); err != nil {
		return err
	}
	return a.World.RunUntilIdle()
}
