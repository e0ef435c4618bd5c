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

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "yaml 配置文件路径")
	dumpConfig := pflag.Bool("dump-config", false, "输出生效的配置后退出")
	pflag.Parse()

	cfg, err := profile.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *dumpConfig {
		data, err := profile.Dump(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	if err := run(cfg); err != nil {
		glog.Error("hello failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *profile.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a, err := app.New("hello", cfg)
	if err != nil {
		return err
	}
	if err := a.Start(ctx); err != nil {
		return err
	}
	defer a.Stop(ctx)

	addr, err := startPing(actor.Root(a.World))
	if err != nil {
		return err
	}

	addr.Send(a.World, "World")
	addr.Send(a.World, "Actors")
	return a.Run(ctx)
}
