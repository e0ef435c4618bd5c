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
	codec := pflag.String("codec", "", "覆盖配置中的编解码器: json, msgpack")
	timeout := pflag.Duration("timeout", 10*time.Second, "整体超时")
	pflag.Parse()

	cfg, err := profile.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *codec != "" {
		cfg.Codec.Name = *codec
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := run(ctx, cfg, pflag.Args()); err != nil {
		glog.Error("relay failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *profile.Config, docs []string) error {
	if len(docs) == 0 {
		docs = []string{"alpha", "bravo", "charlie"}
	}

	a, err := app.New("relay", cfg)
	if err != nil {
		return err
	}
	if err := a.Start(ctx); err != nil {
		return err
	}
	defer a.Stop(ctx)

	// 所有中继挂在占位 actor 之下，结束时一次停止
	owner, err := actor.StartVoid(actor.Root(a.World))
	if err != nil {
		return err
	}
	p, err := startPipeline(actor.Of(a.World, owner.ID()), a.Bridge, a.Codec)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := p.fetch(doc); err != nil {
			return err
		}
	}
	if err := p.deadline(len(docs)); err != nil {
		return err
	}

	if err := a.Run(ctx); err != nil {
		return err
	}
	fmt.Printf("relayed %d summaries with %s\n", p.printed, a.Codec.Name())

	if err := a.World.Stop(owner.ID()); err != nil {
		return err
	}
	return a.World.RunUntilIdle()
}
