package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/open-mv-sandbox/ptero-sub000/pkg/actor"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/actorx"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/bridge"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/glog"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/lib/serializer"

	"go.uber.org/zap"
)

// Document 阻塞任务读取的文档
type Document struct {
	Name string
	Body string
}

// Summary 经编解码中继传递的摘要
type Summary struct {
	Name   string `json:"name" msgpack:"name"`
	Length int    `json:"length" msgpack:"length"`
	Digest string `json:"digest" msgpack:"digest"`
}

// pipeline 任务结果 -> Map -> Encode -> Decode -> 打印
type pipeline struct {
	bridge  *bridge.Bridge
	results actor.Addr[bridge.Result[Document]]
	ticks   actor.Addr[string]
	printed int
}

func startPipeline(ctx *actor.Context, b *bridge.Bridge, codec serializer.ISerializer) (*pipeline, error) {
	p := &pipeline{bridge: b}

	printer, err := actorx.When(ctx, func(ctx *actor.Context, s Summary) bool {
		p.printed++
		fmt.Printf("%-10s %4d %s\n", s.Name, s.Length, s.Digest[:12])
		return true
	})
	if err != nil {
		return nil, err
	}
	decoder, err := actorx.Decode(ctx, printer, codec)
	if err != nil {
		return nil, err
	}
	encoder, err := actorx.Encode[Summary](ctx, decoder, codec)
	if err != nil {
		return nil, err
	}
	p.results, err = actorx.Map(ctx, encoder, summarize)
	if err != nil {
		return nil, err
	}
	p.ticks, err = actorx.When(ctx, func(ctx *actor.Context, msg string) bool {
		glog.Info("timer fired", zap.String("msg", msg))
		return false
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func summarize(r bridge.Result[Document]) Summary {
	if r.Err != nil {
		return Summary{Name: "error", Digest: strings.Repeat("0", 64)}
	}
	sum := sha256.Sum256([]byte(r.Value.Body))
	return Summary{
		Name:   r.Value.Name,
		Length: len(r.Value.Body),
		Digest: hex.EncodeToString(sum[:]),
	}
}

// fetch 在协程池上模拟一次阻塞读取
func (p *pipeline) fetch(name string) error {
	return bridge.Go(p.bridge, func(ctx context.Context) (Document, error) {
		select {
		case <-time.After(5 * time.Millisecond):
		case <-ctx.Done():
			return Document{}, ctx.Err()
		}
		return Document{Name: name, Body: strings.Repeat(name, 16)}, nil
	}, p.results)
}

func (p *pipeline) deadline(n int) error {
	_, err := bridge.After(p.bridge, 20*time.Millisecond, p.ticks, fmt.Sprintf("%d jobs submitted", n))
	return err
}
