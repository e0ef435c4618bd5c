package logger

import (
	"context"

	"github.com/open-mv-sandbox/ptero-sub000/pkg/glog"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/lib/component"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	ComponentName = "logger"
)

// Component glog 日志组件，T 为宿主类型
type Component[T any] struct {
	component.BaseComponent[T]
	config    *glog.Config
	fields    []zap.Field
	panicHook func(entry zapcore.Entry)
}

// NewComponent 创建日志组件，cfg 为空时使用默认配置
func NewComponent[T any](cfg *glog.Config, panicHook func(entry zapcore.Entry), fields ...zap.Field) *Component[T] {
	if cfg == nil {
		cfg = glog.DefaultConfig()
	}
	return &Component[T]{
		config:    cfg,
		fields:    fields,
		panicHook: panicHook,
	}
}

func (c *Component[T]) Name() string {
	return ComponentName
}

// Init 日志要先于其他组件就绪，在初始化阶段完成
func (c *Component[T]) Init(t T) error {
	if err := glog.Init(c.config); err != nil {
		return err
	}
	options := []zap.Option{
		zap.Hooks(func(entry zapcore.Entry) error {
			if entry.Level >= zap.DPanicLevel && c.panicHook != nil {
				c.panicHook(entry)
			}
			return nil
		}),
	}
	if len(c.fields) > 0 {
		options = append(options, zap.Fields(c.fields...))
	}
	glog.WithOptions(options...)
	return nil
}

func (c *Component[T]) Stop(ctx context.Context) error {
	// 标准输出上 Sync 会返回错误，只有文件写入器的错误需要上报
	if err := glog.Stop(); err != nil && c.config.Path != "" {
		return err
	}
	return nil
}
