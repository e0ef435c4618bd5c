package component

import (
	"context"
)

// IComponent 由 Manager 管理生命周期的组件，T 为宿主类型
type IComponent[T any] interface {
	Init(t T) error
	Start(ctx context.Context, t T) error
	Stop(ctx context.Context) error
	Name() string
}

// BaseComponent 空实现，嵌入后只需覆盖需要的方法
type BaseComponent[T any] struct {
}

func (*BaseComponent[T]) Init(t T) error { return nil }
func (*BaseComponent[T]) Start(ctx context.Context, t T) error {
	return nil
}
func (*BaseComponent[T]) Stop(ctx context.Context) error {
	return nil
}
