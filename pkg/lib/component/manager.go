package component

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/glog"

	"github.com/duke-git/lancet/v2/maputil"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Manager 组件生命周期管理器
// 按注册顺序初始化、启动，按逆序停止。
type Manager[T any] struct {
	components *maputil.ConcurrentMap[string, IComponent[T]]
	order      []string // 保存组件注册顺序
	orderMu    sync.RWMutex
	started    atomic.Bool
	stopped    atomic.Bool
	stopOnce   sync.Once
}

// NewManager 创建组件管理器
func NewManager[T any]() *Manager[T] {
	return &Manager[T]{
		components: maputil.NewConcurrentMap[string, IComponent[T]](10),
		order:      make([]string, 0),
	}
}

// IsStarted 检查管理器是否已启动
func (cm *Manager[T]) IsStarted() bool {
	return cm.started.Load()
}

// IsStopped 检查管理器是否已停止
func (cm *Manager[T]) IsStopped() bool {
	return cm.stopped.Load()
}

// ComponentCount 返回已注册的组件数量
func (cm *Manager[T]) ComponentCount() int {
	cm.orderMu.RLock()
	defer cm.orderMu.RUnlock()
	return len(cm.order)
}

func (cm *Manager[T]) GetComponent(name string) IComponent[T] {
	component, _ := cm.components.Get(name)
	return component
}

// GetComponentNames 按注册顺序返回组件名称
func (cm *Manager[T]) GetComponentNames() []string {
	cm.orderMu.RLock()
	defer cm.orderMu.RUnlock()

	names := make([]string, len(cm.order))
	copy(names, cm.order)
	return names
}

// Register 注册组件，启动后不能再注册
func (cm *Manager[T]) Register(component IComponent[T]) error {
	if cm.started.Load() {
		return errs.ErrCannotRegisterComponentAfterStarted
	}
	if component == nil {
		return errs.ErrComponentCannotBeNil
	}
	if component.Name() == "" {
		return errs.ErrComponentNameCannotBeEmpty
	}

	cm.orderMu.Lock()
	defer cm.orderMu.Unlock()

	if _, exists := cm.components.Get(component.Name()); exists {
		return errs.ErrComponentAlreadyRegistered
	}
	cm.components.Set(component.Name(), component)
	cm.order = append(cm.order, component.Name())
	return nil
}

func (cm *Manager[T]) ordered() []IComponent[T] {
	cm.orderMu.RLock()
	defer cm.orderMu.RUnlock()

	list := make([]IComponent[T], 0, len(cm.order))
	for _, name := range cm.order {
		if component, exists := cm.components.Get(name); exists {
			list = append(list, component)
		}
	}
	return list
}

// Init 按注册顺序初始化所有组件
func (cm *Manager[T]) Init(t T) error {
	if cm.started.Load() {
		return errs.ErrManagerAlreadyStarted
	}
	for _, component := range cm.ordered() {
		if err := component.Init(t); err != nil {
			return errs.ErrFailedToStartComponent(component.Name(), err)
		}
	}
	return nil
}

// Start 按注册顺序启动所有组件
// 某个组件启动失败时，逆序停止已启动的组件并返回该错误
func (cm *Manager[T]) Start(ctx context.Context, t T) error {
	if cm.stopped.Load() {
		return errs.ErrManagerStoppedCannotRestart
	}
	if !cm.started.CompareAndSwap(false, true) {
		return errs.ErrManagerAlreadyStarted
	}

	var started []IComponent[T]
	for _, component := range cm.ordered() {
		if err := component.Start(ctx, t); err != nil {
			glog.Error("component start failed", zap.String("component", component.Name()), zap.Error(err))
			slices.Reverse(started)
			if stopErr := cm.stopComponents(ctx, started); stopErr != nil {
				glog.Warn("component rollback stop failed", zap.Error(stopErr))
			}
			cm.stopped.Store(true)
			return errs.ErrFailedToStartComponent(component.Name(), err)
		}
		glog.Debug("component started", zap.String("component", component.Name()))
		started = append(started, component)
	}
	return nil
}

// Stop 按注册顺序的逆序停止所有组件，只执行一次
func (cm *Manager[T]) Stop(ctx context.Context) error {
	var err error
	cm.stopOnce.Do(func() {
		if !cm.started.Load() || !cm.stopped.CompareAndSwap(false, true) {
			return
		}
		components := cm.ordered()
		slices.Reverse(components)
		err = cm.stopComponents(ctx, components)
	})
	return err
}

// stopComponents 依次停止，返回最后一个错误
func (cm *Manager[T]) stopComponents(ctx context.Context, components []IComponent[T]) error {
	var lastErr error
	for _, component := range components {
		if err := component.Stop(ctx); err != nil {
			glog.Warn("component stop failed", zap.String("component", component.Name()), zap.Error(err))
			lastErr = err
			continue
		}
		glog.Debug("component stopped", zap.String("component", component.Name()))
	}
	return lastErr
}

// StopWithTimeout 使用超时停止所有组件
func (cm *Manager[T]) StopWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return cm.Stop(ctx)
}
