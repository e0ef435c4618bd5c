package actor

// Option System 注册选项
type Option func(*Options)

// Options System 注册参数
type Options struct {
	// Name 调试名称，为空时取 System 的类型名
	Name string
	// HighPriority 高优先级 System 调度时插入运行队列头部
	HighPriority bool
	// Rollback 处理失败时把实例恢复到处理前的快照
	Rollback bool
}

func loadOptions(options ...Option) *Options {
	opts := &Options{}
	for _, option := range options {
		option(opts)
	}
	return opts
}

func WithName(name string) Option {
	return func(op *Options) {
		op.Name = name
	}
}

// WithHighPriority 用于中继、适配类 actor，使其先于普通工作完成
func WithHighPriority() Option {
	return func(op *Options) {
		op.HighPriority = true
	}
}

// WithRollback 每次处理前保存实例快照，处理出错时原地恢复
// 指针实例的地址不变，未导出字段与 map、slice 字段的内容都会恢复
func WithRollback() Option {
	return func(op *Options) {
		op.Rollback = true
	}
}

// WorldOption World 构造选项
type WorldOption func(*World)

// WithMaxPasses 限制单次 RunUntilIdle 的处理轮数，0 表示不限制
func WithMaxPasses(n int) WorldOption {
	return func(w *World) {
		w.maxPasses = n
	}
}
