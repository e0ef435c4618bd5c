package errs

import (
	"github.com/pkg/errors"
)

// ========== 地址空间相关错误 ==========

var (
	// ErrParentNotFound 父节点不存在或正在停止
	ErrParentNotFound = errors.New("parent actor not found")
	// ErrNodeNotFound 节点不存在（内部错误）
	ErrNodeNotFound = errors.New("node not found")
)

// ========== Actor 生命周期相关错误 ==========

var (
	// ErrActorNotFound 目标 actor 不存在
	ErrActorNotFound = errors.New("actor not found")
	// ErrActorAlreadyStarted actor 已经启动，不再处于待启动状态
	ErrActorAlreadyStarted = errors.New("actor already started")
	// ErrInstanceWrongType 实例类型与 System 绑定的类型不一致
	ErrInstanceWrongType = errors.New("instance has wrong type for system")
	// ErrInstanceBorrowed 实例正在被处理，不能重复借出
	ErrInstanceBorrowed = errors.New("instance is already borrowed")
	// ErrFamilyMismatch 消息类型与 System 绑定的消息类型不一致
	ErrFamilyMismatch = errors.New("message family mismatch")
)

// ========== System 相关错误 ==========

var (
	// ErrSystemUnavailable System 不存在、已注销或等待注销
	ErrSystemUnavailable = errors.New("system unavailable")
	// ErrSystemStillInUse 仍有 actor 引用该 System
	ErrSystemStillInUse = errors.New("system still in use")
	// ErrAlreadyRunning 在处理过程中重入 RunUntilIdle
	ErrAlreadyRunning = errors.New("world is already running")
	// ErrVoidProcessed 占位 actor 被处理
	ErrVoidProcessed = errors.New("attempted to process void actor")
)

// ========== 适配器相关错误 ==========

var (
	// ErrCalledMoreThanOnce 一次性函数被调用多次
	ErrCalledMoreThanOnce = errors.New("function called more than once")
)

// ========== 桥接相关错误 ==========

var (
	// ErrBridgeStopped 桥接器已停止
	ErrBridgeStopped = errors.New("bridge is stopped")
	// ErrBridgeNotStarted 桥接器未启动
	ErrBridgeNotStarted = errors.New("bridge is not started")
)

// ========== 序列化相关错误 ==========

var (
	ErrMsgPackPack   = errors.New("msgpack打包错误")
	ErrMsgPackUnPack = errors.New("msgpack解析错误")
	ErrPBPack        = errors.New("pb打包错误")
	ErrPBUnPack      = errors.New("pb解析错误")
	ErrNotPBMsg      = errors.New("不是pb消息")
	ErrJsonPack      = errors.New("json打包错误")
	ErrJsonUnPack    = errors.New("json解析错误")
)

// ErrPassLimit 单次 RunUntilIdle 超过最大处理轮数
func ErrPassLimit(limit int) error {
	return errors.Errorf("run until idle exceeded %d passes", limit)
}

// ErrUnknownCodec 未知的序列化器名称
func ErrUnknownCodec(name string) error {
	return errors.Errorf("unknown codec: %s", name)
}

// ========== Component 相关错误 ==========

var (
	ErrComponentCannotBeNil                = errors.New("组件不能为空")
	ErrComponentNameCannotBeEmpty          = errors.New("组件名字不能空")
	ErrCannotRegisterComponentAfterStarted = errors.New("组件启动后无法注册组件")
	ErrComponentAlreadyRegistered          = errors.New("组件已注册")
	ErrManagerAlreadyStarted               = errors.New("管理器已启动")
	ErrManagerStoppedCannotRestart         = errors.New("管理器已停止，无法重启")
)

// ErrFailedToStartComponent 启动组件失败
func ErrFailedToStartComponent(name string, err error) error {
	return errors.Wrapf(err, "failed to start component '%s'", name)
}

// ========== Config 相关错误 ==========

func ErrReadConfigFileFailed(err error) error {
	return errors.Wrap(err, "read config file failed")
}

func ErrUnmarshalConfigFailed(key string, err error) error {
	return errors.Wrapf(err, "unmarshal config key '%s' failed", key)
}
