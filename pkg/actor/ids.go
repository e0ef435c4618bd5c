package actor

import (
	"fmt"
)

// ActorId actor 的唯一标识，零值表示"无 actor"，常用作无父节点参数
type ActorId struct {
	idx index
}

// IsZero 是否为零值
func (id ActorId) IsZero() bool {
	return !id.idx.valid()
}

func (id ActorId) String() string {
	if id.IsZero() {
		return "actor(none)"
	}
	return fmt.Sprintf("actor(%dv%d)", id.idx.slot, id.idx.gen)
}

// SystemId 已注册 System 的标识
type SystemId struct {
	idx index
}

func (id SystemId) IsZero() bool {
	return !id.idx.valid()
}

func (id SystemId) String() string {
	if id.IsZero() {
		return "system(none)"
	}
	return fmt.Sprintf("system(%dv%d)", id.idx.slot, id.idx.gen)
}

// Addr 绑定消息类型 M 的发送地址，只在签发它的 World 内有效
type Addr[M any] struct {
	id ActorId
}

// AddrOf 为 actor 构造类型化地址
func AddrOf[M any](id ActorId) Addr[M] {
	return Addr[M]{id: id}
}

// ID 地址对应的 actor
func (a Addr[M]) ID() ActorId {
	return a.id
}

// Send 发送消息，失败时丢弃并记录诊断日志
func (a Addr[M]) Send(w *World, msg M) {
	Send(w, a, msg)
}

// TrySend 发送消息并返回失败原因
func (a Addr[M]) TrySend(w *World, msg M) error {
	return w.deliver(a.id, NewSlot(msg))
}

func (a Addr[M]) String() string {
	return a.id.String()
}
