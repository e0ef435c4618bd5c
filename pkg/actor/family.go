package actor

import (
	"reflect"

	"github.com/open-mv-sandbox/ptero-sub000/pkg/glog"

	"go.uber.org/zap"
)

// Family 消息类型标签，System 只接收与自身标签一致的消息
type Family struct {
	t reflect.Type
}

// FamilyOf 返回消息类型 M 的标签
func FamilyOf[M any]() Family {
	return Family{t: reflect.TypeOf((*M)(nil)).Elem()}
}

func (f Family) String() string {
	if f.t == nil {
		return "<nil>"
	}
	return f.t.String()
}

// Slot 单次取用的消息槽，用于跨越类型擦除的分发边界
type Slot struct {
	family Family
	value  any
	full   bool
}

// NewSlot 把消息放入槽中
func NewSlot[M any](msg M) *Slot {
	return &Slot{
		family: FamilyOf[M](),
		value:  msg,
		full:   true,
	}
}

// Family 槽中消息的类型标签
func (s *Slot) Family() Family {
	return s.family
}

// Full 槽中是否还有消息
func (s *Slot) Full() bool {
	return s != nil && s.full
}

// Take 以类型 M 取出消息
// 标签不一致时不做任何转换，返回 false 并记录诊断日志，槽保持不变；
// 取出后槽被清空，再次取用返回 false
func Take[M any](s *Slot) (M, bool) {
	var zero M
	if s == nil || !s.full {
		return zero, false
	}

	expected := FamilyOf[M]()
	if s.family != expected {
		glog.Error("message family mismatch",
			zap.Stringer("expected", expected),
			zap.Stringer("actual", s.family))
		return zero, false
	}

	msg, ok := s.value.(M)
	if !ok && s.value != nil {
		glog.Error("message value does not match family", zap.Stringer("family", s.family))
		return zero, false
	}

	s.value = nil
	s.full = false
	return msg, true
}
