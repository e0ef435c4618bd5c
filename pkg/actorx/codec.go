package actorx

import (
	"reflect"

	"github.com/open-mv-sandbox/ptero-sub000/pkg/actor"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/glog"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/lib/serializer"

	"go.uber.org/zap"
)

// Encode 创建把 M 编码为字节并转发给 target 的中继 actor，编码失败的消息被丢弃
func Encode[M any](ctx *actor.Context, target actor.Addr[[]byte], ser serializer.ISerializer) (actor.Addr[M], error) {
	return start(ctx, "encode", func(ctx *actor.Context, msg M) bool {
		data, err := ser.Marshal(msg)
		if err != nil {
			glog.Warn("failed to encode message",
				zap.Stringer("actor", ctx.Current()),
				zap.String("codec", ser.Name()),
				zap.Error(err))
			return true
		}
		target.Send(ctx.World, data)
		return true
	})
}

// Decode 创建把字节解码为 M 并转发给 target 的中继 actor，解码失败的消息被丢弃
func Decode[M any](ctx *actor.Context, target actor.Addr[M], ser serializer.ISerializer) (actor.Addr[[]byte], error) {
	return start(ctx, "decode", func(ctx *actor.Context, data []byte) bool {
		msg, err := decode[M](ser, data)
		if err != nil {
			glog.Warn("failed to decode message",
				zap.Stringer("actor", ctx.Current()),
				zap.String("codec", ser.Name()),
				zap.Error(err))
			return true
		}
		target.Send(ctx.World, msg)
		return true
	})
}

// decode M 为指针类型时分配新对象，否则解码到值上
func decode[M any](ser serializer.ISerializer, data []byte) (M, error) {
	var msg M
	t := reflect.TypeOf((*M)(nil)).Elem()
	if t.Kind() == reflect.Pointer {
		msg = reflect.New(t.Elem()).Interface().(M)
		err := ser.Unmarshal(data, msg)
		return msg, err
	}
	err := ser.Unmarshal(data, &msg)
	return msg, err
}
