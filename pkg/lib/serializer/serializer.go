/**
 * @Description: 消息编解码器，供编解码中继 actor 使用
 */

package serializer

import (
	"strings"

	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"
)

var (
	Json    ISerializer = new(jsonCodec)
	MsgPack ISerializer = new(msgPackCodec)
	PB      ISerializer = new(pbCodec)
)

// ISerializer 编解码接口
type ISerializer interface {
	Name() string
	Unmarshal(data []byte, msg interface{}) error
	Marshal(msg interface{}) ([]byte, error)
}

// ByName 按配置名称查找编解码器
func ByName(name string) (ISerializer, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return Json, nil
	case "msgpack":
		return MsgPack, nil
	case "proto", "pb", "protobuf":
		return PB, nil
	}
	return nil, errs.ErrUnknownCodec(name)
}
