package serializer

import (
	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

type msgPackCodec struct {
}

func (p *msgPackCodec) Name() string {
	return "msgpack"
}

func (p *msgPackCodec) Unmarshal(data []byte, msg interface{}) error {
	if err := msgpack.Unmarshal(data, msg); err != nil {
		return errors.Wrap(errs.ErrMsgPackUnPack, err.Error())
	}
	return nil
}

func (p *msgPackCodec) Marshal(msg interface{}) ([]byte, error) {
	data, err := msgpack.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(errs.ErrMsgPackPack, err.Error())
	}
	return data, nil
}
