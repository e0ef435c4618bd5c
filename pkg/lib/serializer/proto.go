package serializer

import (
	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
)

type pbCodec struct {
}

func (p *pbCodec) Name() string {
	return "proto"
}

func (p *pbCodec) Unmarshal(data []byte, msg interface{}) error {
	if msg == nil {
		return errors.WithStack(errs.ErrPBUnPack)
	}
	v, ok := msg.(proto.Message)
	if !ok {
		return errors.WithStack(errs.ErrNotPBMsg)
	}
	if err := proto.Unmarshal(data, v); err != nil {
		return errors.Wrap(errs.ErrPBUnPack, err.Error())
	}
	return nil
}

func (p *pbCodec) Marshal(msg interface{}) ([]byte, error) {
	if msg == nil {
		return nil, errors.WithStack(errs.ErrPBPack)
	}
	v, ok := msg.(proto.Message)
	if !ok {
		return nil, errors.WithStack(errs.ErrNotPBMsg)
	}
	data, err := proto.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errs.ErrPBPack, err.Error())
	}
	return data, nil
}
