package serializer

import (
	"encoding/json"

	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"

	"github.com/pkg/errors"
)

type jsonCodec struct {
}

func (p *jsonCodec) Name() string {
	return "json"
}

func (p *jsonCodec) Unmarshal(data []byte, msg interface{}) error {
	if data == nil || msg == nil {
		return errors.WithStack(errs.ErrJsonUnPack)
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return errors.Wrap(errs.ErrJsonUnPack, err.Error())
	}
	return nil
}

func (p *jsonCodec) Marshal(msg interface{}) ([]byte, error) {
	if msg == nil {
		return nil, errors.WithStack(errs.ErrJsonPack)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(errs.ErrJsonPack, err.Error())
	}
	return data, nil
}
