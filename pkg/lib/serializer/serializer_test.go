package serializer

import (
	"testing"

	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type entry struct {
	Name string `json:"name" msgpack:"name"`
	Size int    `json:"size" msgpack:"size"`
}

func TestByName(t *testing.T) {
	for name, want := range map[string]ISerializer{
		"":         Json,
		"JSON":     Json,
		"msgpack":  MsgPack,
		"pb":       PB,
		"protobuf": PB,
	} {
		got, err := ByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ByName("xml")
	assert.ErrorContains(t, err, "unknown codec: xml")
}

func TestStructCodecs(t *testing.T) {
	for _, ser := range []ISerializer{Json, MsgPack} {
		data, err := ser.Marshal(entry{Name: "table", Size: 3})
		require.NoError(t, err, ser.Name())

		var out entry
		require.NoError(t, ser.Unmarshal(data, &out), ser.Name())
		assert.Equal(t, entry{Name: "table", Size: 3}, out, ser.Name())
	}
}

func TestProtoCodec(t *testing.T) {
	data, err := PB.Marshal(wrapperspb.String("hello"))
	require.NoError(t, err)

	out := &wrapperspb.StringValue{}
	require.NoError(t, PB.Unmarshal(data, out))
	assert.Equal(t, "hello", out.GetValue())

	_, err = PB.Marshal(entry{})
	assert.ErrorIs(t, err, errs.ErrNotPBMsg)
	assert.ErrorIs(t, PB.Unmarshal(data, &entry{}), errs.ErrNotPBMsg)
}

func TestJsonRejectsNil(t *testing.T) {
	_, err := Json.Marshal(nil)
	assert.ErrorIs(t, err, errs.ErrJsonPack)
	assert.ErrorIs(t, Json.Unmarshal(nil, &entry{}), errs.ErrJsonUnPack)
	assert.ErrorIs(t, Json.Unmarshal([]byte("{"), &entry{}), errs.ErrJsonUnPack)
}
