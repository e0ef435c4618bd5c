package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingMsg struct {
	Text string
}

type pongMsg struct {
	Text string
}

// takeAs 按 families 中下标对应的类型取值
func takeAs(i int, s *Slot) bool {
	switch i {
	case 0:
		_, ok := Take[int](s)
		return ok
	case 1:
		_, ok := Take[string](s)
		return ok
	case 2:
		_, ok := Take[pingMsg](s)
		return ok
	case 3:
		_, ok := Take[pongMsg](s)
		return ok
	case 4:
		_, ok := Take[*pingMsg](s)
		return ok
	case 5:
		_, ok := Take[[]byte](s)
		return ok
	case 6:
		_, ok := Take[any](s)
		return ok
	}
	return false
}

func newSlotOf(i int) *Slot {
	switch i {
	case 0:
		return NewSlot(1)
	case 1:
		return NewSlot("s")
	case 2:
		return NewSlot(pingMsg{Text: "ping"})
	case 3:
		return NewSlot(pongMsg{Text: "pong"})
	case 4:
		return NewSlot(&pingMsg{Text: "ptr"})
	case 5:
		return NewSlot([]byte("bytes"))
	case 6:
		return NewSlot[any](1)
	}
	return nil
}

func TestTakeRejectsOtherFamilies(t *testing.T) {
	captureLog(t)
	const kinds = 7
	for a := 0; a < kinds; a++ {
		for b := 0; b < kinds; b++ {
			slot := newSlotOf(a)
			ok := takeAs(b, slot)
			if a == b {
				assert.True(t, ok, "same family %d", a)
				assert.False(t, slot.Full())
				continue
			}
			assert.False(t, ok, "family %d taken as %d", a, b)
			assert.True(t, slot.Full(), "mismatch must not consume slot")
		}
	}
}

func TestTakeIsSingleUse(t *testing.T) {
	slot := NewSlot(pingMsg{Text: "hello"})
	assert.Equal(t, FamilyOf[pingMsg](), slot.Family())

	msg, ok := Take[pingMsg](slot)
	require.True(t, ok)
	assert.Equal(t, "hello", msg.Text)

	_, ok = Take[pingMsg](slot)
	assert.False(t, ok)

	_, ok = Take[pingMsg](nil)
	assert.False(t, ok)
}

func TestTakeMismatchIsReported(t *testing.T) {
	buf := captureLog(t)
	_, ok := Take[pongMsg](NewSlot(pingMsg{}))
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "message family mismatch")
}

func TestTakeNilInterfaceValue(t *testing.T) {
	var err error
	msg, ok := Take[error](NewSlot(err))
	assert.True(t, ok)
	assert.Nil(t, msg)
}
