package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_InitialPhase(t *testing.T) {
	cell := NewCell[int]()

	status := cell.Get()
	assert.Equal(t, Idle, status.Phase)
	assert.Zero(t, status.Value)
	assert.Empty(t, status.Message)
}

func TestCell_Transitions(t *testing.T) {
	cell := NewCell[string]()

	cell.SetLoading()
	assert.Equal(t, Loading, cell.Get().Phase)

	cell.SetSuccess("payload")
	status := cell.Get()
	assert.Equal(t, Success, status.Phase)
	assert.Equal(t, "payload", status.Value)

	cell.SetError("boom")
	status = cell.Get()
	assert.Equal(t, Failed, status.Phase)
	assert.Equal(t, "boom", status.Message)
	// Payload от предыдущего Success не протекает в Failed
	assert.Empty(t, status.Value)

	cell.Reset()
	assert.Equal(t, Idle, cell.Get().Phase)
}

func TestCell_Subscribe(t *testing.T) {
	cell := NewCell[int]()

	var seen []Phase
	unsubscribe := cell.Subscribe(func(s Status[int]) {
		seen = append(seen, s.Phase)
	})

	// Подписчик не получает текущее значение, только последующие
	require.Empty(t, seen)

	cell.SetLoading()
	cell.SetSuccess(42)

	assert.Equal(t, []Phase{Loading, Success}, seen)

	unsubscribe()
	cell.SetError("ignored")

	assert.Equal(t, []Phase{Loading, Success}, seen)
}

func TestCell_SubscribersNotifiedInOrder(t *testing.T) {
	cell := NewCell[int]()

	var order []string
	cell.Subscribe(func(s Status[int]) { order = append(order, "first") })
	cell.Subscribe(func(s Status[int]) { order = append(order, "second") })

	cell.SetLoading()

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", Phase(99).String())
}
