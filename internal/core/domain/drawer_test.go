package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransferTo(t *testing.T) {
	assert.True(t, Physical.CanTransferTo(Physical))
	assert.True(t, Physical.CanTransferTo(Safe))
	assert.False(t, Physical.CanTransferTo(MasterSafe))

	assert.True(t, Safe.CanTransferTo(Physical))
	assert.True(t, Safe.CanTransferTo(MasterSafe))
	assert.False(t, Safe.CanTransferTo(Safe))

	assert.True(t, MasterSafe.CanTransferTo(Safe))
	assert.False(t, MasterSafe.CanTransferTo(Physical))
	assert.False(t, MasterSafe.CanTransferTo(MasterSafe))
}

func TestEffectiveShared(t *testing.T) {
	shared := true
	notShared := false

	safe := Drawer{Type: Safe}
	s, decided := safe.EffectiveShared()
	assert.True(t, s)
	assert.True(t, decided)

	undecided := Drawer{Type: Physical}
	_, decided = undecided.EffectiveShared()
	assert.False(t, decided)

	till := Drawer{Type: Physical, IsShared: &shared}
	s, decided = till.EffectiveShared()
	assert.True(t, s)
	assert.True(t, decided)

	solo := Drawer{Type: Physical, IsShared: &notShared}
	s, decided = solo.EffectiveShared()
	assert.False(t, s)
	assert.True(t, decided)
}
