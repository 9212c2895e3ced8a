package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireSingleInstance(t *testing.T) {
	guard, err := AcquireSingleInstance("LockInTest")
	require.NoError(t, err)

	_, err = AcquireSingleInstance("LockInTest")
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance("LockInTest")
	require.NoError(t, err)
	require.NoError(t, again.Release())
}
