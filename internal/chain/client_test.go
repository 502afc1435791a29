package chain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRPCErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &RPCError{Op: "get_balance", Err: cause}

	assert.Equal(t, "rpc get_balance: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}
