package fields_test

import (
	"testing"

	"github.com/importsteel/steel/errs"
	"github.com/importsteel/steel/fields"
	"github.com/stretchr/testify/require"
)

func TestEnumValidatesDomain(t *testing.T) {
	require := require.New(t)

	inner, err := fields.Integer(1, fields.Unsigned)
	require.NoError(err)
	c := fields.Enum(inner, int64(1), int64(2), int64(3))

	require.NoError(c.Validate(int64(2)))
	require.ErrorIs(c.Validate(int64(4)), errs.ErrEnumDomain)
}

func TestFlagsAcceptsBitwiseCombination(t *testing.T) {
	require := require.New(t)

	inner, err := fields.Integer(1, fields.Unsigned)
	require.NoError(err)
	const (
		flagRead  = int64(1 << 0)
		flagWrite = int64(1 << 1)
		flagExec  = int64(1 << 2)
	)
	c := fields.Flags(inner, flagRead, flagWrite, flagExec)

	require.NoError(c.Validate(flagRead | flagExec))
	require.ErrorIs(c.Validate(int64(1<<4)), errs.ErrFlagsDomain)
}
