package signing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDaySignerSignAndVerify(t *testing.T) {
	signer := NewDaySigner("secret")
	now := time.Date(2024, 5, 14, 8, 30, 0, 0, time.UTC)

	token, err := signer.Sign("child-1", now)
	require.NoError(t, err)
	require.Contains(t, token, "20240514.")

	require.NoError(t, signer.Verify("child-1", token, now.Add(10*time.Hour)))
}

func TestDaySignerRejectsOtherDayAndSubject(t *testing.T) {
	signer := NewDaySigner("secret")
	issued := time.Date(2024, 5, 14, 23, 59, 0, 0, time.UTC)
	token, err := signer.Sign("child-1", issued)
	require.NoError(t, err)

	require.ErrorIs(t, signer.Verify("child-1", token, issued.Add(2*time.Minute)), ErrTokenExpired)
	require.ErrorIs(t, signer.Verify("child-2", token, issued), ErrInvalidToken)
	require.ErrorIs(t, NewDaySigner("other").Verify("child-1", token, issued), ErrInvalidToken)
	require.ErrorIs(t, signer.Verify("child-1", "garbage", issued), ErrInvalidToken)
}

func TestDaySignerRequiresSecret(t *testing.T) {
	_, err := NewDaySigner("").Sign("child-1", time.Now())
	require.Error(t, err)
}
