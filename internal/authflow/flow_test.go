package authflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedFlow(t *testing.T) (*Store, *Flow) {
	t.Helper()
	store := NewStore()
	f := store.Create()
	require.NoError(t, f.EmailStarted("sess-123", "user@example.com"))
	return store, f
}

func TestHappyPathReachesComplete(t *testing.T) {
	_, f := startedFlow(t)

	require.NoError(t, f.EmailVerified())
	assert.Equal(t, StepPhone, f.Step)

	require.NoError(t, f.PhoneStarted("+79991234567"))
	assert.Equal(t, StepPhoneCode, f.Step)

	require.NoError(t, f.PhoneVerified())
	assert.Equal(t, StepComplete, f.Step)
}

func TestNoStepWithoutSession(t *testing.T) {
	store := NewStore()
	f := store.Create()

	assert.ErrorIs(t, f.EmailStarted("", "user@example.com"), ErrNoSession)
	assert.Equal(t, StepEmail, f.Step)

	// forcing the step forward without a session still fails
	f.Step = StepEmailCode
	assert.ErrorIs(t, f.EmailVerified(), ErrNoSession)
}

func TestSkippingStepsRejected(t *testing.T) {
	_, f := startedFlow(t)

	assert.ErrorIs(t, f.PhoneStarted("+79991234567"), ErrInvalidTransition)
	assert.ErrorIs(t, f.PhoneVerified(), ErrInvalidTransition)
}

func TestBackFromCompleteReturnsToPhoneCode(t *testing.T) {
	_, f := startedFlow(t)
	require.NoError(t, f.EmailVerified())
	require.NoError(t, f.PhoneStarted("+79991234567"))
	require.NoError(t, f.PhoneVerified())

	require.NoError(t, f.Back())
	assert.Equal(t, StepPhoneCode, f.Step)
	// phone itself stays
	assert.Equal(t, "+79991234567", f.Phone)
}

func TestBackClearsOnlyThatCode(t *testing.T) {
	_, f := startedFlow(t)
	require.NoError(t, f.EmailVerified())
	require.NoError(t, f.PhoneStarted("+79991234567"))
	f.EmailCodeEntry = "111111"
	f.PhoneCodeEntry = "222222"

	require.NoError(t, f.Back())
	assert.Equal(t, StepPhone, f.Step)
	assert.Empty(t, f.PhoneCodeEntry)
	assert.Equal(t, "111111", f.EmailCodeEntry)

	require.NoError(t, f.Back()) // phone -> email code
	require.NoError(t, f.Back()) // email code -> email, clears email code
	assert.Equal(t, StepEmail, f.Step)
	assert.Empty(t, f.EmailCodeEntry)

	assert.ErrorIs(t, f.Back(), ErrInvalidTransition)
}

func TestStoreRoundTrip(t *testing.T) {
	store, f := startedFlow(t)
	store.Save(f)

	got, err := store.Get(f.ID)
	require.NoError(t, err)
	assert.Equal(t, StepEmailCode, got.Step)

	store.Delete(f.ID)
	_, err = store.Get(f.ID)
	assert.ErrorIs(t, err, ErrFlowNotFound)
}
