package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorEnvelopeStringDetail(t *testing.T) {
	err := newAPIError(402, []byte(`{"detail":"Недостаточно токенов"}`))
	assert.Equal(t, "Недостаточно токенов", err.Message)
	assert.Equal(t, 402, err.StatusCode)
	assert.Equal(t, "Недостаточно токенов", err.Error())
}

func TestErrorEnvelopeValidationList(t *testing.T) {
	body := `{"detail":[{"loc":["body","purchase_id"],"msg":"field required","type":"value_error.missing"}]}`
	err := newAPIError(422, []byte(body))
	assert.Equal(t, "field required", err.Message)
}

func TestErrorEnvelopeFallbacks(t *testing.T) {
	assert.Equal(t, GenericErrorMessage, newAPIError(500, []byte(`not json`)).Message)
	assert.Equal(t, GenericErrorMessage, newAPIError(500, []byte(`{}`)).Message)
	assert.Equal(t, GenericErrorMessage, newAPIError(500, []byte(`{"detail":[]}`)).Message)
	assert.Equal(t, GenericErrorMessage, newAPIError(500, nil).Message)
}
