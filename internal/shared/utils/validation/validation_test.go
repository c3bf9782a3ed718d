package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	From        string `validate:"required"`
	JourneyDate string `validate:"required,datetime=2006-01-02"`
	Passengers  int    `validate:"required,min=1,max=6"`
	Class       string `validate:"required,oneof=1A 2A 3A SL 2S CC EC"`
	Email       string `validate:"required,email"`
}

func TestFieldErrorsCollectsEveryViolation(t *testing.T) {
	v := validator.New()

	err := v.Struct(sampleRequest{
		JourneyDate: "2025-13-40",
		Passengers:  7,
		Class:       "4A",
		Email:       "not-an-email",
	})
	require.Error(t, err)

	fieldErrs := FieldErrors(err)
	require.Len(t, fieldErrs, 5)

	byField := make(map[string]FieldError, len(fieldErrs))
	for _, fe := range fieldErrs {
		byField[fe.Field] = fe
	}

	assert.Equal(t, "required", byField["From"].Rule)
	assert.Equal(t, "datetime", byField["JourneyDate"].Rule)
	assert.Equal(t, "max", byField["Passengers"].Rule)
	assert.Equal(t, "oneof", byField["Class"].Rule)
	assert.Equal(t, "email", byField["Email"].Rule)

	assert.Contains(t, byField["JourneyDate"].Message, "2006-01-02")
	assert.Contains(t, byField["Class"].Message, "1A 2A 3A SL 2S CC EC")
}

func TestFieldErrorsRejectsImpossibleCalendarDate(t *testing.T) {
	v := validator.New()

	// A well-formed shape with an impossible month and day must still fail.
	err := v.Struct(sampleRequest{
		From:        "New Delhi",
		JourneyDate: "2025-13-40",
		Passengers:  2,
		Class:       "2A",
		Email:       "asha@example.com",
	})
	require.Error(t, err)

	fieldErrs := FieldErrors(err)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "JourneyDate", fieldErrs[0].Field)
	assert.Equal(t, "datetime", fieldErrs[0].Rule)
}

func TestFieldErrorsMalformedBody(t *testing.T) {
	fieldErrs := FieldErrors(errors.New("unexpected EOF"))
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "body", fieldErrs[0].Field)
	assert.Equal(t, "json", fieldErrs[0].Rule)
}

func TestNewFieldError(t *testing.T) {
	fe := NewFieldError("passengerDetails", "length", "passengerDetails must contain exactly 2 entries, got 1")
	assert.Equal(t, "passengerDetails", fe.Field)
	assert.Equal(t, "length", fe.Rule)
}
