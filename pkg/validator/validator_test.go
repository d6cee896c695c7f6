package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	PatientName string `validate:"required,notblank"`
	Age         int    `validate:"required,gte=1,lte=120"`
	Doctor      string `validate:"required,doctor"`
	Date        string `validate:"required,datetime=2006-01-02"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	valid := bookingForm{PatientName: "Alice", Age: 30, Doctor: "Dr. Rao (Neurologist)", Date: "2024-01-31"}
	assert.NoError(t, v.Validate(&valid))

	invalid := bookingForm{PatientName: "   ", Age: 130, Doctor: "Dr. Who", Date: "31/01/2024"}
	err := v.Validate(&invalid)
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "PatientName is required", errs["PatientName"])
	assert.Equal(t, "Age must be less than or equal to 120", errs["Age"])
	assert.Equal(t, "Doctor is not an available doctor", errs["Doctor"])
	assert.Equal(t, "Date must match the format 2006-01-02", errs["Date"])
}
