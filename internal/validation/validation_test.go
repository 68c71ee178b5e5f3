package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Contact  string `json:"contact_info" validate:"required"`
	Deadline string `json:"deadline" validate:"required,datetime=2006-01-02"`
	Status   string `json:"status" validate:"omitempty,oneof=new done"`
}

func TestStruct_OK(t *testing.T) {
	assert.NoError(t, Struct(sample{Contact: "08123", Deadline: "2026-10-19"}))
}

func TestStruct_FieldErrors(t *testing.T) {
	err := Struct(sample{Deadline: "19/10/2026", Status: "x"})
	require.Error(t, err)

	fe, ok := err.(FieldErrors)
	require.True(t, ok)
	assert.Equal(t, []string{"wajib diisi"}, fe["contact_info"])
	assert.Equal(t, []string{"format tanggal harus YYYY-MM-DD"}, fe["deadline"])
	assert.Equal(t, []string{"nilai tidak valid"}, fe["status"])
	assert.Contains(t, err.Error(), "contact_info: wajib diisi")
}

func TestStruct_NotBlank(t *testing.T) {
	type contact struct {
		Contact string `json:"contact_info" validate:"required,notblank"`
	}

	err := Struct(contact{Contact: " \t "})
	fe, ok := err.(FieldErrors)
	require.True(t, ok)
	assert.Equal(t, []string{"wajib diisi"}, fe["contact_info"])

	assert.NoError(t, Struct(contact{Contact: "@budi"}))
}
