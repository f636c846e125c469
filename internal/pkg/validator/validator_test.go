package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
		"123e4567-e89b-12d3-a456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidCountryCode(t *testing.T) {
	for _, code := range []string{"KZ", "UZ", "IND"} {
		assert.True(t, IsValidCountryCode(code), code)
	}
	for _, code := range []string{"", "k", "kz", "KAZA", "K1"} {
		assert.False(t, IsValidCountryCode(code), code)
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-02-30", "01-01-2023", "", "2023/01/01"}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidDateRange(t *testing.T) {
	_, _, ok := IsValidDateRange("2024-01-01", "2024-01-31")
	assert.True(t, ok)

	_, _, ok = IsValidDateRange("2024-01-01", "2024-01-01")
	assert.True(t, ok)

	_, _, ok = IsValidDateRange("2024-02-01", "2024-01-31")
	assert.False(t, ok)

	_, _, ok = IsValidDateRange("garbage", "2024-01-31")
	assert.False(t, ok)
}

type sampleRequest struct {
	Name    string  `json:"name" validate:"required"`
	Code    string  `json:"code" validate:"country_code"`
	Date    string  `json:"date" validate:"date"`
	Amount  float64 `json:"amount" validate:"gte=0"`
	Ignored string  `json:"-"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := Struct(sampleRequest{Name: "x", Code: "KZ", Date: "2024-01-01", Amount: 1})
		assert.NoError(t, err)
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := Struct(sampleRequest{Code: "kz", Date: "01.01.2024", Amount: -1})
		require.Error(t, err)

		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		details := errs.ToMap()
		assert.Equal(t, "is required", details["name"])
		assert.Contains(t, details, "code")
		assert.Contains(t, details, "date")
		assert.Equal(t, "must be greater than or equal to 0", details["amount"])
	})
}

func TestValidationErrorsOrNil(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.OrNil())

	errs = append(errs, ValidationError{Field: "a", Message: "b"})
	assert.EqualError(t, errs.OrNil(), "a: b")
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice(\"a\", slice) = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice(\"d\", slice) = true, want false")
	}
}

func TestPagination(t *testing.T) {
	page, limit := 0, 0
	errs := Pagination(&page, &limit)
	assert.Empty(t, errs)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = -1, 500
	errs = Pagination(&page, &limit)
	assert.Len(t, errs, 2)
}

func TestOptionalDate(t *testing.T) {
	got, verr := OptionalDate("start", nil)
	assert.Nil(t, got)
	assert.Nil(t, verr)

	s := "2024-03-01"
	got, verr = OptionalDate("start", &s)
	require.NotNil(t, got)
	assert.Nil(t, verr)
	assert.Equal(t, 3, int(got.Month()))

	bad := "03/01/2024"
	_, verr = OptionalDate("start", &bad)
	require.NotNil(t, verr)
	assert.Equal(t, "start", verr.Field)
}
