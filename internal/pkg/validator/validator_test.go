package validator

import (
	"testing"
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

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	valid := []string{"2024-03", "1999-12"}
	invalid := []string{"2024-13", "2024-3-01", "03-2024", ""}
	for _, s := range valid {
		if _, ok := IsValidMonth(s); !ok {
			t.Errorf("IsValidMonth(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidMonth(s); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123Z"}
	invalid := []string{"2024-01-15 10:30:00", "2024-01-15", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "invalid"},
		{Field: "phone_number", Message: "required"},
	}
	got := errs.Error()
	want := "name: invalid; phone_number: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	var errs ValidationErrors
	errs.Add("name", "invalid")
	errs.Add("phone_number", "required")
	got := errs.ToMap()
	want := map[string]string{"name": "invalid", "phone_number": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

type structSample struct {
	Name     string       `json:"name" validate:"required"`
	Category string       `json:"category" validate:"oneof=travel food other"`
	Items    []sampleItem `json:"items" validate:"min=1,dive"`
}

type sampleItem struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

func TestStructErrors(t *testing.T) {
	ok := structSample{Name: "Acme", Category: "food", Items: []sampleItem{{Quantity: 1}}}
	if errs := StructErrors(ok); errs != nil {
		t.Fatalf("StructErrors(valid) = %v, want nil", errs)
	}

	bad := structSample{Category: "rent", Items: []sampleItem{{Quantity: 0}}}
	got := StructErrors(bad).ToMap()
	want := map[string]string{
		"name":              "name is required",
		"category":          "category must be one of: travel, food, other",
		"items[0].quantity": "quantity must be greater than 0",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("StructErrors()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

type contactSample struct {
	Email string   `json:"email" validate:"omitempty,email"`
	Phone string   `json:"phone" validate:"max=5"`
	Tags  []string `json:"tags" validate:"max=1"`
	Seats int      `json:"seats" validate:"max=10"`
}

func TestStructErrorsReadableMessages(t *testing.T) {
	got := StructErrors(contactSample{Email: "nope", Phone: "0123456789", Tags: []string{"a", "b"}, Seats: 11}).ToMap()
	want := map[string]string{
		"email": "email must be a valid email address",
		"phone": "phone must be at most 5 characters",
		"tags":  "tags must contain at most 1 item(s)",
		"seats": "seats must be at most 10",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("StructErrors()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
