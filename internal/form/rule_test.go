package form

import "testing"

func TestRequired(t *testing.T) {
	r := Required()
	if ve := r.Check(""); ve == nil || ve.Key != ErrKeyRequired {
		t.Errorf("Check(\"\") = %v, want required error", ve)
	}
	if ve := r.Check("x"); ve != nil {
		t.Errorf("Check(\"x\") = %v, want nil", ve)
	}
}

func TestMinLength_EmptyPasses(t *testing.T) {
	// Empty input is left to Required.
	if ve := MinLength(3).Check(""); ve != nil {
		t.Errorf("Check(\"\") = %v, want nil", ve)
	}
}

func TestMinLength_Boundary(t *testing.T) {
	r := MinLength(3)
	if ve := r.Check("ab"); ve == nil {
		t.Fatal("Check(\"ab\") should fail")
	} else if ve.RequiredLength != 3 || ve.ActualLength != 2 {
		t.Errorf("lengths = %d/%d, want 3/2", ve.RequiredLength, ve.ActualLength)
	}
	if ve := r.Check("abc"); ve != nil {
		t.Errorf("Check(\"abc\") = %v, want nil", ve)
	}
}

func TestValidationError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  ValidationError
		want string
	}{
		{"required", ValidationError{Key: ErrKeyRequired}, "Country is required"},
		{"minlength", ValidationError{Key: ErrKeyMinLength, RequiredLength: 5}, "Country must be at least 5 characters"},
		{"unknown", ValidationError{Key: "pattern"}, "Country is invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Message("Country"); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
