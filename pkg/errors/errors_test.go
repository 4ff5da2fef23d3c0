package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidGraph, "missing nodes array"),
			want: "INVALID_GRAPH: missing nodes array",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeStore, stderrors.New("connection refused"), "save snapshot abc"),
			want: "STORE_ERROR: save snapshot abc: connection refused",
		},
		{
			name: "FormattedMessage",
			err:  New(ErrCodeGraphNotFound, "no snapshot with id %q", "xyz"),
			want: `GRAPH_NOT_FOUND: no snapshot with id "xyz"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad")
	if !Is(err, ErrCodeInvalidInput) {
		t.Error("Is() must match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() must not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is() must not match plain errors")
	}
}

func TestIsUnwrapsChain(t *testing.T) {
	inner := New(ErrCodeCache, "redis down")
	outer := Wrap(ErrCodeInternal, inner, "describe failed")

	// As finds the outermost *Error first.
	if GetCode(outer) != ErrCodeInternal {
		t.Errorf("GetCode() = %q, want INTERNAL_ERROR", GetCode(outer))
	}
	if !stderrors.Is(outer, error(inner)) {
		t.Error("wrapped cause must remain reachable via errors.Is")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeNotFound, "nothing here")); got != "nothing here" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestGetCodePlainError(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}
