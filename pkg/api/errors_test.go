package api

import (
	"errors"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		apiError *APIError
		expected string
	}{
		{
			name: "error with wrapped error",
			apiError: &APIError{
				Resource: "users",
				Message:  "request failed",
				Err:      errors.New("connection refused"),
			},
			expected: `api error on "users": request failed: connection refused`,
		},
		{
			name: "error with status code",
			apiError: &APIError{
				Resource:   "posts",
				StatusCode: 503,
				Message:    "503 Service Unavailable",
			},
			expected: `api error on "posts" (status 503): 503 Service Unavailable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.apiError.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	apiError := &APIError{
		Resource: "users",
		Message:  "request failed",
		Err:      wrappedErr,
	}

	if unwrapped := apiError.Unwrap(); unwrapped != wrappedErr {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, wrappedErr)
	}

	if !errors.Is(apiError, wrappedErr) {
		t.Error("errors.Is should work with wrapped error")
	}
}

func TestAPIError_UnwrapNil(t *testing.T) {
	apiError := &APIError{
		Resource:   "users",
		StatusCode: 404,
		Message:    "not found",
	}

	if unwrapped := apiError.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}
