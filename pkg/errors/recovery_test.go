package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "Classifier.Fit")
		panic("test panic message")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if panicErr.Operation != "Classifier.Fit" {
		t.Errorf("Expected operation 'Classifier.Fit', got '%s'", panicErr.Operation)
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}
	if want := "panic in Classifier.Fit: test panic message"; panicErr.Error() != want {
		t.Errorf("Expected error message '%s', got '%s'", want, panicErr.Error())
	}
	if !strings.Contains(panicErr.String(), "Stack trace:") {
		t.Error("String() should include stack trace information")
	}
}

func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "Classifier.Fit")
		return nil
	}

	if err := testFunc(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	testFunc := func() (err error) {
		defer Recover(&err, "Classifier.Predict")
		err = originalErr
		panic("panic after error")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "panic in Classifier.Predict") {
		t.Errorf("Error message should contain panic info: %s", err)
	}
	if !errors.Is(err, originalErr) {
		t.Error("Should be able to identify original error with errors.Is")
	}
}

func TestSafeExecute(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		if err := SafeExecute("op", func() error { return nil }); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	})

	t.Run("function error", func(t *testing.T) {
		originalErr := fmt.Errorf("function error")
		if err := SafeExecute("op", func() error { return originalErr }); err != originalErr {
			t.Fatalf("Expected original error, got: %v", err)
		}
	})

	t.Run("panic", func(t *testing.T) {
		err := SafeExecute("op", func() error { panic(42) })
		var panicErr *PanicError
		if !errors.As(err, &panicErr) {
			t.Fatalf("Expected PanicError, got %T", err)
		}
		if panicErr.PanicValue != 42 {
			t.Errorf("Expected panic value 42, got %v", panicErr.PanicValue)
		}
	})
}

func BenchmarkSafeExecute_NoPanic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = SafeExecute("BenchmarkOp", func() error { return nil })
	}
}
