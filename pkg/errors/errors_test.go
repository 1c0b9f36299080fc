package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredErrorMessage(t *testing.T) {
	err := New(ErrCodeValidation, "carrier identifier is empty")
	assert.Equal(t, "[VALIDATION] carrier identifier is empty", err.Error())

	wrapped := Wrap(ErrCodeDelivery, "upload failed", errors.New("connection reset"))
	assert.Equal(t, "[DELIVERY] upload failed: connection reset", wrapped.Error())
}

func TestWrapWithContext(t *testing.T) {
	err := WrapWithContext(ErrCodeDelivery, "failed to upload report", errors.New("deadline exceeded"),
		map[string]any{"object": "prereq-host-1.txt", "bucket": "carrier-prereq-mint-mobile"})

	// Keys render sorted, so the message is stable across runs.
	assert.Equal(t,
		"[DELIVERY] failed to upload report (bucket=carrier-prereq-mint-mobile, object=prereq-host-1.txt): deadline exceeded",
		err.Error())
	assert.Equal(t, ErrCodeDelivery, CodeOf(err))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrCodeDelivery, "upload failed", cause)
	assert.True(t, errors.Is(err, cause))
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{
			name: "direct structured error",
			err:  New(ErrCodeFatalProbe, "ip not found"),
			want: ErrCodeFatalProbe,
		},
		{
			name: "wrapped structured error",
			err:  fmt.Errorf("run failed: %w", New(ErrCodeValidation, "bad input")),
			want: ErrCodeValidation,
		},
		{
			name: "plain error",
			err:  errors.New("plain"),
			want: ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestHasCode(t *testing.T) {
	err := Newf(ErrCodeDelivery, "status %d", 403)
	assert.True(t, HasCode(err, ErrCodeDelivery))
	assert.False(t, HasCode(err, ErrCodeValidation))
	assert.False(t, HasCode(nil, ErrCodeDelivery))
}
