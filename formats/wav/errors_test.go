// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"testing"
)

var allErrors = map[string]error{
	"ErrNotWavFile":           ErrNotWavFile,
	"ErrUnsupportedWavLayout": ErrUnsupportedWavLayout,
	"ErrUnsupportedBitDepth":  ErrUnsupportedBitDepth,
}

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrNotWavFile, "not a WAV file"},
		{ErrUnsupportedWavLayout, "unsupported WAV layout"},
		{ErrUnsupportedBitDepth, "only 16-bit and 24-bit PCM supported"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	t.Parallel()

	for name, err := range allErrors {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			wrapped := errors.Join(err, errors.New("additional context"))
			if !errors.Is(wrapped, err) {
				t.Errorf("errors.Is(wrapped, %s) = false, want true", name)
			}

			if errors.Is(errors.New("some other error"), err) {
				t.Errorf("errors.Is(otherErr, %s) = true, want false", name)
			}
		})
	}
}

func TestErrors_Uniqueness(t *testing.T) {
	t.Parallel()

	messages := make(map[string]string)
	for name, err := range allErrors {
		msg := err.Error()
		if existing, found := messages[msg]; found {
			t.Errorf("%s has same message as %s: %q", name, existing, msg)
		}
		messages[msg] = name
	}
}
