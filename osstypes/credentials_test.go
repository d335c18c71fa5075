package osstypes

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	osserrors "github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/errors"
)

// TestSecret_Redaction makes sure the raw value cannot reach any printed
// representation of the secret.
func TestSecret_Redaction(t *testing.T) {
	secret := NewSecret("super-secret-value")

	assert.Equal(t, "******", secret.String())
	assert.Equal(t, "******", fmt.Sprintf("%s", secret))
	assert.Equal(t, "******", fmt.Sprintf("%v", secret))
	assert.Equal(t, "******", fmt.Sprintf("%#v", secret))
	assert.NotContains(t, fmt.Sprintf("%+v", secret), "super-secret-value")
}

// TestSecret_LogRedaction routes a secret through slog and checks the
// output is redacted.
func TestSecret_LogRedaction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("configured client", "secret", NewSecret("super-secret-value"))

	out := buf.String()
	assert.Contains(t, out, "******")
	assert.NotContains(t, out, "super-secret-value")
}

// TestSecret_Sign verifies the HMAC-SHA1 signature against a known
// value.
func TestSecret_Sign(t *testing.T) {
	secret := NewSecret("foo2")
	assert.Equal(t, "gTzwiN1fRQV90YcecTvo1pH+kI8=", secret.Sign([]byte("bar")))
}

// TestSecret_SignDeterministic signs the same input twice and expects
// identical output.
func TestSecret_SignDeterministic(t *testing.T) {
	secret := NewSecret("foo2")
	first := secret.Sign([]byte("bar"))
	second := secret.Sign([]byte("bar"))
	assert.Equal(t, first, second)
}

func TestNewCredentials(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		secret  string
		wantErr bool
	}{
		{"valid", "key_id", "key_secret", false},
		{"empty_id", "", "key_secret", true},
		{"empty_secret", "key_id", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := NewCredentials(tt.id, tt.secret)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, osserrors.ErrInvalidAccessKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, creds.AccessKeyID)
			assert.False(t, creds.AccessKeySecret.IsZero())
			assert.Empty(t, creds.SecurityToken)
		})
	}
}

func TestNewCredentialsWithToken(t *testing.T) {
	creds, err := NewCredentialsWithToken("key_id", "key_secret", "tok123")
	require.NoError(t, err)
	assert.Equal(t, "tok123", creds.SecurityToken)

	_, err = NewCredentialsWithToken("key_id", "key_secret", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, osserrors.ErrInvalidAccessKey)
}
