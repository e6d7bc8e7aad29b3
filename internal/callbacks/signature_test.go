package callbacks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSign_KnownVector(t *testing.T) {
	t.Parallel()

	// RFC 4231 test case 2
	got := Sign("Jefe", []byte("what do ya want for nothing?"))
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", got)
}

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	body := []byte(`{"payload":{"ResultCode":0}}`)
	valid := Sign("s3cret", body)

	tests := []struct {
		name      string
		signature string
		body      []byte
		want      bool
	}{
		{name: "valid", signature: valid, body: body, want: true},
		{name: "uppercase hex", signature: strings.ToUpper(valid), body: body, want: true},
		{name: "different body", signature: valid, body: []byte(`{"payload":{"ResultCode":1}}`), want: false},
		{name: "reformatted body", signature: valid, body: []byte(`{"payload": {"ResultCode": 0}}`), want: false},
		{name: "wrong secret", signature: Sign("other", body), body: body, want: false},
		{name: "not hex", signature: "zz", body: body, want: false},
		{name: "truncated", signature: valid[:10], body: body, want: false},
		{name: "empty", signature: "", body: body, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifySignature("s3cret", tt.signature, tt.body))
		})
	}
}
