package respond

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), "boom"},
		{"url dsn", errors.New("dial postgres://qna:s3cret@db:5432/qna failed"), "dial postgres://qna:****@db:5432/qna failed"},
		{"kv dsn", errors.New("connect host=db password=s3cret user=qna"), "connect host=db password=**** user=qna"},
		{"bearer", errors.New("bad header Bearer eyJhbGciOi.abc.def"), "bad header Bearer ****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeError(tt.err))
		})
	}
}
