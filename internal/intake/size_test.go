package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1500, "1.46 KB"},
		{1024 * 1024, "1 MB"},
		{1024*1024 - 1, "1024 KB"},
		{16 * 1024 * 1024, "16 MB"},
		{1024 * 1024 * 1024, "1 GB"},
		{5 * 1024 * 1024 * 1024 * 1024, "5120 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFileSize(tt.in), "FormatFileSize(%d)", tt.in)
	}
}
