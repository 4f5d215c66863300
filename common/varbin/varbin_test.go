package varbin_test

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/skymkmk/domain-list-to-srs/common/varbin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	assert.Equal(t, []byte{0x00}, varbin.Append(nil, 0))
	assert.Equal(t, []byte{0x7f}, varbin.Append(nil, 127))
	assert.Equal(t, []byte{0x80, 0x01}, varbin.Append(nil, 128))
	assert.Equal(t, []byte{0xac, 0x02}, varbin.Append(nil, 300))
	assert.Equal(t, []byte{0x80, 0x80, 0x01}, varbin.Append(nil, 16384))
	assert.Equal(t, []byte{0xff, 0x00}, varbin.Append([]byte{0xff}, 0))
}

func TestRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 255, 16383, 16384, 1<<32 - 1, 1 << 32, math.MaxUint64}
	buf := &bytes.Buffer{}
	for _, v := range values {
		require.NoError(t, varbin.Write(buf, v))
	}
	for _, v := range values {
		assert.Equal(t, varbin.Len(v), len(varbin.Append(nil, v)))
		got, err := varbin.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := varbin.Read(buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadTruncated(t *testing.T) {
	_, err := varbin.Read(bytes.NewReader([]byte{0x80, 0x80}))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadOverflow(t *testing.T) {
	b := bytes.Repeat([]byte{0xff}, varbin.MaxLen)
	b = append(b, 0x01)
	_, err := varbin.Read(bytes.NewReader(b))
	assert.ErrorIs(t, err, varbin.ErrOverflow)
}
