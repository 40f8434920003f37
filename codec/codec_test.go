package codec

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	toyrsa "github.com/BackendStack21/toyrsa-go"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, int64(0), Encode("").Int64())
	assert.Equal(t, int64(0x61), Encode("a").Int64())
	assert.Equal(t, int64(0x6869), Encode("hi").Int64())

	want, _ := new(big.Int).SetString("68656c6c6f20776f726c64", 16)
	assert.Zero(t, want.Cmp(Encode("hello world")))
}

func TestDecode_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "hello world", "héllo wörld", "日本語", "emoji 🔐", "tab\tnewline\n"} {
		got, err := Decode(Encode(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestDecode_LeadingZeroLoss(t *testing.T) {
	got, err := Decode(Encode("\x00\x00a"))
	require.NoError(t, err)
	assert.Equal(t, "a", got)
	assert.Equal(t, 1, ByteLen("\x00\x00a"))
}

func TestDecode_InvalidUTF8(t *testing.T) {
	_, err := Decode(big.NewInt(0xFF))
	assert.ErrorIs(t, err, toyrsa.ErrInvalidEncoding)

	_, err = Decode(new(big.Int).SetBytes([]byte{0xC3, 0x28}))
	assert.ErrorIs(t, err, toyrsa.ErrInvalidEncoding)
}

func TestDecode_Negative(t *testing.T) {
	_, err := Decode(big.NewInt(-1))
	assert.ErrorIs(t, err, toyrsa.ErrInvalidEncoding)
}

func TestByteLen(t *testing.T) {
	assert.Equal(t, 0, ByteLen(""))
	assert.Equal(t, 11, ByteLen("hello world"))
	assert.Equal(t, 2, ByteLen("é"))
}
