package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServerHashKnownVectors(t *testing.T) {
	// Wiki.vg's published test vectors for the digest algorithm.
	require.Equal(t, "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48", ServerHash(nil, []byte("Notch")))
	require.Equal(t, "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1", ServerHash(nil, []byte("jeb_")))
	require.Equal(t, "88e16a1019277b15d58faf0541e11910eb756f6", ServerHash(nil, []byte("simon")))
}

func TestCFB8RoundTrip(t *testing.T) {
	secret := make([]byte, 16)
	for i := range secret {
		secret[i] = byte(i * 7)
	}

	enc, _, err := NewCFB8Ciphers(secret)
	require.NoError(t, err)
	_, dec, err := NewCFB8Ciphers(secret)
	require.NoError(t, err)

	plaintext := []byte("hello minecraft protocol frame, a bit longer than one AES block")
	ciphertext := make([]byte, len(plaintext))
	enc.XORKeyStream(ciphertext, plaintext)

	recovered := make([]byte, len(ciphertext))
	dec.XORKeyStream(recovered, ciphertext)
	require.Equal(t, plaintext, recovered)
}

func TestKeyPairGenerateAndDecrypt(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	require.NotEmpty(t, kp.PublicDER)

	msg := []byte("0123456789abcdef")
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, &kp.Private.PublicKey, msg)
	require.NoError(t, err)

	decrypted, err := kp.Decrypt(ciphertext)
	require.NoError(t, err)
	require.Equal(t, msg, decrypted)
}

func TestHasJoinedSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "steve", r.URL.Query().Get("username"))
		_ = json.NewEncoder(w).Encode(hasJoinedResponse{
			ID:   "069a79f444e94726a5befca90e38aaf5",
			Name: "Steve",
			Properties: []SkinProperty{
				{Name: "textures", Value: "abc", Signature: "xyz"},
			},
		})
	}))
	defer srv.Close()

	original := sessionServerURL
	sessionServerURL = srv.URL
	t.Cleanup(func() { sessionServerURL = original })

	result, err := HasJoined(nil, "steve", "somehash")
	require.NoError(t, err)
	require.Equal(t, "Steve", result.Username)
	tex, ok := result.Texture()
	require.True(t, ok)
	require.Equal(t, "abc", tex.Value)
}

func TestHasJoinedAuthFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	original := sessionServerURL
	sessionServerURL = srv.URL
	t.Cleanup(func() { sessionServerURL = original })

	_, err := HasJoined(nil, "steve", "somehash")
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}
