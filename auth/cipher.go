package auth

import (
	"crypto/aes"
	"crypto/cipher"
)

// NewCFB8Ciphers builds the encrypt/decrypt stream pair Minecraft's
// post-login transport uses: AES-128 in CFB mode with an 8-bit (single
// byte) feedback shift register, keyed and IV'd by the same 16-byte shared
// secret. The standard library has no built-in
// CFB-8 (only CFB-128 via cipher.NewCFBEncrypter/Decrypter), so the shift
// register is implemented directly against the block cipher here.
func NewCFB8Ciphers(sharedSecret []byte) (encrypt, decrypt cipher.Stream, err error) {
	block, err := aes.NewCipher(sharedSecret)
	if err != nil {
		return nil, nil, err
	}
	return &cfb8Stream{block: block, iv: append([]byte(nil), sharedSecret...), encrypting: true},
		&cfb8Stream{block: block, iv: append([]byte(nil), sharedSecret...), encrypting: false},
		nil
}

// cfb8Stream implements cipher.Stream for 8-bit CFB: each output byte is
// produced by encrypting the current shift register and XORing its first
// byte with the input, then shifting the register left by one byte,
// appending either the ciphertext byte (encrypting) or the plaintext byte
// (decrypting) — which is what keeps both ends' registers in lockstep.
type cfb8Stream struct {
	block      cipher.Block
	iv         []byte
	encrypting bool
}

func (s *cfb8Stream) XORKeyStream(dst, src []byte) {
	blockSize := s.block.BlockSize()
	scratch := make([]byte, blockSize)
	for i, in := range src {
		s.block.Encrypt(scratch, s.iv)
		out := in ^ scratch[0]
		dst[i] = out

		// The feedback register always shifts in the *ciphertext* byte,
		// regardless of direction: that's out when encrypting (out is
		// the ciphertext) and in when decrypting (in is the ciphertext).
		feedback := in
		if s.encrypting {
			feedback = out
		}
		copy(s.iv, s.iv[1:])
		s.iv[blockSize-1] = feedback
	}
}
