package auth

import (
	"crypto/sha1"
	"math/big"
)

// ServerHash computes Minecraft's non-standard "server hash" used as the
// `serverId` parameter of the session-server join check: SHA-1 of
// sharedSecret‖publicKeyDER, interpreted as a signed
// big-endian two's-complement integer, rendered as lowercase hex with
// leading zeros stripped and a leading '-' when negative.
func ServerHash(sharedSecret, publicKeyDER []byte) string {
	h := sha1.New()
	h.Write(sharedSecret)
	h.Write(publicKeyDER)
	sum := h.Sum(nil)

	n := new(big.Int).SetBytes(sum)
	if sum[0]&0x80 != 0 {
		modulus := new(big.Int).Lsh(big.NewInt(1), uint(len(sum)*8))
		n.Sub(n, modulus)
		return "-" + n.Neg(n).Text(16)
	}
	return n.Text(16)
}
