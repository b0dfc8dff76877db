// Package auth implements the online-mode handshake: the server's RSA
// keypair, Minecraft's non-standard SHA-1
// "server hash" digest, and the Mojang session-server join verification
// call. No example repo in the retrieved pack wraps this bespoke
// RSA/AES-CFB8/custom-SHA1 handshake in a third-party library (the pack's
// only other crypto usage is TLS-adjacent, not this protocol), so this
// package is built directly on the standard library's crypto primitives
// (see DESIGN.md).
package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
)

// KeyPair is the server's session-long RSA keypair, generated fresh each
// time Server.listen runs in online mode.
type KeyPair struct {
	Private *rsa.PrivateKey
	// PublicDER is the ASN.1 DER encoding of the public key, sent
	// verbatim in the login-phase `hello` packet.
	PublicDER []byte
}

// GenerateKeyPair creates a fresh 1024-bit RSA keypair: Minecraft's
// handshake has always used 1024 bits.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		return nil, err
	}
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Private: priv, PublicDER: der}, nil
}

// Decrypt undoes the client's PKCS#1 v1.5 RSA encryption of the shared
// secret or verify token.
func (k *KeyPair) Decrypt(ciphertext []byte) ([]byte, error) {
	return rsa.DecryptPKCS1v15(rand.Reader, k.Private, ciphertext)
}

// PublicKeyDER returns the ASN.1 DER encoding sent in the login-phase
// `hello` packet.
func (k *KeyPair) PublicKeyDER() []byte { return k.PublicDER }

// NewVerifyToken returns a fresh 4-byte random token.
func NewVerifyToken() ([]byte, error) {
	token := make([]byte, 4)
	if _, err := rand.Read(token); err != nil {
		return nil, err
	}
	return token, nil
}
