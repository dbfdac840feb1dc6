package proof

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards/eddsa"
)

// Attester signs proofs with an EdDSA key over a MiMC digest of the claim
// fields. The oracle service holds the private key; the ledger side only
// needs the public key to verify.
type Attester struct {
	key *eddsa.PrivateKey
}

// NewAttester generates a fresh attestation key pair.
func NewAttester() (*Attester, error) {
	key, err := eddsa.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Attester{key: key}, nil
}

// PublicKey returns the serialized verification key.
func (a *Attester) PublicKey() []byte {
	return a.key.PublicKey.Bytes()
}

// Address returns the attester identity as hex of the verification key.
func (a *Attester) Address() string {
	return hex.EncodeToString(a.PublicKey())
}

// Attest signs the proof in place.
func (a *Attester) Attest(p *Proof) error {
	sig, err := a.key.Sign(message(p), mimc.NewMiMC())
	if err != nil {
		return err
	}
	p.Signature = sig
	return nil
}

// Verify checks a proof signature against an attester public key.
func Verify(attesterKey []byte, p *Proof) (bool, error) {
	var pub eddsa.PublicKey
	if _, err := pub.SetBytes(attesterKey); err != nil {
		return false, err
	}
	return pub.Verify(p.Signature, message(p), mimc.NewMiMC())
}

// message serializes the claim fields as canonical field elements so the
// MiMC hasher accepts them: one 32-byte reduced block per field.
func message(p *Proof) []byte {
	var height [8]byte
	binary.BigEndian.PutUint64(height[:], p.AttestedAt)

	excess := uint256Bytes(p)

	fields := [][]byte{
		[]byte(p.ID),
		[]byte(p.ProducerID),
		excess,
		height[:],
	}

	msg := make([]byte, 0, len(fields)*fr.Bytes)
	for _, f := range fields {
		var e fr.Element
		e.SetBytes(f)
		b := e.Bytes()
		msg = append(msg, b[:]...)
	}
	return msg
}

func uint256Bytes(p *Proof) []byte {
	if p.ExcessOutput == nil {
		return nil
	}
	return p.ExcessOutput.Bytes()
}
