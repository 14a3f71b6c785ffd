package wallet_test

import (
	"encoding/hex"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"streetnetwork.app/kinship/common/wallet"
)

// Private key 1 maps to this well-known address.
const keyOneAddress = "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf"

func signPersonal(key *secp256k1.PrivateKey, msg string, vOffset byte) string {
	compact := ecdsa.SignCompact(key, wallet.PersonalMessageHash(msg), false)
	sig := make([]byte, 65)
	copy(sig, compact[1:])
	sig[64] = compact[0] - 27 + vOffset
	return "0x" + hex.EncodeToString(sig)
}

var _ = Describe("Wallet", func() {
	var key *secp256k1.PrivateKey

	BeforeEach(func() {
		raw := make([]byte, 32)
		raw[31] = 1
		key = secp256k1.PrivKeyFromBytes(raw)
	})

	Describe("Keccak256", func() {
		It("matches the empty-input digest", func() {
			Expect(hex.EncodeToString(wallet.Keccak256())).To(Equal(
				"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"))
		})
	})

	Describe("NormalizeAddress", func() {
		It("lower-cases checksummed input", func() {
			got, err := wallet.NormalizeAddress(" 0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf ")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(keyOneAddress))
		})

		DescribeTable("rejects malformed addresses",
			func(in string) {
				_, err := wallet.NormalizeAddress(in)
				Expect(err).To(MatchError(wallet.ErrInvalidAddress))
			},
			Entry("empty", ""),
			Entry("no prefix", "7e5f4552091a69125d5dfcb7b8c2659029395bdf"),
			Entry("too short", "0x7e5f45"),
			Entry("non hex", "0xzz5f4552091a69125d5dfcb7b8c2659029395bdf"),
		)
	})

	Describe("RecoverAddress", func() {
		msg := wallet.SignInMessage(keyOneAddress, "abc123", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))

		It("recovers the signer with V in 27/28 form", func() {
			got, err := wallet.RecoverAddress(msg, signPersonal(key, msg, 27))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(keyOneAddress))
		})

		It("recovers the signer with V in 0/1 form", func() {
			got, err := wallet.RecoverAddress(msg, signPersonal(key, msg, 0))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(keyOneAddress))
		})

		It("rejects signatures of the wrong length", func() {
			_, err := wallet.RecoverAddress(msg, "0xdeadbeef")
			Expect(err).To(MatchError(wallet.ErrInvalidSignature))
		})
	})

	Describe("Verify", func() {
		msg := wallet.SignInMessage(keyOneAddress, "n1", time.Unix(0, 0))

		It("accepts the matching address", func() {
			Expect(wallet.Verify(keyOneAddress, msg, signPersonal(key, msg, 27))).To(Succeed())
		})

		It("rejects a signature over a different message", func() {
			sig := signPersonal(key, "something else", 27)
			Expect(wallet.Verify(keyOneAddress, msg, sig)).To(MatchError(wallet.ErrSignatureMismatch))
		})

		It("rejects another wallet", func() {
			other := "0x0000000000000000000000000000000000000001"
			Expect(wallet.Verify(other, msg, signPersonal(key, msg, 27))).To(MatchError(wallet.ErrSignatureMismatch))
		})
	})

	Describe("NewNonce", func() {
		It("returns distinct hex strings", func() {
			a, err := wallet.NewNonce()
			Expect(err).NotTo(HaveOccurred())
			b, _ := wallet.NewNonce()
			Expect(a).To(HaveLen(32))
			Expect(a).NotTo(Equal(b))
		})
	})
})
