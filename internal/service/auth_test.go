package service_test

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"streetnetwork.app/kinship/common/id"
	"streetnetwork.app/kinship/common/wallet"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/queue"
	"streetnetwork.app/kinship/internal/service"
	"streetnetwork.app/kinship/internal/store"
)

// private key 1
const walletAddress = "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf"

func signWithKeyOne(msg string) string {
	raw := make([]byte, 32)
	raw[31] = 1
	key := secp256k1.PrivKeyFromBytes(raw)
	compact := ecdsa.SignCompact(key, wallet.PersonalMessageHash(msg), false)
	sig := make([]byte, 65)
	copy(sig, compact[1:])
	sig[64] = compact[0]
	return "0x" + hex.EncodeToString(sig)
}

var _ = Describe("AuthService", func() {
	var (
		ctx      context.Context
		users    *mockUserStore
		sessions *mockSessionStore
		nonces   *mockNonceStore
		identity *mockIdentityProvider
		tasks    *mockEnqueuer
		svc      service.AuthService
	)

	BeforeEach(func() {
		ctx = context.Background()
		Expect(id.Init(1)).To(Succeed())

		users = &mockUserStore{}
		sessions = &mockSessionStore{}
		nonces = newMockNonceStore()
		identity = &mockIdentityProvider{}
		tasks = &mockEnqueuer{}
		svc = service.NewAuthService(users, sessions, nonces, identity, tasks, service.AuthConfig{
			SessionTTL:  30 * 24 * time.Hour,
			PasswordMin: 8,
			AppURL:      "https://kinnected.example",
		})
	})

	Describe("SignUp", func() {
		It("creates a password user with a session and welcome email", func() {
			var created *model.User
			users.createFn = func(_ context.Context, u *model.User) error {
				created = u
				return nil
			}

			user, session, err := svc.SignUp(ctx, service.SignUpParams{
				Email:    "  Ada@Example.COM ",
				Password: "correct horse",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(user).To(BeIdenticalTo(created))
			Expect(*user.Email).To(Equal("ada@example.com"))
			Expect(user.Name).To(Equal("ada"))
			Expect(user.FamilyRole).To(Equal(model.FamilyRolePending))
			Expect(bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte("correct horse"))).To(Succeed())
			cost, err := bcrypt.Cost([]byte(*user.PasswordHash))
			Expect(err).NotTo(HaveOccurred())
			Expect(cost).To(Equal(12))

			Expect(session.UserID).To(Equal(user.ID))
			Expect(session.ExpiresAt).To(BeTemporally("~", time.Now().Add(30*24*time.Hour), time.Minute))

			Expect(tasks.tasks).To(HaveLen(1))
			Expect(tasks.tasks[0].TaskType).To(Equal(queue.TaskTypeSendEmail))
			Expect(tasks.tasks[0].Template).To(Equal("welcome"))
			Expect(tasks.tasks[0].Recipient).To(Equal("ada@example.com"))
		})

		It("rejects short passwords", func() {
			_, _, err := svc.SignUp(ctx, service.SignUpParams{Email: "a@b.co", Password: "short"})
			Expect(err).To(MatchError(service.ErrPasswordTooShort))
			Expect(users.createCalls).To(BeZero())
		})

		It("requires some credential", func() {
			_, _, err := svc.SignUp(ctx, service.SignUpParams{Name: "Ada"})
			Expect(err).To(MatchError(service.ErrMissingCredentials))
		})

		It("maps duplicate emails to ErrEmailTaken", func() {
			users.createFn = func(context.Context, *model.User) error { return store.ErrConflict }
			_, _, err := svc.SignUp(ctx, service.SignUpParams{Email: "a@b.co", Password: "long enough"})
			Expect(err).To(MatchError(service.ErrEmailTaken))
		})

		It("creates a wallet user from a signed challenge", func() {
			msg, err := svc.WalletChallenge(ctx, walletAddress)
			Expect(err).NotTo(HaveOccurred())

			user, _, err := svc.SignUp(ctx, service.SignUpParams{
				WalletAddress: walletAddress,
				Signature:     signWithKeyOne(msg),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(*user.WalletAddress).To(Equal(walletAddress))
			Expect(user.Email).To(BeNil())
			Expect(tasks.tasks).To(BeEmpty())
		})
	})

	Describe("Login", func() {
		var hash string

		BeforeEach(func() {
			h, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
			Expect(err).NotTo(HaveOccurred())
			hash = string(h)
			users.getByEmailFn = func(_ context.Context, email string) (*model.User, error) {
				if email != "ada@example.com" {
					return nil, store.ErrNotFound
				}
				return &model.User{ID: 7, Email: ptr(email), PasswordHash: &hash}, nil
			}
		})

		It("issues a session for the right password", func() {
			user, session, err := svc.Login(ctx, "ADA@example.com", "correct horse")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(int64(7)))
			Expect(session.UserID).To(Equal(int64(7)))
		})

		DescribeTable("answers ErrInvalidCredentials",
			func(email, password string) {
				_, _, err := svc.Login(ctx, email, password)
				Expect(err).To(MatchError(service.ErrInvalidCredentials))
			},
			Entry("wrong password", "ada@example.com", "battery staple"),
			Entry("unknown email", "bob@example.com", "correct horse"),
		)
	})

	Describe("wallet sign-in", func() {
		It("verifies the signature and logs the user in", func() {
			users.getByWalletFn = func(_ context.Context, address string) (*model.User, error) {
				Expect(address).To(Equal(walletAddress))
				return &model.User{ID: 9, WalletAddress: ptr(address)}, nil
			}

			msg, err := svc.WalletChallenge(ctx, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf")
			Expect(err).NotTo(HaveOccurred())
			Expect(msg).To(ContainSubstring(walletAddress))

			user, session, err := svc.VerifyWallet(ctx, walletAddress, signWithKeyOne(msg))
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(int64(9)))
			Expect(session.UserID).To(Equal(int64(9)))
		})

		It("consumes the challenge so it cannot be replayed", func() {
			users.getByWalletFn = func(context.Context, string) (*model.User, error) {
				return &model.User{ID: 9}, nil
			}
			msg, _ := svc.WalletChallenge(ctx, walletAddress)
			sig := signWithKeyOne(msg)

			_, _, err := svc.VerifyWallet(ctx, walletAddress, sig)
			Expect(err).NotTo(HaveOccurred())
			_, _, err = svc.VerifyWallet(ctx, walletAddress, sig)
			Expect(err).To(MatchError(service.ErrNonceNotFound))
		})

		It("rejects a signature over a different message", func() {
			_, err := svc.WalletChallenge(ctx, walletAddress)
			Expect(err).NotTo(HaveOccurred())

			_, _, err = svc.VerifyWallet(ctx, walletAddress, signWithKeyOne("something else"))
			Expect(err).To(MatchError(service.ErrWalletSignature))
		})

		It("answers ErrUserNotFound for an unregistered wallet", func() {
			msg, _ := svc.WalletChallenge(ctx, walletAddress)
			_, _, err := svc.VerifyWallet(ctx, walletAddress, signWithKeyOne(msg))
			Expect(err).To(MatchError(service.ErrUserNotFound))
		})

		It("rejects malformed addresses", func() {
			_, err := svc.WalletChallenge(ctx, "not-a-wallet")
			Expect(err).To(MatchError(service.ErrInvalidWallet))
		})
	})

	Describe("HandleCallback", func() {
		BeforeEach(func() {
			identity.authenticateFn = func(_ context.Context, code string) (*service.Identity, error) {
				if code != "good" {
					return nil, errors.New("bad code")
				}
				return &service.Identity{
					ProviderID: "user_01",
					Email:      "Grace@Example.com",
					FirstName:  "Grace",
					LastName:   "Hopper",
				}, nil
			}
		})

		It("creates a new user and sends a welcome email", func() {
			user, session, err := svc.HandleCallback(ctx, "good")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Name).To(Equal("Grace Hopper"))
			Expect(*user.Email).To(Equal("grace@example.com"))
			Expect(*user.WorkOSID).To(Equal("user_01"))
			Expect(session.UserID).To(Equal(user.ID))
			Expect(tasks.tasks).To(HaveLen(1))
		})

		It("links an existing email account instead of creating one", func() {
			users.getByEmailFn = func(context.Context, string) (*model.User, error) {
				return &model.User{ID: 3, Email: ptr("grace@example.com")}, nil
			}
			user, _, err := svc.HandleCallback(ctx, "good")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(int64(3)))
			Expect(users.createCalls).To(BeZero())
			Expect(tasks.tasks).To(BeEmpty())
		})

		It("maps provider failures to ErrInvalidCode", func() {
			_, _, err := svc.HandleCallback(ctx, "bad")
			Expect(err).To(MatchError(service.ErrInvalidCode))
		})

		It("reports not configured without a provider", func() {
			svc = service.NewAuthService(users, sessions, nonces, nil, tasks, service.AuthConfig{})
			_, err := svc.GetAuthorizationURL("state")
			Expect(errors.Is(err, service.ErrNotConfigured)).To(BeTrue())
		})
	})

	Describe("ValidateSession", func() {
		It("maps a missing session to ErrSessionExpired", func() {
			_, err := svc.ValidateSession(ctx, 42)
			Expect(err).To(MatchError(service.ErrSessionExpired))
		})

		It("returns the session's user", func() {
			sessions.getValidFn = func(context.Context, int64) (*model.Session, error) {
				return &model.Session{ID: 42, UserID: 5}, nil
			}
			users.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id}, nil
			}
			user, err := svc.ValidateSession(ctx, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(int64(5)))
		})
	})
})
