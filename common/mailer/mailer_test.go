package mailer

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Render", func() {
	It("fills the invitation template", func() {
		email, err := Render(TemplateInvitation, "kim@example.com", map[string]string{
			"workspace_name":  "The Parkers",
			"inviter_name":    "Ann Parker",
			"invite_url":      "https://app.example.com/invite/accept/tok",
			"expires_in_days": "7",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(email.To).To(Equal("kim@example.com"))
		Expect(email.Subject).To(Equal("You're invited to join The Parkers on Kinnected"))
		Expect(email.HTML).To(ContainSubstring(`href="https://app.example.com/invite/accept/tok"`))
		Expect(email.HTML).To(ContainSubstring("expire in 7 days"))
		Expect(email.HTML).NotTo(ContainSubstring("Message from"))
		Expect(email.Text).To(ContainSubstring("Ann Parker has invited you to join The Parkers"))
	})

	It("includes the personal message when present", func() {
		email, err := Render(TemplateInvitation, "kim@example.com", map[string]string{
			"workspace_name": "The Parkers",
			"inviter_name":   "Ann",
			"message":        "See you at the reunion",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(email.HTML).To(ContainSubstring("See you at the reunion"))
		Expect(email.Text).To(ContainSubstring("See you at the reunion"))
	})

	It("escapes html in user supplied values", func() {
		email, err := Render(TemplateWelcome, "x@example.com", map[string]string{"name": "<b>Bob</b>"})
		Expect(err).NotTo(HaveOccurred())
		Expect(email.HTML).To(ContainSubstring("&lt;b&gt;Bob&lt;/b&gt;"))
	})

	It("rejects unknown templates", func() {
		_, err := Render(Template("promo"), "x@example.com", nil)
		Expect(err).To(MatchError(ErrUnknownTemplate))
	})
})

var _ = Describe("smtpSender", func() {
	It("requires host and from address", func() {
		_, err := NewSender(Config{Host: "smtp.example.com"})
		Expect(err).To(HaveOccurred())
	})

	It("builds a multipart message", func() {
		s, err := NewSender(Config{Host: "smtp.example.com", Port: 587, FromEmail: "hello@example.com", FromName: "Kinnected Family"})
		Expect(err).NotTo(HaveOccurred())

		msg, err := s.(*smtpSender).buildMessage(Email{
			To: "kim@example.com", Subject: "Hi", HTML: "<p>hi</p>", Text: "hi",
		})
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		_, err = msg.WriteTo(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("Subject: Hi"))
		Expect(buf.String()).To(ContainSubstring("kim@example.com"))
		Expect(buf.String()).To(ContainSubstring("text/html"))
	})

	It("rejects a malformed recipient", func() {
		s, _ := NewSender(Config{Host: "smtp.example.com", FromEmail: "hello@example.com"})
		_, err := s.(*smtpSender).buildMessage(Email{To: "not an address"})
		Expect(err).To(HaveOccurred())
	})
})
