package receipt

import (
	"bytes"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

// SendReceiptEmail envoie une copie du reçu par e-mail, PDF joint si présent
func SendReceiptEmail(to, refCode, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@vendra.pos"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("🧾 Votre reçu Vendra — " + refCode)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("recu_"+refCode+".pdf", bytes.NewReader(pdfAttachment))
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi du reçu à", to)
	return client.DialAndSend(msg)
}
