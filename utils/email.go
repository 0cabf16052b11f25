package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"
)

// email request payload for ZeptoMail API
type emailRequest struct {
	From     emailAddress  `json:"from"`
	To       []toRecipient `json:"to"`
	Subject  string        `json:"subject"`
	HtmlBody string        `json:"htmlbody"`
}

type emailAddress struct {
	Address string `json:"address"`
}

type toRecipient struct {
	Email emailWithName `json:"email_address"`
}

type emailWithName struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// SendEmail sends an HTML email using the ZeptoMail HTTP API
func SendEmail(to, toName, subject, body string) error {
	apiURL := os.Getenv("ZEPTO_API_URL") // e.g. https://api.zeptomail.com/v1.1/email
	apiKey := os.Getenv("ZEPTO_API_KEY") // e.g. Zoho-enczapikey xxxxx
	from := os.Getenv("EMAIL_FROM")      // e.g. receipts@sevadaan.org

	if apiURL == "" || apiKey == "" || from == "" {
		log.Warn("missing ZEPTO_API_URL, ZEPTO_API_KEY, or EMAIL_FROM")
		return fmt.Errorf("missing required email config")
	}

	payload := emailRequest{
		From: emailAddress{Address: from},
		To: []toRecipient{
			{
				Email: emailWithName{
					Address: to,
					Name:    toName,
				},
			},
		},
		Subject:  subject,
		HtmlBody: body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("failed to marshal email payload: %v", err)
		return err
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		log.Errorf("failed to create request: %v", err)
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		log.Errorf("failed to send email: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		log.Errorf("zeptomail returned status %s", resp.Status)
		return fmt.Errorf("zeptomail API error: %s", resp.Status)
	}

	log.Infof("email sent to %s", to)
	return nil
}

// SendDonationReceipt emails a simple receipt after a donation commits.
// Best effort; confirmation has already been persisted when this runs.
func SendDonationReceipt(to, name, campaignTitle, receiptNo string, amount float64, currency string) error {
	subject := fmt.Sprintf("Thank you for your donation (receipt %s)", receiptNo)
	body := fmt.Sprintf(
		`<p>Dear %s,</p>
<p>We received your donation of %s %.2f towards <strong>%s</strong>.</p>
<p>Receipt number: %s</p>
<p>Thank you for your support.</p>`,
		name, currency, amount, campaignTitle, receiptNo)
	return SendEmail(to, name, subject, body)
}
