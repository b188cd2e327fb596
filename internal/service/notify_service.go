package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"carebridge/internal/config"
)

// MessageSender delivers already composed messages.
type MessageSender interface {
	SendEmail(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error
	SendSMS(toNumber, messageBody string) error
}

type providerSender struct {
	sendgridAPIKey string
	fromEmail      string
	fromName       string

	twilioAccountSID string
	twilioAuthToken  string
	twilioFromNumber string
}

// NewProviderSender sends email through SendGrid and SMS through Twilio.
func NewProviderSender(cfg *config.Config) MessageSender {
	return &providerSender{
		sendgridAPIKey:   cfg.SendGridAPIKey,
		fromEmail:        cfg.SendGridFromEmail,
		fromName:         cfg.SendGridFromName,
		twilioAccountSID: cfg.TwilioAccountSID,
		twilioAuthToken:  cfg.TwilioAuthToken,
		twilioFromNumber: cfg.TwilioFromNumber,
	}
}

func (p *providerSender) SendEmail(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	if p.sendgridAPIKey == "" || p.fromEmail == "" {
		log.Println("WARNING: SendGrid is not configured. Email will not be sent.")
		return fmt.Errorf("sendgrid not configured")
	}

	from := mail.NewEmail(p.fromName, p.fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(p.sendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sending email via SendGrid: %w", err)
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("Email sent to %s (subject: %s). Status: %d", toEmailAddress, subject, response.StatusCode)
		return nil
	}
	return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
}

func (p *providerSender) SendSMS(toNumber, messageBody string) error {
	if p.twilioAccountSID == "" || p.twilioAuthToken == "" || p.twilioFromNumber == "" {
		log.Println("WARNING: Twilio credentials are not configured. SMS will not be sent.")
		return fmt.Errorf("twilio not configured")
	}
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("WARNING: destination number %q is not in E.164 format. The SMS may fail.", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   p.twilioAccountSID,
		Password:   p.twilioAuthToken,
		AccountSid: p.twilioAccountSID,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(p.twilioFromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("sending SMS via Twilio: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("SMS sent to %s. Message SID: %s", toNumber, *resp.Sid)
	}
	return nil
}
