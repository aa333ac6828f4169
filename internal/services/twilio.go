package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/electromart/electromart-backend/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioGateway sends WhatsApp messages through Twilio's messaging
// API. Interactive reply buttons are a Cloud API feature, so menus
// degrade to a plain text list pointing at the typed commands the
// intent resolver understands.
type TwilioGateway struct {
	client *twilio.RestClient
	from   string
	log    *logrus.Logger
}

// NewTwilioGateway creates a Twilio-backed gateway. from must be in
// the "whatsapp:+14155238886" format.
func NewTwilioGateway(accountSID, authToken, from string, log *logrus.Logger) (*TwilioGateway, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioGateway{
		client: client,
		from:   from,
		log:    log,
	}, nil
}

func (t *TwilioGateway) SendText(_ context.Context, to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(fmt.Sprintf("whatsapp:%s", to))
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}

	t.log.Debugf("twilio message sent, SID: %s", deref(resp.Sid))
	return nil
}

func (t *TwilioGateway) SendMenu(ctx context.Context, to, bodyText string, buttons []models.Button) error {
	return t.SendText(ctx, to, textMenu(bodyText, buttons))
}

// textMenu flattens an interactive menu into text. Button ids cannot
// come back over this channel, so the trailer names the free-text
// commands the resolver handles instead of the button titles.
func textMenu(bodyText string, buttons []models.Button) string {
	var b strings.Builder
	b.WriteString(bodyText)
	b.WriteString("\n")
	for _, btn := range buttons {
		fmt.Fprintf(&b, "\n- %s", btn.Title)
	}
	b.WriteString("\n\nType *menu*, *order*, *book*, *price* or *help*.")
	return b.String()
}

func (t *TwilioGateway) SendImage(_ context.Context, to, mediaRef, caption string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(fmt.Sprintf("whatsapp:%s", to))
	params.SetBody(caption)
	// Twilio takes a public media URL, not a platform media id.
	params.SetMediaUrl([]string{mediaRef})

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send image: %w", err)
	}
	return nil
}

// SendTemplate sends a Twilio content template. templateName must be
// a content SID; parameters become content variables.
func (t *TwilioGateway) SendTemplate(_ context.Context, to, templateName string, params map[string]string) error {
	msgParams := &twilioApi.CreateMessageParams{}
	msgParams.SetFrom(t.from)
	msgParams.SetTo(fmt.Sprintf("whatsapp:%s", to))
	msgParams.SetContentSid(templateName)

	if len(params) > 0 {
		variablesJSON, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("marshal content variables: %w", err)
		}
		msgParams.SetContentVariables(string(variablesJSON))
	}

	resp, err := t.client.Api.CreateMessage(msgParams)
	if err != nil {
		return fmt.Errorf("twilio send template: %w", err)
	}
	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		return fmt.Errorf("twilio error %d: %s", *resp.ErrorCode, deref(resp.ErrorMessage))
	}
	return nil
}

// Media transfer runs over the Cloud API; Twilio has no equivalent
// surface here, so the image-receipt path degrades to a plain notice.
func (t *TwilioGateway) UploadMedia(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("media upload not supported by the twilio gateway")
}

func (t *TwilioGateway) GetMediaURL(context.Context, string) (string, error) {
	return "", fmt.Errorf("media lookup not supported by the twilio gateway")
}

func (t *TwilioGateway) DownloadMedia(context.Context, string, string) error {
	return fmt.Errorf("media download not supported by the twilio gateway")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
