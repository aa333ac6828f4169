package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/electromart/electromart-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// CloudAPIGateway talks to the Meta WhatsApp Cloud API
// (graph.facebook.com). All calls authenticate with a bearer token
// bound to one phone number id.
type CloudAPIGateway struct {
	token         string
	phoneNumberID string
	baseURL       string
	client        *http.Client
	log           *logrus.Logger
}

// NewCloudAPIGateway creates a Cloud API gateway. baseURL is the
// versioned Graph API root, e.g. https://graph.facebook.com/v20.0.
func NewCloudAPIGateway(token, phoneNumberID, baseURL string, log *logrus.Logger) *CloudAPIGateway {
	return &CloudAPIGateway{
		token:         token,
		phoneNumberID: phoneNumberID,
		baseURL:       baseURL,
		client:        &http.Client{Timeout: 30 * time.Second},
		log:           log,
	}
}

func (g *CloudAPIGateway) messagesURL() string {
	return fmt.Sprintf("%s/%s/messages", g.baseURL, g.phoneNumberID)
}

// SendText sends a plain text message.
func (g *CloudAPIGateway) SendText(ctx context.Context, to, body string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text":              map[string]string{"body": body},
	}
	return g.postJSON(ctx, g.messagesURL(), payload)
}

// SendMenu sends an interactive reply-button message.
func (g *CloudAPIGateway) SendMenu(ctx context.Context, to, bodyText string, buttons []models.Button) error {
	btns := make([]map[string]any, 0, len(buttons))
	for _, b := range buttons {
		btns = append(btns, map[string]any{
			"type":  "reply",
			"reply": map[string]string{"id": b.ID, "title": b.Title},
		})
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type":   "button",
			"body":   map[string]string{"text": bodyText},
			"action": map[string]any{"buttons": btns},
		},
	}
	return g.postJSON(ctx, g.messagesURL(), payload)
}

// SendImage sends a previously uploaded image by media id.
func (g *CloudAPIGateway) SendImage(ctx context.Context, to, mediaRef, caption string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "image",
		"image": map[string]string{
			"id":      mediaRef,
			"caption": caption,
		},
	}
	return g.postJSON(ctx, g.messagesURL(), payload)
}

// SendTemplate sends a pre-approved message template. Map iteration
// order is not stable, so templates used with this gateway should
// take a single body parameter or tolerate any parameter order.
func (g *CloudAPIGateway) SendTemplate(ctx context.Context, to, templateName string, params map[string]string) error {
	components := []map[string]any{}
	if len(params) > 0 {
		parameters := make([]map[string]string, 0, len(params))
		for _, v := range params {
			parameters = append(parameters, map[string]string{"type": "text", "text": v})
		}
		components = append(components, map[string]any{
			"type":       "body",
			"parameters": parameters,
		})
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "template",
		"template": map[string]any{
			"name":       templateName,
			"language":   map[string]string{"code": "en_US"},
			"components": components,
		},
	}
	return g.postJSON(ctx, g.messagesURL(), payload)
}

// UploadMedia uploads a local file and returns the platform media id.
func (g *CloudAPIGateway) UploadMedia(ctx context.Context, filePath, mimeType string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open media file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	_ = form.WriteField("messaging_product", "whatsapp")
	_ = form.WriteField("type", mimeType)
	if err := form.Close(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s/media", g.baseURL, g.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("upload response missing media id")
	}
	return out.ID, nil
}

// GetMediaURL resolves a media id to a short-lived download URL.
func (g *CloudAPIGateway) GetMediaURL(ctx context.Context, mediaID string) (string, error) {
	url := fmt.Sprintf("%s/%s", g.baseURL, mediaID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get media url: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode media response: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("media response missing url")
	}
	return out.URL, nil
}

// DownloadMedia fetches the media bytes and writes them to saveTo.
// The download URL requires the same bearer token as the API calls.
func (g *CloudAPIGateway) DownloadMedia(ctx context.Context, mediaURL, saveTo string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download media: unexpected status %d", resp.StatusCode)
	}

	out, err := os.Create(saveTo)
	if err != nil {
		return fmt.Errorf("create media file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write media file: %w", err)
	}
	return nil
}

func (g *CloudAPIGateway) postJSON(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("cloud api call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("cloud api status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
