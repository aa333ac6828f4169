package models

// SendTextRequest is the body of POST /api/whatsapp/send-text.
type SendTextRequest struct {
	Number  string `json:"number" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SendMediaRequest is the body of POST /api/whatsapp/send-media.
type SendMediaRequest struct {
	Number  string `json:"number" validate:"required"`
	URL     string `json:"url" validate:"required,url"`
	Caption string `json:"caption"`
}

// SendTemplateRequest is the body of POST /api/whatsapp/send-template.
type SendTemplateRequest struct {
	Number       string            `json:"number" validate:"required"`
	TemplateName string            `json:"template_name" validate:"required"`
	Parameters   map[string]string `json:"parameters"`
}
