package config

import "os"

// Gateway backends selectable via the GATEWAY env var.
const (
	GatewayCloud  = "cloud"
	GatewayTwilio = "twilio"
	GatewayMock   = "mock"
)

// Config collects every environment setting the process reads.
// main.go loads .env via godotenv before calling Load.
type Config struct {
	Port string

	// Meta WhatsApp Cloud API
	WhatsAppToken    string
	PhoneNumberID    string
	VerifyToken      string
	GraphBaseURL     string
	MediaDownloadDir string

	// Twilio gateway
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string

	// NLP fallback
	OpenAIKey   string
	OpenAIModel string

	Gateway        string
	UseMemoryStore bool
}

// Load reads the configuration from the environment.
func Load() *Config {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		WhatsAppToken:    os.Getenv("WHATSAPP_TOKEN"),
		PhoneNumberID:    os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
		VerifyToken:      os.Getenv("WHATSAPP_VERIFY_TOKEN"),
		GraphBaseURL:     getEnv("WHATSAPP_GRAPH_BASE_URL", "https://graph.facebook.com/v20.0"),
		MediaDownloadDir: getEnv("MEDIA_DOWNLOAD_DIR", "./media"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:       os.Getenv("TWILIO_WHATSAPP_FROM"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		Gateway:          getEnv("GATEWAY", GatewayMock),
		UseMemoryStore:   os.Getenv("USE_MEMORY_STORE") == "true",
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
