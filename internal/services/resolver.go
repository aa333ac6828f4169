package services

import (
	"context"
	"strings"

	"github.com/electromart/electromart-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// Classifier is the external NLP fallback. Implementations are a
// black box; only the single intent label they return matters.
type Classifier interface {
	DetectIntent(ctx context.Context, text string) (models.Intent, error)
}

// Reserved commands resolve immediately, before the keyword scan.
var fixedCommands = map[string]models.Intent{
	"menu":        models.IntentGreeting,
	"hi":          models.IntentGreeting,
	"hello":       models.IntentGreeting,
	"order":       models.IntentOrder,
	"book":        models.IntentAppointment,
	"appointment": models.IntentAppointment,
}

// IntentResolver classifies free text when no session is active.
// Manual rules are cheap, deterministic and auditable, so they always
// pre-empt the external classifier; the classifier is a last resort.
type IntentResolver struct {
	rules      []models.IntentRule
	classifier Classifier
	log        *logrus.Logger
}

// NewIntentResolver builds a resolver over an ordered rule table.
// classifier may be nil, in which case the fallback stage is skipped.
func NewIntentResolver(rules []models.IntentRule, classifier Classifier, log *logrus.Logger) *IntentResolver {
	return &IntentResolver{
		rules:      rules,
		classifier: classifier,
		log:        log,
	}
}

// Resolve runs the staged pipeline: exact reserved command, ordered
// substring scan, then the NLP fallback. Classifier errors and labels
// outside the start-workflow set degrade to IntentUnknown; nothing
// here ever returns an error to the caller.
func (r *IntentResolver) Resolve(ctx context.Context, text string) models.Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if intent, ok := fixedCommands[normalized]; ok {
		return intent
	}

	// First matching rule wins. An earlier short keyword shadows a
	// later longer one; that ordering dependency is deliberate.
	for _, rule := range r.rules {
		if strings.Contains(normalized, rule.Keyword) {
			return rule.Intent
		}
	}

	if r.classifier == nil {
		return models.IntentUnknown
	}

	intent, err := r.classifier.DetectIntent(ctx, text)
	if err != nil {
		r.log.WithError(err).Warn("intent classifier failed, treating as unknown")
		return models.IntentUnknown
	}

	// Only workflow starters are trusted from the classifier.
	switch intent {
	case models.IntentOrder, models.IntentAppointment:
		return intent
	}
	return models.IntentUnknown
}
