package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/electromart/electromart-backend/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeClassifier counts calls and returns a fixed result.
type fakeClassifier struct {
	intent models.Intent
	err    error
	calls  int
}

func (f *fakeClassifier) DetectIntent(_ context.Context, _ string) (models.Intent, error) {
	f.calls++
	return f.intent, f.err
}

func TestResolverFixedCommands(t *testing.T) {
	resolver := NewIntentResolver(models.ManualRules, nil, testLogger())

	cases := map[string]models.Intent{
		"menu":        models.IntentGreeting,
		"hi":          models.IntentGreeting,
		"  Hello  ":   models.IntentGreeting,
		"ORDER":       models.IntentOrder,
		"book":        models.IntentAppointment,
		"appointment": models.IntentAppointment,
	}
	for input, want := range cases {
		assert.Equal(t, want, resolver.Resolve(context.Background(), input), "input %q", input)
	}
}

func TestResolverKeywordScan(t *testing.T) {
	resolver := NewIntentResolver(models.ManualRules, nil, testLogger())

	assert.Equal(t, models.IntentPricing, resolver.Resolve(context.Background(), "what is the price of a fan"))
	assert.Equal(t, models.IntentHelp, resolver.Resolve(context.Background(), "please help me out"))
	assert.Equal(t, models.IntentCancel, resolver.Resolve(context.Background(), "cancel the order"))
}

func TestResolverKeywordPrecedenceIsDeclarationOrder(t *testing.T) {
	resolver := NewIntentResolver(models.ManualRules, nil, testLogger())

	// "ok" is declared before "book" and is a substring of it, so a
	// sentence mentioning booking resolves to confirm. The exact
	// command "book" still starts a booking via the fixed table.
	assert.Equal(t, models.IntentConfirm,
		resolver.Resolve(context.Background(), "can you book it"))
	assert.Equal(t, models.IntentAppointment,
		resolver.Resolve(context.Background(), "book"))

	// "price" is declared before "cost".
	assert.Equal(t, models.IntentPricing,
		resolver.Resolve(context.Background(), "what does the priced item cost"))
}

func TestResolverFixedCommandSkipsNLP(t *testing.T) {
	classifier := &fakeClassifier{intent: models.IntentOrder}
	resolver := NewIntentResolver(models.ManualRules, classifier, testLogger())

	assert.Equal(t, models.IntentGreeting, resolver.Resolve(context.Background(), "menu"))
	assert.Equal(t, models.IntentGreeting, resolver.Resolve(context.Background(), "hello"))
	assert.Zero(t, classifier.calls)
}

func TestResolverNLPFallbackInvokedOnce(t *testing.T) {
	classifier := &fakeClassifier{intent: models.IntentOrder}
	resolver := NewIntentResolver(models.ManualRules, classifier, testLogger())

	got := resolver.Resolve(context.Background(), "I want 2 fans delivered")
	assert.Equal(t, models.IntentOrder, got)
	assert.Equal(t, 1, classifier.calls)
}

func TestResolverNLPFailureDegradesToUnknown(t *testing.T) {
	classifier := &fakeClassifier{err: errors.New("timeout")}
	resolver := NewIntentResolver(models.ManualRules, classifier, testLogger())

	got := resolver.Resolve(context.Background(), "I want 2 fans delivered")
	assert.Equal(t, models.IntentUnknown, got)
	assert.Equal(t, 1, classifier.calls)
}

func TestResolverNLPOnlyTrustsWorkflowStarters(t *testing.T) {
	classifier := &fakeClassifier{intent: models.IntentPricing}
	resolver := NewIntentResolver(models.ManualRules, classifier, testLogger())

	got := resolver.Resolve(context.Background(), "I want 2 fans delivered")
	assert.Equal(t, models.IntentUnknown, got)
}

func TestResolverNoClassifierConfigured(t *testing.T) {
	resolver := NewIntentResolver(models.ManualRules, nil, testLogger())

	got := resolver.Resolve(context.Background(), "I want 2 fans delivered")
	assert.Equal(t, models.IntentUnknown, got)
}
