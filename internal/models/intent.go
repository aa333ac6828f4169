package models

// Intent is the coarse classification of a free-text message.
type Intent string

const (
	IntentGreeting    Intent = "greeting"
	IntentConfirm     Intent = "confirm"
	IntentReject      Intent = "reject"
	IntentCancel      Intent = "cancel"
	IntentAppointment Intent = "appointment"
	IntentOrder       Intent = "order"
	IntentPricing     Intent = "pricing"
	IntentHelp        Intent = "help"
	IntentUnknown     Intent = "unknown"
)

// IntentRule maps one literal keyword to an intent.
type IntentRule struct {
	Keyword string
	Intent  Intent
}

// ManualRules is the static keyword table checked before the NLP
// fallback. Order matters: the first rule whose keyword appears in
// the message wins, even when a later keyword also matches.
var ManualRules = []IntentRule{
	{"hi", IntentGreeting},
	{"hello", IntentGreeting},
	{"hey", IntentGreeting},

	{"yes", IntentConfirm},
	{"yup", IntentConfirm},
	{"ok", IntentConfirm},
	{"sure", IntentConfirm},

	{"no", IntentReject},
	{"nope", IntentReject},
	{"cancel", IntentCancel},

	{"book", IntentAppointment},
	{"appointment", IntentAppointment},

	{"order", IntentOrder},

	{"price", IntentPricing},
	{"cost", IntentPricing},

	{"help", IntentHelp},
}
