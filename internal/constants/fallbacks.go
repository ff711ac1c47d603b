package constants

// Fixed strings used whenever the text-generation backend is unreachable,
// misconfigured, or returns an empty result. The app must stay usable with
// no network and no API key.
const (
	FallbackQuote         = "Recovery is a process. It takes time. It takes patience. It takes everything you've got."
	FallbackChatReply     = "I'm having trouble connecting right now. Please try again later."
	FallbackJournalPrompt = "How are you really feeling right now?"
)

// FallbackAlternatives stands in for generated coping suggestions.
var FallbackAlternatives = []string{
	"Take ten slow, deep breaths and count each one.",
	"Drink a full glass of cold water.",
	"Step outside and walk for three minutes.",
}

// AssistantPersona is the system instruction for conversational support.
const AssistantPersona = `You are a supportive, empathetic, and knowledgeable sobriety assistant for an app called "ashline".
Your goal is to help the user overcome addiction (e.g., smoking, drugs, self-harm).
- Be encouraging but realistic.
- Provide science-backed advice on withdrawal, triggers, and healthy alternatives.
- Keep responses concise and easy to read in a terminal.
- Maintain a calm, professional, yet warm tone.`
