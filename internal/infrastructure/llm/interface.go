package llm

import "context"

// ClientInterface defines the methods required from the LLM gateway client
type ClientInterface interface {
	Transcribe(ctx context.Context, audioBase64, format, prompt string) (string, error)
	Complete(ctx context.Context, system, user string) (string, error)
}
