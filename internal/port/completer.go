package port

import "context"

// ImageAttachment is a base64-encoded image sent alongside a prompt.
type ImageAttachment struct {
	Data      string // base64-encoded bytes
	MediaType string // image/png or image/jpeg
}

// CompletionRequest carries a role-tagged instruction for the
// document-understanding capability. Image is optional; when set the provider
// sends a vision-style request.
type CompletionRequest struct {
	System string
	Prompt string
	Image  *ImageAttachment
	// ForceJSON asks the provider to constrain output to a JSON object where
	// the underlying API supports it. Callers must still tolerate fenced or
	// prose-wrapped JSON in the reply.
	ForceJSON bool
}

// Completer abstracts the external document-understanding capability. The
// returned string is expected, but not guaranteed, to contain a JSON object.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
