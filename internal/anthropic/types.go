package anthropic

// Wire types for the Anthropic Messages API (version 2023-06-01).
//
// Optional sampling fields are pointers with omitempty: presence of e.g.
// top_p changes upstream sampling behavior, so an unset field must be
// absent from the JSON, never sent as null or a zero placeholder.

type ContentBlock struct {
	Type   string  `json:"type"`
	Text   string  `json:"text,omitempty"`
	Source *Source `json:"source,omitempty"`
}

type Source struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

type MessagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []Message `json:"messages"`
	System      string    `json:"system,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	TopP        *float64  `json:"top_p,omitempty"`
	TopK        *int      `json:"top_k,omitempty"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type MessagesResponse struct {
	ID         string         `json:"id"`
	Model      string         `json:"model"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      Usage          `json:"usage"`
}

// Text concatenates the text content blocks of the response.
func (r *MessagesResponse) Text() string {
	var out string
	for _, block := range r.Content {
		if block.Type == "text" {
			out += block.Text
		}
	}
	return out
}

func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

func ImageBlock(mediaType, base64Data string) ContentBlock {
	return ContentBlock{Type: "image", Source: &Source{Type: "base64", MediaType: mediaType, Data: base64Data}}
}

func DocumentBlock(mediaType, base64Data string) ContentBlock {
	return ContentBlock{Type: "document", Source: &Source{Type: "base64", MediaType: mediaType, Data: base64Data}}
}
