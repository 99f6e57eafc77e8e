package domain

// PartKind discriminates the two part variants a model reply can carry.
type PartKind int

const (
	PartText PartKind = iota
	PartImage
)

// Part is one ordered fragment of a model reply: either text or inline
// image bytes, never both.
type Part struct {
	Kind     PartKind
	Text     string
	Data     []byte
	MIMEType string
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Kind: PartText, Text: text}
}

// ImagePart builds an inline-image part.
func ImagePart(data []byte, mimeType string) Part {
	return Part{Kind: PartImage, Data: data, MIMEType: mimeType}
}

// Citation is one web source attached to a grounded reply.
type Citation struct {
	URI   string
	Title string
}

// ModelReply is the normalized result of a single model call. Parts keep the
// order the model returned them in; the reply is never mutated after the
// gateway produces it.
type ModelReply struct {
	Parts     []Part
	Citations []Citation
}

// NewsItem is one entry of the curated SEO news digest.
type NewsItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
	Source  string `json:"source"`
	Date    string `json:"date"`
	Author  string `json:"author,omitempty"`
}

// MetaPreview is the structured SERP preview extracted from a meta-tag reply.
type MetaPreview struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
