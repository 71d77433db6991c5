package sink

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/labelsheet/pkg/compose"
)

type jsonOutput struct {
	*compose.Document
	Labels    int                `json:"labels"`
	Fallbacks []compose.Fallback `json:"fallbacks,omitempty"`
}

// RenderJSON renders doc as indented JSON. QR symbols are omitted; each
// QR block carries its payload and fallback state.
func RenderJSON(doc *compose.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("json: nil document")
	}
	return json.MarshalIndent(jsonOutput{Document: doc, Labels: doc.Labels(), Fallbacks: doc.Fallbacks()}, "", "  ")
}
