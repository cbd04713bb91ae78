// =============================================================================
// Card View - XML Renderer
// =============================================================================
//
// XML STRUCTURE:
//
//   <cards card="products" source="products.csv" generatedAt="...">
//     <card n="1" id="7" kind="product">     <!-- card index, 1-based -->
//       <title>Ceramic mug</title>
//       <line n="1" icon="fa-tag">$12.50</line>
//       <line n="2">Dishwasher safe</line>
//     </card>
//   </cards>
//
// Lines are numbered within their card. Text is escaped by encoding/xml.
//
// =============================================================================

package render

import (
	"encoding/xml"
	"fmt"
	"time"
)

// XMLRenderer writes a document as indented XML.
type XMLRenderer struct {
	Indent string
}

type xmlDocument struct {
	XMLName     xml.Name  `xml:"cards"`
	Card        string    `xml:"card,attr"`
	Source      string    `xml:"source,attr,omitempty"`
	GeneratedAt string    `xml:"generatedAt,attr,omitempty"`
	Cards       []xmlCard `xml:"card"`
}

type xmlCard struct {
	N     int       `xml:"n,attr"`
	ID    string    `xml:"id,attr,omitempty"`
	Kind  string    `xml:"kind,attr,omitempty"`
	Title string    `xml:"title"`
	Lines []xmlLine `xml:"line"`
}

type xmlLine struct {
	N    int    `xml:"n,attr"`
	Icon string `xml:"icon,attr,omitempty"`
	Text string `xml:",chardata"`
}

// Render implements Renderer.
func (r *XMLRenderer) Render(doc Document) ([]byte, error) {
	out := xmlDocument{
		Card:   doc.Card,
		Source: doc.Source,
		Cards:  make([]xmlCard, 0, len(doc.Cards)),
	}
	if !doc.GeneratedAt.IsZero() {
		out.GeneratedAt = doc.GeneratedAt.Format(time.RFC3339)
	}

	for i, card := range doc.Cards {
		element := xmlCard{
			N:     i + 1,
			ID:    card.ID,
			Kind:  card.Kind,
			Title: card.Title,
		}
		for j, line := range card.Lines {
			element.Lines = append(element.Lines, xmlLine{
				N:    j + 1,
				Icon: line.IconClass,
				Text: line.SubHeading,
			})
		}
		out.Cards = append(out.Cards, element)
	}

	body, err := xml.MarshalIndent(out, "", r.Indent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal XML: %w", err)
	}

	data := make([]byte, 0, len(xml.Header)+len(body)+1)
	data = append(data, xml.Header...)
	data = append(data, body...)
	return append(data, '\n'), nil
}

// Extension implements Renderer.
func (r *XMLRenderer) Extension() string {
	return ".xml"
}
