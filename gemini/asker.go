package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/citedoc"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Asker implements citedoc.Asker at compile time.
var _ citedoc.Asker = (*Asker)(nil)

// Asker implements citedoc.Asker using Google Gemini. Answers are requested
// as JSON so that every quoted passage names the document it came from.
type Asker struct {
	client *genai.Client
	docs   citedoc.DocumentService
	model  string
}

// NewAsker creates a new Asker. An empty model selects DefaultModel.
func NewAsker(client *genai.Client, docs citedoc.DocumentService, model string) *Asker {
	if model == "" {
		model = DefaultModel
	}
	return &Asker{client: client, docs: docs, model: model}
}

// Ask answers a natural language question about a project's documents.
func (a *Asker) Ask(ctx context.Context, projectID, question string) (*citedoc.Answer, error) {
	if projectID == "" {
		return nil, citedoc.Errorf(citedoc.EINVALID, "project ID required")
	}
	if strings.TrimSpace(question) == "" {
		return nil, citedoc.Errorf(citedoc.EINVALID, "question required")
	}

	docs, err := a.docs.FindDocuments(ctx, citedoc.DocumentFilter{
		ProjectID: &projectID,
		SortBy:    citedoc.SortByPosition,
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, citedoc.Errorf(citedoc.ENOTFOUND, "no documents found for project %q", projectID)
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: BuildUserPrompt(docs, question)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	if result == nil {
		return nil, citedoc.Errorf(citedoc.EINTERNAL, "gemini returned nil result")
	}

	return ParseAnswer(result.Text(), docs)
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about a collection of documents. " +
					"Answer based only on the documents provided. If the answer is not in the documents, say so and cite nothing. " +
					"For every claim, cite the supporting passage: give the document index, " +
					"a short verbatim quote, and the exact characters adjacent to it in the document: " +
					"the few words directly before the quote and directly after it, copied verbatim " +
					"including any spaces or line breaks that separate them from the quote.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema:   answerSchema(),
	}
}

func answerSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"answer", "citations"},
		Properties: map[string]*genai.Schema{
			"answer": {
				Type:        genai.TypeString,
				Description: "The answer to the question.",
			},
			"citations": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"document", "quote"},
					Properties: map[string]*genai.Schema{
						"document": {
							Type:        genai.TypeInteger,
							Description: "Index of the cited document.",
						},
						"quote": {
							Type:        genai.TypeString,
							Description: "Verbatim passage from the document.",
						},
						"before": {
							Type:        genai.TypeString,
							Description: "Exact characters directly before the quote, including any whitespace between them and the quote.",
						},
						"after": {
							Type:        genai.TypeString,
							Description: "Exact characters directly after the quote, including any whitespace between the quote and them.",
						},
					},
				},
			},
		},
	}
}

// BuildUserPrompt builds the user prompt containing the documents and question.
// Documents are numbered from 1.
func BuildUserPrompt(docs []*citedoc.Document, question string) string {
	var sb strings.Builder
	sb.WriteString("<documents>\n")
	for i, doc := range docs {
		sb.WriteString("<document>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<title>%s</title>\n", doc.DisplayName())
		fmt.Fprintf(&sb, "<source>%s</source>\n", doc.Source)
		fmt.Fprintf(&sb, "<content>%s</content>\n", doc.Content)
		sb.WriteString("</document>\n")
	}
	sb.WriteString("</documents>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}

type answerPayload struct {
	Answer    string            `json:"answer"`
	Citations []citationPayload `json:"citations"`
}

type citationPayload struct {
	Document int    `json:"document"`
	Quote    string `json:"quote"`
	Before   string `json:"before"`
	After    string `json:"after"`
}

// ParseAnswer decodes a JSON answer produced for docs. Citation indices are
// mapped back to document IDs; citations with an unknown index or an empty
// quote are dropped.
func ParseAnswer(raw string, docs []*citedoc.Document) (*citedoc.Answer, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")

	var payload answerPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, citedoc.Errorf(citedoc.EINTERNAL, "malformed answer from model: %v", err)
	}

	answer := &citedoc.Answer{Text: strings.TrimSpace(payload.Answer)}
	for _, c := range payload.Citations {
		if c.Document < 1 || c.Document > len(docs) {
			continue
		}
		if strings.TrimSpace(c.Quote) == "" {
			continue
		}
		answer.Citations = append(answer.Citations, citedoc.Citation{
			DocumentID: docs[c.Document-1].ID,
			Quote:      c.Quote,
			Before:     c.Before,
			After:      c.After,
		})
	}
	return answer, nil
}
