package mdconvert

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kaelwright/readable/internal/docmeta"
	"github.com/kaelwright/readable/pkg/failure"
	"golang.org/x/net/html"
)

// Format selects how Render encodes a converted document. It mirrors
// config.OutputFormat as a separate type; the CLI converts one into the
// other.
type Format string

const (
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// jsonDocument is the wire shape of --format json: the extracted metadata
// alongside the rendered markdown body and the link refs the conversion
// rule collected along the way.
type jsonDocument struct {
	PageTitle     string    `json:"pageTitle"`
	ArticleTitle  string    `json:"articleTitle"`
	Byline        string    `json:"byline,omitempty"`
	Description   string    `json:"description,omitempty"`
	SiteName      string    `json:"siteName,omitempty"`
	PublishedTime string    `json:"publishedTime,omitempty"`
	ContentHash   string    `json:"contentHash,omitempty"`
	Markdown      string    `json:"markdown"`
	Links         []linkRef `json:"links,omitempty"`
}

type linkRef struct {
	URL  string `json:"url"`
	Kind string `json:"kind"`
}

// Render converts contentNode with rule and encodes the result in format,
// enriching json output with meta extracted from the original document
// (meta is typically absent from contentNode: the engine detaches the
// selected subtree from <head>) and contentHash, a caller-computed digest
// of contentNode's serialized HTML (see pkg/hashutil) used as an idempotency marker
// for repeat extractions of the same page.
func Render(
	rule ConvertRule,
	contentNode *html.Node,
	meta docmeta.Metadata,
	format Format,
	contentHash string,
) ([]byte, failure.ClassifiedError) {
	switch format {
	case FormatText:
		return FlattenText(contentNode), nil
	case FormatHTML:
		var buf bytes.Buffer
		if err := html.Render(&buf, contentNode); err != nil {
			return nil, &ConversionError{
				Message:   err.Error(),
				Retryable: false,
				Cause:     ErrCauseConversionFailure,
			}
		}
		return buf.Bytes(), nil
	case FormatMarkdown:
		result, err := rule.Convert(contentNode)
		if err != nil {
			return nil, err
		}
		return result.GetMarkdownContent(), nil
	case FormatJSON:
		result, err := rule.Convert(contentNode)
		if err != nil {
			return nil, err
		}
		return renderJSON(result, meta, contentHash)
	default:
		return nil, &ConversionError{
			Message:   fmt.Sprintf("unknown output format %q", format),
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
		}
	}
}

func renderJSON(result ConversionResult, meta docmeta.Metadata, contentHash string) ([]byte, failure.ClassifiedError) {
	links := make([]linkRef, 0, len(result.GetLinkRefs()))
	for _, l := range result.GetLinkRefs() {
		links = append(links, linkRef{URL: l.GetRaw(), Kind: string(l.GetKind())})
	}

	doc := jsonDocument{
		PageTitle:     meta.PageTitle(),
		ArticleTitle:  meta.ArticleTitle(),
		Byline:        meta.Byline(),
		Description:   meta.Description(),
		SiteName:      meta.SiteName(),
		PublishedTime: meta.PublishedTime(),
		ContentHash:   contentHash,
		Markdown:      string(result.GetMarkdownContent()),
		Links:         links,
	}

	encoded, jsonErr := json.MarshalIndent(doc, "", "  ")
	if jsonErr != nil {
		return nil, &ConversionError{
			Message:   jsonErr.Error(),
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
		}
	}
	return encoded, nil
}
