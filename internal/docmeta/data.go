package docmeta

// Metadata is the §6 external interface's second return value: a bundle of
// document-level facts gathered independently of the content tree the core
// engine walks. Every field is produced by first-match-in-document-order
// lookups; none of them feed back into candidate scoring.
type Metadata struct {
	pageTitle     string
	articleTitle  string
	byline        string
	description   string
	siteName      string
	publishedTime string
}

// NewMetadata constructs an immutable Metadata bundle.
func NewMetadata(
	pageTitle string,
	articleTitle string,
	byline string,
	description string,
	siteName string,
	publishedTime string,
) Metadata {
	return Metadata{
		pageTitle:     pageTitle,
		articleTitle:  articleTitle,
		byline:        byline,
		description:   description,
		siteName:      siteName,
		publishedTime: publishedTime,
	}
}

// PageTitle returns the document's page title.
func (m Metadata) PageTitle() string {
	return m.pageTitle
}

// ArticleTitle returns the best-guess title of the article itself, which
// may differ from the page title (e.g. a site name suffix in <title>).
func (m Metadata) ArticleTitle() string {
	return m.articleTitle
}

// Byline returns the credited author string, if any meta tag carries one.
func (m Metadata) Byline() string {
	return m.byline
}

// Description returns a short summary, from meta tags or the first
// paragraph of body text.
func (m Metadata) Description() string {
	return m.description
}

// SiteName returns the owning site's name, from og:site_name or
// application-name.
func (m Metadata) SiteName() string {
	return m.siteName
}

// PublishedTime returns the article's publication timestamp as found in
// the document, unparsed (callers that need a time.Time must parse it
// themselves; formats vary too widely across sites to normalize here).
func (m Metadata) PublishedTime() string {
	return m.publishedTime
}
