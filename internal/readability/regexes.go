package readability

import "regexp"

// The regex set is the only process-wide state the engine needs (§5, §9
// "Global state"): compiled once, case-insensitive, never mutated.
var (
	unlikelyCandidatesRegex = regexp.MustCompile(`(?i)-ad-|ai2html|banner|breadcrumbs|combx|comment|community|cover-wrap|disqus|extra|footer|gdpr|header|legends|menu|modal|related|remark|replies|rss|shoutbox|sidebar|skyscraper|social|sponsor|supplemental|ad-break|agegate|pagination|pager|popup|yom-remote`)
	maybeCandidateRegex     = regexp.MustCompile(`(?i)and|article|body|column|main|shadow`)

	positiveClassRegex = regexp.MustCompile(`(?i)article|body|content|entry|hentry|h-entry|main|page|pagination|post|text|blog|story`)
	negativeClassRegex = regexp.MustCompile(`(?i)-ad-|hidden|^hid$|\shid$|\shid\s|^hid\s|banner|combx|comment|com-|contact|foot|footer|footnote|gdpr|masthead|media|meta|modal|outbrain|promo|related|scroll|share|shoutbox|sidebar|skyscraper|sponsor|shopping|tags|tool|widget`)

	videoEmbedRegex = regexp.MustCompile(`(?i)//(www\.)?(dailymotion|youtube|youtube-nocookie|player\.vimeo)\.com`)
	protocolRegex   = regexp.MustCompile(`^\w+:`)
)

func isUnlikelyCandidate(classOrID string) bool {
	return unlikelyCandidatesRegex.MatchString(classOrID) && !maybeCandidateRegex.MatchString(classOrID)
}
