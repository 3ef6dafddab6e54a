package zhextract

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ID patterns accepted by ExtractID.
const (
	QuestionIDPattern   = `\d{8}`
	AnswerIDPattern     = `\d{8}`
	TopicIDPattern      = `\d+`
	CollectionIDPattern = `\d+`
	AuthorIDPattern     = `[^/'"]+`
)

// Relative date keywords used by the site.
const (
	Yesterday = "昨天"
	Today     = "今天"
)

// DateLayout is the ISO date layout of resolved dates.
const DateLayout = "2006-01-02"

// CanonicalAnswerURLFormat is the template for synthesized answer links.
const CanonicalAnswerURLFormat = "http://www.zhihu.com/question/%s/answer/%s"

var (
	digitsRe = regexp.MustCompile(`\d+`)
	dateRe   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

	questionIDRe   = idRegexp("question", QuestionIDPattern)
	answerIDRe     = idRegexp("answer", AnswerIDPattern)
	topicIDRe      = idRegexp("topic", TopicIDPattern)
	collectionIDRe = idRegexp("collection", CollectionIDPattern)
	authorIDRe     = idRegexp("people", AuthorIDPattern)
)

// MatchFirst returns the first match of pattern in text, or def when
// nothing matches. An invalid pattern also yields def.
func MatchFirst(pattern, text, def string) string {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return def
	}
	return matchFirst(re, text, def)
}

func matchFirst(re *regexp.Regexp, text, def string) string {
	loc := re.FindStringIndex(text)
	if loc == nil {
		return def
	}
	return text[loc[0]:loc[1]]
}

// MatchInt returns the first run of digits in text, or "0".
func MatchInt(text string) string {
	return matchFirst(digitsRe, text, "0")
}

// ExtractID returns the part of link right after "<segment>/" that matches
// idPattern, or "" when there is none.
func ExtractID(link, segment, idPattern string) string {
	re, err := regexp.Compile(regexp.QuoteMeta(segment) + "/(" + idPattern + ")")
	if err != nil {
		return ""
	}
	return extractID(re, link)
}

func idRegexp(segment, idPattern string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(segment) + "/(" + idPattern + ")")
}

func extractID(re *regexp.Regexp, link string) string {
	m := re.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	return m[1]
}

// QuestionID extracts the 8 digit question id from a link.
func QuestionID(link string) string { return extractID(questionIDRe, link) }

// AnswerID extracts the 8 digit answer id from a link.
func AnswerID(link string) string { return extractID(answerIDRe, link) }

// TopicID extracts the topic id from a link.
func TopicID(link string) string { return extractID(topicIDRe, link) }

// CollectionID extracts the collection id from a link.
func CollectionID(link string) string { return extractID(collectionIDRe, link) }

// AuthorID extracts the author id from a profile link.
func AuthorID(link string) string { return extractID(authorIDRe, link) }

// ResolveRelativeDate turns a displayed date into YYYY-MM-DD relative to now.
// Text without a relative keyword or an ISO date is returned unchanged.
func ResolveRelativeDate(text string, now time.Time) string {
	if strings.Contains(text, Yesterday) {
		return now.AddDate(0, 0, -1).Format(DateLayout)
	}
	if strings.Contains(text, Today) {
		return now.Format(DateLayout)
	}
	return matchFirst(dateRe, text, text)
}

// CanonicalAnswerURL builds the answer link from its question and answer ids.
func CanonicalAnswerURL(questionID, answerID string) string {
	return fmt.Sprintf(CanonicalAnswerURLFormat, questionID, answerID)
}
