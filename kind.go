package zhextract

import "strings"

// EntityKind identifies the kind of entity a record describes.
type EntityKind string

// Entity kinds known to the extractors.
const (
	KindAuthor          EntityKind = "author"
	KindAnswer          EntityKind = "answer"
	KindSimpleAnswer    EntityKind = "simple_answer"
	KindQuestionSummary EntityKind = "question_summary"
	KindQuestionDetail  EntityKind = "question_detail"
	KindAuthorProfile   EntityKind = "author_profile"
	KindTopic           EntityKind = "topic"
	KindCollection      EntityKind = "collection"
)

// PageVariant identifies the layout of a page.
type PageVariant string

// Supported page variants.
const (
	VariantAnswerList     PageVariant = "answers"
	VariantAuthorActivity PageVariant = "author"
	VariantTopic          PageVariant = "topic"
	VariantCollection     PageVariant = "collection"
	VariantQuestion       PageVariant = "question"
)

// PageVariants lists every supported variant.
func PageVariants() []PageVariant {
	return []PageVariant{
		VariantAnswerList,
		VariantAuthorActivity,
		VariantTopic,
		VariantCollection,
		VariantQuestion,
	}
}

// ParsePageVariant returns the variant named by s.
// An empty string selects the answer list layout.
func ParsePageVariant(s string) (PageVariant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return VariantAnswerList, nil
	}
	for _, v := range PageVariants() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", Errorf(EINVALID, "unknown page variant %q", s)
}

// VariantKinds names the entity kinds of the records a page variant yields.
// Extra is empty for variants without a page-level record.
type VariantKinds struct {
	Answer   EntityKind
	Question EntityKind
	Extra    EntityKind
}

// Kinds returns the entity kinds produced by the variant. Unknown variants
// report the answer list kinds.
func (v PageVariant) Kinds() VariantKinds {
	listing := VariantKinds{Answer: KindSimpleAnswer, Question: KindQuestionSummary}
	switch v {
	case VariantAuthorActivity:
		listing.Extra = KindAuthorProfile
	case VariantTopic:
		listing.Extra = KindTopic
	case VariantCollection:
		listing.Extra = KindCollection
	case VariantQuestion:
		return VariantKinds{Answer: KindAnswer, Question: KindQuestionDetail}
	}
	return listing
}
