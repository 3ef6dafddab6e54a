package zhextract

import (
	"maps"
	"strconv"
)

// Record maps a field name to an extracted value. Values are strings or ints.
// A key is present only when its source fragment was found in the markup.
type Record map[string]any

// Field names shared by extractors and consumers.
const (
	FieldAgree        = "agree"
	FieldAnswerID     = "answer_id"
	FieldAnswers      = "answers"
	FieldAuthorID     = "author_id"
	FieldAuthorLogo   = "author_logo"
	FieldAuthorName   = "author_name"
	FieldAuthorSign   = "author_sign"
	FieldCollectionID = "collection_id"
	FieldComment      = "comment"
	FieldCommitDate   = "commit_date"
	FieldContent      = "content"
	FieldDescription  = "description"
	FieldEditDate     = "edit_date"
	FieldFollower     = "follower"
	FieldFollowers    = "followers"
	FieldHref         = "href"
	FieldLogo         = "logo"
	FieldName         = "name"
	FieldNoRecordFlag = "no_record_flag"
	FieldQuestionID   = "question_id"
	FieldSign         = "sign"
	FieldTitle        = "title"
	FieldTopicID      = "topic_id"
	FieldViews        = "views"
)

// String returns the value of key formatted as a string.
// The boolean is false when the key is absent.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	}
	return "", false
}

// Get returns the string value of key, or "" when it is absent.
func (r Record) Get(key string) string {
	s, _ := r.String(key)
	return s
}

// Has reports whether key is present.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	return maps.Clone(r)
}

// Compose returns a new record holding every key of secondary overwritten by
// every key of primary. Neither input is modified.
func Compose(primary, secondary Record) Record {
	out := make(Record, len(primary)+len(secondary))
	maps.Copy(out, secondary)
	maps.Copy(out, primary)
	return out
}
