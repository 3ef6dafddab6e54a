package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/zhextract"
)

// Anonymous author placeholders.
const (
	AnonymousAuthorID   = "coder'sGirlFriend~"
	AnonymousAuthorLogo = "http://pic1.zhimg.com/da8e974dc_s.jpg"
	AnonymousAuthorName = "匿名用户"
)

// ForbidReprint is the copyright text marking answers that may not be reposted.
const ForbidReprint = "禁止转载"

const (
	answerStatusSelector = "div.answer-status"
	dateLinkSelector     = "a.answer-date-link"
	dateLinkWrapSelector = "span.answer-date-link-wrap"
	metaPanelSelector    = "div.zm-meta-panel"
)

var authorEntity = &Entity{
	Kind:  zhextract.KindAuthor,
	Scope: "div.zm-item-answer-author-info",
	Fallback: func(scope *goquery.Selection) (zhextract.Record, bool) {
		if scope.Find("img").Length() > 0 {
			return nil, false
		}
		return anonymousAuthor(), true
	},
	Rules: []Rule{
		{Field: zhextract.FieldAuthorID, Label: "用户ID", Selectors: []string{"a.zm-item-link-avatar"}, Value: Attr("href"), Transform: Map(zhextract.AuthorID)},
		{Field: zhextract.FieldAuthorSign, Label: "用户签名", Selectors: []string{"strong.zu-question-my-bio"}, Value: Attr("title")},
		{Field: zhextract.FieldAuthorLogo, Label: "用户头像", Selectors: []string{"img"}, Value: Attr("src")},
		{Field: zhextract.FieldAuthorName, Label: "用户名", Selectors: []string{"a.author-link"}},
	},
}

func anonymousAuthor() zhextract.Record {
	return zhextract.Record{
		zhextract.FieldAuthorID:   AnonymousAuthorID,
		zhextract.FieldAuthorSign: "",
		zhextract.FieldAuthorLogo: AnonymousAuthorLogo,
		zhextract.FieldAuthorName: AnonymousAuthorName,
	}
}

// answerEntity reads a fully rendered answer, as on a question page.
var answerEntity = &Entity{
	Kind: zhextract.KindAnswer,
	Skip: answerStatusSelector,
	Rules: []Rule{
		voteRule,
		{Field: zhextract.FieldContent, Label: "答案内容", Selectors: []string{"div.zm-editable-content"}, Value: InnerHTML()},
		{Field: zhextract.FieldEditDate, Label: "答案更新日期", Selectors: []string{metaPanelSelector + " " + dateLinkSelector}, Apply: applyDates},
		commentRule,
		noRecordRule,
		{Field: zhextract.FieldHref, Label: "问题id，答案id", Selectors: []string{metaPanelSelector + " " + dateLinkSelector}, Apply: applyHref},
	},
	Embed: []*Entity{authorEntity},
}

// simpleAnswerEntity reads an answer embedded in a feed, whose content,
// date and link live in an escaped HTML payload inside a textarea.
var simpleAnswerEntity = &Entity{
	Kind:     zhextract.KindSimpleAnswer,
	Skip:     answerStatusSelector,
	Fragment: "textarea.content",
	Rules: []Rule{
		voteRule,
		{Field: zhextract.FieldContent, Label: "答案内容", Selectors: []string{"body"}, Value: contentWithoutDateChrome, Fragment: true},
		{Field: zhextract.FieldEditDate, Label: "答案更新日期", Selectors: []string{dateLinkSelector}, Apply: applyDates, Fragment: true},
		commentRule,
		noRecordRule,
		{Field: zhextract.FieldHref, Label: "问题id，答案id", Selectors: []string{dateLinkSelector}, Apply: applyHref, Fragment: true},
	},
	Embed: []*Entity{authorEntity},
}

var (
	voteRule = Rule{
		Field:     zhextract.FieldAgree,
		Label:     "答案赞同数",
		Selectors: []string{"div.zm-item-vote-info"},
		Value:     Attr("data-votecount"),
	}
	commentRule = Rule{
		Field:     zhextract.FieldComment,
		Label:     "评论数",
		Selectors: []string{metaPanelSelector + ` a[name="addcomment"]`},
		Transform: Digits,
	}
	noRecordRule = Rule{
		Field:     zhextract.FieldNoRecordFlag,
		Label:     "禁止转载标志",
		Selectors: []string{metaPanelSelector + " a.copyright"},
		Transform: func(raw string) any {
			if strings.Contains(raw, ForbidReprint) {
				return 1
			}
			return 0
		},
	}
)

// contentWithoutDateChrome serializes the payload body after removing the
// date link wrapper from a copy of it.
func contentWithoutDateChrome(sel *goquery.Selection) (string, bool) {
	body := sel.First().Clone()
	body.Find(dateLinkWrapSelector).Remove()
	return TextOf(body), true
}

// applyDates sets edit_date from the link text and commit_date from its
// data-tip. Without a data-tip both come from the text.
func applyDates(sel *goquery.Selection, b *Builder) {
	link := sel.First()
	edited := zhextract.ResolveRelativeDate(strings.TrimSpace(link.Text()), b.Now())
	committed := edited
	if tip := AttrOf(link, "data-tip", ""); tip != "" {
		committed = zhextract.ResolveRelativeDate(tip, b.Now())
	}
	b.Set(zhextract.FieldEditDate, edited)
	b.Set(zhextract.FieldCommitDate, committed)
}

// applyHref derives question_id, answer_id and the canonical href from a
// single link. Nothing is set unless both ids are present.
func applyHref(sel *goquery.Selection, b *Builder) {
	link := AttrOf(sel, "href", "")
	questionID := zhextract.QuestionID(link)
	answerID := zhextract.AnswerID(link)
	if questionID == "" || answerID == "" {
		b.Missing(zhextract.FieldHref, "问题id，答案id")
		return
	}
	b.Set(zhextract.FieldQuestionID, questionID)
	b.Set(zhextract.FieldAnswerID, answerID)
	b.Set(zhextract.FieldHref, zhextract.CanonicalAnswerURL(questionID, answerID))
}
