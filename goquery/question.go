package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/zhextract"
)

// Question title links differ between feeds and collections.
var questionLinkSelectors = []string{
	"h2 a.question_link",
	`h2.zm-item-title a[target="_blank"]`,
}

const mobileAgentSelector = `meta[http-equiv="mobile-agent"]`

var questionSummaryEntity = &Entity{
	Kind: zhextract.KindQuestionSummary,
	Rules: []Rule{
		{Field: zhextract.FieldQuestionID, Label: "问题信息_id", Selectors: questionLinkSelectors, Value: Attr("href"), Transform: Map(zhextract.QuestionID)},
		{Field: zhextract.FieldTitle, Label: "问题信息_title", Selectors: questionLinkSelectors},
	},
}

var questionDetailEntity = &Entity{
	Kind: zhextract.KindQuestionDetail,
	Rules: []Rule{
		{Field: zhextract.FieldQuestionID, Label: "问题ID", Selectors: []string{mobileAgentSelector}, Value: Attr("content"), Transform: Map(zhextract.QuestionID)},
		{Field: zhextract.FieldTitle, Label: "问题标题", Selectors: []string{"#zh-question-title h2"}},
		{Field: zhextract.FieldDescription, Label: "问题描述", Selectors: []string{"#zh-question-detail div.zm-editable-content"}, Value: InnerHTML()},
		{Field: zhextract.FieldComment, Label: "问题评论数", Selectors: []string{`#zh-question-meta-wrap a[name="addcomment"]`}, Transform: Digits},
		{Field: zhextract.FieldViews, Label: "问题浏览次数", Selectors: []string{"div.zu-main-sidebar div.zm-side-section"}, Value: lastSectionStrong, Transform: Digits},
		{Field: zhextract.FieldFollowers, Label: "问题关注人数", Selectors: []string{"div.zu-main-sidebar div.zh-question-followers-sidebar div.zg-gray-normal strong"}, Transform: Digits},
		{Field: zhextract.FieldAnswers, Label: "问题回答数", Selectors: []string{"#zh-answers-title a.zg-link-litblue", "#zh-question-answer-num"}, Transform: Digits},
	},
}

// lastSectionStrong reads the first strong element of the last side
// section, which holds the view count.
func lastSectionStrong(sel *goquery.Selection) (string, bool) {
	strong := sel.Last().Find("strong").First()
	if strong.Length() == 0 {
		return "", false
	}
	return strong.Text(), true
}
