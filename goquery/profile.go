package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/zhextract"
)

const (
	profileHeader  = "div.zm-profile-header "
	profileDetails = "div.zm-profile-details-wrap "
	mainSidebar    = "div.zu-main-sidebar "
)

// ActivityFields are the per-category activity counts of a profile, each
// read from the navbar link whose href ends with "/<field>".
var ActivityFields = []string{"asks", "answers", "posts", "collections", "logs"}

var activityLabels = map[string]string{
	"asks":        "提问数",
	"answers":     "回答数",
	"posts":       "文章数",
	"collections": "收藏数",
	"logs":        "公共编辑数",
}

// DetailFields are the profile detail counts in the order the site renders
// them. Values are paired by position, so a markup reordering mislabels
// them silently.
var DetailFields = []string{"agree", "thanks", "collected", "shared"}

var authorProfileEntity = &Entity{
	Kind:  zhextract.KindAuthorProfile,
	Rules: profileRules(),
}

func profileRules() []Rule {
	rules := []Rule{
		{Field: zhextract.FieldAuthorID, Label: "用户id", Selectors: []string{profileHeader + "div.profile-navbar a.item"}, Value: Attr("href"), Transform: Map(zhextract.AuthorID)},
		{Field: "hash", Label: "用户hash", Selectors: []string{`script[data-name="current_people"]`}, Value: scriptHash},
		{Field: zhextract.FieldName, Label: "用户名", Selectors: []string{"div.title-section a.name"}},
		{Field: zhextract.FieldSign, Label: "用户签名", Selectors: []string{"div.title-section span[title]"}, Value: Attr("title")},
		{Field: zhextract.FieldLogo, Label: "用户头像", Selectors: []string{profileHeader + "div.zm-profile-header-avatar-container img.avatar"}, Value: Attr("src")},
		{Field: zhextract.FieldDescription, Label: "用户详情", Selectors: []string{profileHeader + ".description span.content"}, Value: InnerHTML()},
		{Field: "weibo", Label: "用户微博", Selectors: []string{profileHeader + "a.zm-profile-header-user-weibo"}, Value: Attr("href")},
		{Field: "gender", Label: "用户性别", Selectors: []string{profileHeader + `span.edit-wrap input[checked="checked"]`}, Value: Attr("class"), Transform: Map(firstClass)},
	}
	rules = append(rules, activityRules()...)
	return append(rules,
		Rule{Field: DetailFields[0], Label: "用户赞同-感谢-被收藏数", Selectors: []string{profileDetails + ".zm-profile-module-desc span strong"}, Apply: applyDetailCounts},
		Rule{Field: "followee", Label: "用户关注数", Selectors: []string{mainSidebar + `div.zm-profile-side-following a[href$="/followees"] strong`}},
		Rule{Field: zhextract.FieldFollower, Label: "用户粉丝数", Selectors: []string{mainSidebar + `div.zm-profile-side-following a[href$="/followers"] strong`}},
		Rule{Field: "followed_column", Label: "用户关注专栏数", Selectors: []string{mainSidebar + `.zm-profile-side-section-title a[href*="/columns/"] strong`}, Transform: Digits},
		Rule{Field: "followed_topic", Label: "用户关注话题数", Selectors: []string{mainSidebar + `.zm-profile-side-section-title a[href$="/topics"] strong`}, Transform: Digits},
		Rule{Field: "viewed", Label: "用户被浏览数", Selectors: []string{mainSidebar + ".zm-profile-side-section .zm-side-section-inner span.zg-gray-normal strong"}},
	)
}

func activityRules() []Rule {
	rules := make([]Rule, 0, len(ActivityFields))
	for _, field := range ActivityFields {
		rules = append(rules, Rule{
			Field:     field,
			Label:     activityLabels[field],
			Selectors: []string{profileHeader + `div.profile-navbar a[href$="/` + field + `"] span.num`},
			Transform: Digits,
		})
	}
	return rules
}

// applyDetailCounts pairs the strong numbers with DetailFields by position.
// Numbers beyond the known fields are ignored.
func applyDetailCounts(sel *goquery.Selection, b *Builder) {
	sel.Each(func(i int, s *goquery.Selection) {
		if i >= len(DetailFields) {
			return
		}
		b.Set(DetailFields[i], zhextract.MatchInt(s.Text()))
	})
}

// scriptHash reads the hash token from the current_people payload, which
// ends with the quoted hash after the last comma.
func scriptHash(sel *goquery.Selection) (string, bool) {
	payload := sel.First().Text()
	last := payload[strings.LastIndex(payload, ",")+1:]
	parts := strings.Split(last, `"`)
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

// firstClass returns the first token of a multi-valued class attribute.
func firstClass(class string) string {
	fields := strings.Fields(class)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

var topicEntity = &Entity{
	Kind: zhextract.KindTopic,
	Rules: []Rule{
		{Field: zhextract.FieldTitle, Label: "话题标题", Selectors: []string{"#zh-topic-title h1.zm-editable-content"}},
		{Field: zhextract.FieldTopicID, Label: "话题id", Selectors: []string{`link[rel="canonical"]`}, Value: Attr("href"), Transform: Map(zhextract.TopicID)},
		{Field: zhextract.FieldLogo, Label: "话题图标", Selectors: []string{"img.zm-avatar-editor-preview"}, Value: Attr("src")},
		{Field: zhextract.FieldFollower, Label: "话题关注人数", Selectors: []string{"div.zm-topic-side-followers-info a strong"}},
		{Field: zhextract.FieldDescription, Label: "话题描述", Selectors: []string{"#zh-topic-desc div.zm-editable-content"}, Value: InnerHTML()},
	},
}

var collectionEntity = &Entity{
	Kind: zhextract.KindCollection,
	Rules: []Rule{
		{Field: zhextract.FieldTitle, Label: "收藏夹标题", Selectors: []string{"h2#zh-fav-head-title"}},
		{Field: zhextract.FieldCollectionID, Label: "收藏夹id", Selectors: []string{mobileAgentSelector}, Value: Attr("content"), Transform: Map(zhextract.CollectionID)},
		{Field: zhextract.FieldFollower, Label: "收藏夹关注人数", Selectors: []string{`div.zm-side-section div.zm-side-section-inner div.zg-gray-normal a[href*="followers"]`}},
		{Field: zhextract.FieldDescription, Label: "收藏夹描述", Selectors: []string{"#zh-fav-head-description-source"}, Value: InnerHTML()},
		{Field: zhextract.FieldComment, Label: "收藏夹评论数", Selectors: []string{`#zh-list-meta-wrap a[name="addcomment"]`}, Transform: Digits},
	},
}
