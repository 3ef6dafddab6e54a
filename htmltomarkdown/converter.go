// Package htmltomarkdown renders answer and description markup as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/zhextract"
)

// DefaultDomain resolves site-relative links such as /question/12345678.
const DefaultDomain = "https://www.zhihu.com"

// Ensure Converter implements zhextract.Converter at compile time.
var _ zhextract.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain sets the base used for relative links and images.
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		domain: DefaultDomain,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms an HTML fragment into Markdown. Lazy-loaded images
// are resolved to their real source first.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", zhextract.Errorf(zhextract.EINVALID, "empty HTML input")
	}

	html, err := resolveImages(html)
	if err != nil {
		return "", err
	}

	return c.conv.ConvertString(html, converter.WithDomain(c.domain))
}

// lazySourceAttrs hold the real image URL, best quality first.
var lazySourceAttrs = []string{"data-original", "data-actualsrc"}

// resolveImages points lazy images at their real source and drops the
// noscript copies that duplicate them.
func resolveImages(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", zhextract.Errorf(zhextract.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("noscript").Remove()
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		for _, attr := range lazySourceAttrs {
			if src, ok := img.Attr(attr); ok && src != "" {
				img.SetAttr("src", src)
				return
			}
		}
	})

	return doc.Find("body").Html()
}
