package sources

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hsolkim/seaboard/internal/model"
	"github.com/hsolkim/seaboard/internal/textnorm"
)

// tnNumericDateRe matches the MM.DD.YYYY tokens the TNECD news listing
// prints next to each entry. The resolver rearranges the token before
// parsing; this adapter only has to find it.
var tnNumericDateRe = regexp.MustCompile(`\b\d{2}\.\d{2}\.\d{4}\b`)

// TennesseeECDAdapter extracts the Tennessee Department of Economic and
// Community Development news listing.
type TennesseeECDAdapter struct{}

// NewTennesseeECDAdapter creates the adapter.
func NewTennesseeECDAdapter() *TennesseeECDAdapter {
	return &TennesseeECDAdapter{}
}

func (a *TennesseeECDAdapter) Name() string { return "tnecd-news" }

func (a *TennesseeECDAdapter) CanHandle(host string) bool {
	return hostMatches(host, "tnecd.com") || hostMatches(host, "tn.gov")
}

// Extract walks the /news/ entry links. The numeric date token sits in the
// entry block around the link, occasionally inside the link text itself;
// when found there it is stripped from the title.
func (a *TennesseeECDAdapter) Extract(doc *goquery.Document, base *url.URL, src model.SourceConfig, maxItems int) []RawItem {
	var items []RawItem

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		link := resolveLink(base, href)
		if link == "" || !acceptLink(link, base, src) {
			return
		}

		parsed, err := url.Parse(link)
		if err != nil || !strings.Contains(parsed.Path, "/news/") || strings.Trim(parsed.Path, "/") == "news" {
			return
		}

		title := anchorText(sel)
		dateText := tnNumericDateRe.FindString(title)
		if dateText != "" {
			title = textnorm.Normalize(strings.Replace(title, dateText, " ", 1))
		} else if parent := sel.Parent(); parent.Length() > 0 {
			dateText = tnNumericDateRe.FindString(textnorm.Normalize(parent.Text()))
		}

		if title == "" {
			return
		}

		items = append(items, RawItem{Title: title, URL: link, DateText: dateText})
	})

	return dedupeAndCap(items, maxItems)
}
