package page

import "github.com/PuerkitoBio/goquery"

// Class names shared with web/static/js/chrome.js.
const (
	ClassActive       = "active"
	ClassFadeOnScroll = "fade-on-scroll"
	ClassFadeIn       = "fade-in"
	ClassShow         = "show"
)

// IDCurrentLang is the visible language indicator on the dropdown button.
const IDCurrentLang = "current-lang"

// PrepareChrome sets the classes the browser script expects on first
// paint: section cards start hidden for the fade-in observer, the first
// in-page nav link is active and the current language option is marked.
func (p *Page) PrepareChrome(lang string) {
	p.doc.Find("html").SetAttr("lang", lang)

	p.doc.Find(".section-card").AddClass(ClassFadeOnScroll)

	links := p.doc.Find(`nav a[href^="#"]`)
	links.RemoveClass(ClassActive)
	links.First().AddClass(ClassActive)

	p.doc.Find(".dropdown-content a").
		RemoveClass(ClassActive).
		FilterFunction(func(_ int, s *goquery.Selection) bool {
			code, _ := s.Attr("data-lang")
			return code == lang
		}).
		AddClass(ClassActive)
}
