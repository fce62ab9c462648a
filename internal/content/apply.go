package content

import (
	"sort"
	"strings"
)

// Element IDs the host page must expose.
const (
	IDHeaderTitle     = "header-title"
	IDHeaderSubtitle  = "header-subtitle"
	IDNavBio          = "nav-bio"
	IDNavAcademic     = "nav-academic"
	IDNavWriter       = "nav-writer"
	IDBioTitle        = "bio-title"
	IDBioContent      = "bio-content"
	IDAcademicTitle   = "academic-title"
	IDAcademicContent = "academic-content"
	IDOrcidDesc       = "orcid-desc"
	IDOrcidBtn        = "orcid-btn"
	IDScholarDesc     = "scholar-desc"
	IDScholarBtn      = "scholar-btn"
	IDWriterTitle     = "writer-title"
	IDBookTitle       = "book-title"
	IDBookDescription = "book-description"
	IDYearLabel       = "year-label"
	IDBookBtn         = "book-btn"
	IDFooterName      = "footer-name"
	IDFooterDept      = "footer-dept"
	IDFooterUni       = "footer-uni"
)

// Nav entries are written as HTML with a fixed icon in front of the label.
const (
	IconBio      = `<i class="fas fa-user"></i>`
	IconAcademic = `<i class="fas fa-graduation-cap"></i>`
	IconWriter   = `<i class="fas fa-book"></i>`
)

// Target is a page whose elements can be overwritten by ID. Both setters
// report false when no element carries the ID.
type Target interface {
	SetText(id, text string) bool
	SetHTML(id, html string) bool
}

// WriteStatus is the outcome of one field write.
type WriteStatus int

const (
	// Skipped: the field was missing, the element kept its value.
	Skipped WriteStatus = iota
	Written
	// NoElement: the field was present but the page lacks the ID.
	NoElement
)

func (s WriteStatus) String() string {
	switch s {
	case Written:
		return "written"
	case NoElement:
		return "no-element"
	default:
		return "skipped"
	}
}

// Report records, per element ID, what Apply did. IDs of sections absent
// from the content do not appear.
type Report map[string]WriteStatus

// Written lists the IDs that were overwritten, sorted.
func (r Report) Written() []string {
	return r.with(Written)
}

// Skipped lists the IDs whose field was missing, sorted.
func (r Report) Skipped() []string {
	return r.with(Skipped)
}

func (r Report) with(status WriteStatus) []string {
	var ids []string
	for id, s := range r {
		if s == status {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (r Report) text(t Target, id string, f Field) {
	if !f.Ok() {
		r[id] = Skipped
		return
	}
	r.result(id, t.SetText(id, f.Value))
}

func (r Report) html(t Target, id, prefix string, f Field) {
	if !f.Ok() {
		r[id] = Skipped
		return
	}
	value := f.Value
	if prefix != "" {
		value = prefix + " " + value
	}
	r.result(id, t.SetHTML(id, value))
}

func (r Report) result(id string, found bool) {
	if found {
		r[id] = Written
	} else {
		r[id] = NoElement
	}
}

// AcademicHTML joins whichever paragraphs are present. The second result
// is false when neither is.
func (a Academic) AcademicHTML() (string, bool) {
	var b strings.Builder
	for _, p := range []Field{a.Paragraph1, a.Paragraph2} {
		if p.Ok() {
			b.WriteString(`<p class="paragraph-spaced">`)
			b.WriteString(p.Value)
			b.WriteString(`</p>`)
		}
	}
	return b.String(), a.Paragraph1.Ok() || a.Paragraph2.Ok()
}

// Apply writes every present field into t. Missing fields and absent
// sections leave the page as it was.
func (c Content) Apply(t Target) Report {
	r := Report{}
	if h := c.Header; h != nil {
		r.text(t, IDHeaderTitle, h.Title)
		r.text(t, IDHeaderSubtitle, h.Subtitle)
	}
	if n := c.Nav; n != nil {
		r.html(t, IDNavBio, IconBio, n.Bio)
		r.html(t, IDNavAcademic, IconAcademic, n.Academic)
		r.html(t, IDNavWriter, IconWriter, n.Writer)
	}
	if b := c.Biography; b != nil {
		r.text(t, IDBioTitle, b.Title)
		r.html(t, IDBioContent, "", b.Content)
	}
	if a := c.Academic; a != nil {
		r.text(t, IDAcademicTitle, a.Title)
		if html, ok := a.AcademicHTML(); ok {
			r.html(t, IDAcademicContent, "", Set(html))
		} else {
			// No paragraphs means a missing field: keep the old block, never clear it.
			r[IDAcademicContent] = Skipped
		}
		r.text(t, IDOrcidDesc, a.OrcidDesc)
		r.text(t, IDOrcidBtn, a.OrcidBtn)
		r.text(t, IDScholarDesc, a.ScholarDesc)
		r.text(t, IDScholarBtn, a.ScholarBtn)
	}
	if w := c.Writer; w != nil {
		r.text(t, IDWriterTitle, w.Title)
		r.text(t, IDBookTitle, w.BookTitle)
		r.text(t, IDBookDescription, w.Description)
		r.text(t, IDYearLabel, w.YearLabel)
		r.text(t, IDBookBtn, w.BookBtn)
	}
	if f := c.Footer; f != nil {
		r.text(t, IDFooterName, f.Name)
		r.text(t, IDFooterDept, f.Dept)
		r.text(t, IDFooterUni, f.Uni)
	}
	return r
}
