package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePage is a Target backed by a map of element ID to inner HTML.
type fakePage map[string]string

func (p fakePage) SetText(id, text string) bool {
	if _, ok := p[id]; !ok {
		return false
	}
	p[id] = "text:" + text
	return true
}

func (p fakePage) SetHTML(id, html string) bool {
	if _, ok := p[id]; !ok {
		return false
	}
	p[id] = "html:" + html
	return true
}

var allIDs = []string{
	IDHeaderTitle, IDHeaderSubtitle,
	IDNavBio, IDNavAcademic, IDNavWriter,
	IDBioTitle, IDBioContent,
	IDAcademicTitle, IDAcademicContent, IDOrcidDesc, IDOrcidBtn, IDScholarDesc, IDScholarBtn,
	IDWriterTitle, IDBookTitle, IDBookDescription, IDYearLabel, IDBookBtn,
	IDFooterName, IDFooterDept, IDFooterUni,
}

func newFakePage() fakePage {
	p := fakePage{}
	for _, id := range allIDs {
		p[id] = "prior"
	}
	return p
}

func changed(p fakePage) []string {
	var out []string
	for _, id := range allIDs {
		if p[id] != "prior" {
			out = append(out, id)
		}
	}
	return out
}

func TestSplit(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := Split("")
		assert.True(t, errors.Is(err, ErrEmptyContent))
	})

	t.Run("sections in any order", func(t *testing.T) {
		s, err := Split("=== FOOTER\nNAME:A\n=== HEADER\nTitle\nSub\n")
		require.NoError(t, err)
		assert.Equal(t, "NAME:A", s[SectionFooter])
		assert.Equal(t, "Title\nSub\n", s[SectionHeader])
		assert.ElementsMatch(t,
			[]Section{SectionNav, SectionBiography, SectionAcademic, SectionWriter},
			s.Missing())
	})

	t.Run("first occurrence wins", func(t *testing.T) {
		s, err := Split("=== NAV\na\nb\nc\n=== NAV\nx\ny\nz\n")
		require.NoError(t, err)
		assert.Equal(t, "a\nb\nc", s[SectionNav])
	})

	t.Run("crlf normalized", func(t *testing.T) {
		s, err := Split("=== HEADER\r\nTitle\r\nSub\r\n=== NAV\r\na\r\n")
		require.NoError(t, err)
		assert.Equal(t, "Title\nSub", s[SectionHeader])
	})

	t.Run("unknown sections ignored", func(t *testing.T) {
		s, err := Split("=== EXTRA\nfoo\n")
		require.NoError(t, err)
		assert.Empty(t, s)
	})
}

func TestSingleSectionOnlyTouchesItsFields(t *testing.T) {
	tests := []struct {
		name string
		file string
		want []string
	}{
		{"header", "=== HEADER\nT\nS\n", []string{IDHeaderTitle, IDHeaderSubtitle}},
		{"nav", "=== NAV\na\nb\nc\n", []string{IDNavBio, IDNavAcademic, IDNavWriter}},
		{"biography", "=== BIOGRAPHY\nTITLE:Bio\nCONTENT:<p>x</p>\n", []string{IDBioTitle, IDBioContent}},
		{
			"academic",
			"=== ACADEMIC\nTITLE:A\nPARAGRAPH1:p1\nPARAGRAPH2:p2\nORCID_DESC:od\nORCID_BTN:ob\nSCHOLAR_DESC:sd\nSCHOLAR_BTN:sb\n",
			[]string{IDAcademicTitle, IDAcademicContent, IDOrcidDesc, IDOrcidBtn, IDScholarDesc, IDScholarBtn},
		},
		{
			"writer",
			"=== WRITER\nTITLE:W\nBOOK_TITLE:B\nDESCRIPTION:D\nYEAR_LABEL:Y\nBOOK_BTN:Go\n",
			[]string{IDWriterTitle, IDBookTitle, IDBookDescription, IDYearLabel, IDBookBtn},
		},
		{"footer", "=== FOOTER\nNAME:N\nDEPT:D\nUNI:U\n", []string{IDFooterName, IDFooterDept, IDFooterUni}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.file)
			require.NoError(t, err)

			page := newFakePage()
			report := c.Apply(page)

			assert.ElementsMatch(t, tt.want, changed(page))
			assert.ElementsMatch(t, tt.want, report.Written())
		})
	}
}

func TestMissingSectionPreservesPriorValues(t *testing.T) {
	c, err := Parse("=== HEADER\nT\nS\n")
	require.NoError(t, err)
	assert.Nil(t, c.Footer)

	page := newFakePage()
	page[IDFooterName] = "Juan"
	c.Apply(page)

	assert.Equal(t, "Juan", page[IDFooterName])
	assert.NotContains(t, c.Apply(newFakePage()), IDFooterName)
}

func TestNavPrependsIcons(t *testing.T) {
	c, err := Parse("=== NAV\nBiografía\nAcadémico\nEscritor\n")
	require.NoError(t, err)

	page := newFakePage()
	c.Apply(page)

	assert.Equal(t, `html:<i class="fas fa-user"></i> Biografía`, page[IDNavBio])
	assert.Equal(t, `html:<i class="fas fa-graduation-cap"></i> Académico`, page[IDNavAcademic])
	assert.Equal(t, `html:<i class="fas fa-book"></i> Escritor`, page[IDNavWriter])
}

func TestPositionalNeedsEnoughLines(t *testing.T) {
	c, err := Parse("=== NAV\nonly\ntwo\n")
	require.NoError(t, err)
	require.NotNil(t, c.Nav)
	assert.False(t, c.Nav.Bio.Ok())

	page := newFakePage()
	report := c.Apply(page)
	assert.Empty(t, changed(page))
	assert.ElementsMatch(t, []string{IDNavBio, IDNavAcademic, IDNavWriter}, report.Skipped())
}

func TestHeaderTrimsLines(t *testing.T) {
	h := ExtractHeader("\n  Francisco J. Vico  \n\t«intento cosas»\nextra\n")
	assert.Equal(t, Set("Francisco J. Vico"), h.Title)
	assert.Equal(t, Set("«intento cosas»"), h.Subtitle)
}

func TestFooterWithoutDept(t *testing.T) {
	c, err := Parse("=== FOOTER\nNAME:Juan Pérez\nUNI:UMA\n")
	require.NoError(t, err)

	page := newFakePage()
	report := c.Apply(page)

	assert.Equal(t, "text:Juan Pérez", page[IDFooterName])
	assert.Equal(t, "text:UMA", page[IDFooterUni])
	assert.Equal(t, "prior", page[IDFooterDept])
	assert.Equal(t, Skipped, report[IDFooterDept])
}

func TestBiographyContentTakesRemainder(t *testing.T) {
	body := "TITLE: Biografía \nCONTENT:\n<p>uno</p>\n<p>dos <a href=\"x\">y</a></p>\nTITLE: not a title\n"
	b := ExtractBiography(body)

	assert.Equal(t, Set("Biografía"), b.Title)
	assert.Equal(t, "<p>uno</p>\n<p>dos <a href=\"x\">y</a></p>\nTITLE: not a title", b.Content.Value)

	c, err := Parse("=== BIOGRAPHY\n" + body)
	require.NoError(t, err)
	page := newFakePage()
	c.Apply(page)
	assert.Equal(t, "html:"+b.Content.Value, page[IDBioContent])
}

func TestKeyedMatchesWholeKeyAtLineStart(t *testing.T) {
	w := ExtractWriter("BOOK_TITLE:Cartas\nTITLE:Escritor\n")
	assert.Equal(t, "Escritor", w.Title.Value)
	assert.Equal(t, "Cartas", w.BookTitle.Value)

	f := ExtractFooter("NAME:first\nNAME:second\n")
	assert.Equal(t, "first", f.Name.Value)
	assert.False(t, f.Dept.Ok())
}

func TestAcademicParagraphs(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   string
		status WriteStatus
	}{
		{"both", "PARAGRAPH1:a\nPARAGRAPH2:b\n", `html:<p class="paragraph-spaced">a</p><p class="paragraph-spaced">b</p>`, Written},
		{"second only", "PARAGRAPH2:b\n", `html:<p class="paragraph-spaced">b</p>`, Written},
		{"neither", "TITLE:x\n", "prior", Skipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse("=== ACADEMIC\n" + tt.body)
			require.NoError(t, err)

			page := newFakePage()
			report := c.Apply(page)
			assert.Equal(t, tt.want, page[IDAcademicContent])
			assert.Equal(t, tt.status, report[IDAcademicContent])
		})
	}
}

func TestApplyReportsMissingElements(t *testing.T) {
	c, err := Parse("=== FOOTER\nNAME:N\n")
	require.NoError(t, err)

	report := c.Apply(fakePage{})
	assert.Equal(t, NoElement, report[IDFooterName])
	assert.Equal(t, Skipped, report[IDFooterDept])
}

func TestFallbackWritesEveryElement(t *testing.T) {
	page := newFakePage()
	report := Fallback().Apply(page)

	assert.ElementsMatch(t, allIDs, changed(page))
	assert.ElementsMatch(t, allIDs, report.Written())
	assert.Equal(t, "text:Francisco J. Vico", page[IDHeaderTitle])
	assert.Equal(t, "text:Universidad de Málaga", page[IDFooterUni])
}
