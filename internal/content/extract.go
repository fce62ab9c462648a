package content

// Header is the positional HEADER section: title line, subtitle line.
type Header struct {
	Title    Field
	Subtitle Field
}

// Nav is the positional NAV section: one label per menu entry.
type Nav struct {
	Bio      Field
	Academic Field
	Writer   Field
}

// Biography holds TITLE and the free-form CONTENT block.
type Biography struct {
	Title   Field
	Content Field
}

// Academic holds the ACADEMIC section keys.
type Academic struct {
	Title       Field
	Paragraph1  Field
	Paragraph2  Field
	OrcidDesc   Field
	OrcidBtn    Field
	ScholarDesc Field
	ScholarBtn  Field
}

// Writer holds the WRITER section keys.
type Writer struct {
	Title       Field
	BookTitle   Field
	Description Field
	YearLabel   Field
	BookBtn     Field
}

// Footer holds the FOOTER section keys.
type Footer struct {
	Name Field
	Dept Field
	Uni  Field
}

// Content is a parsed language file. A nil section pointer means the file
// did not carry that section at all.
type Content struct {
	Header    *Header
	Nav       *Nav
	Biography *Biography
	Academic  *Academic
	Writer    *Writer
	Footer    *Footer
}

func ExtractHeader(body string) Header {
	f := positional(body, 2)
	return Header{Title: f[0], Subtitle: f[1]}
}

func ExtractNav(body string) Nav {
	f := positional(body, 3)
	return Nav{Bio: f[0], Academic: f[1], Writer: f[2]}
}

func ExtractBiography(body string) Biography {
	return Biography{
		Title:   keyed(body, "TITLE"),
		Content: rest(body, "CONTENT"),
	}
}

func ExtractAcademic(body string) Academic {
	return Academic{
		Title:       keyed(body, "TITLE"),
		Paragraph1:  keyed(body, "PARAGRAPH1"),
		Paragraph2:  keyed(body, "PARAGRAPH2"),
		OrcidDesc:   keyed(body, "ORCID_DESC"),
		OrcidBtn:    keyed(body, "ORCID_BTN"),
		ScholarDesc: keyed(body, "SCHOLAR_DESC"),
		ScholarBtn:  keyed(body, "SCHOLAR_BTN"),
	}
}

func ExtractWriter(body string) Writer {
	return Writer{
		Title:       keyed(body, "TITLE"),
		BookTitle:   keyed(body, "BOOK_TITLE"),
		Description: keyed(body, "DESCRIPTION"),
		YearLabel:   keyed(body, "YEAR_LABEL"),
		BookBtn:     keyed(body, "BOOK_BTN"),
	}
}

func ExtractFooter(body string) Footer {
	return Footer{
		Name: keyed(body, "NAME"),
		Dept: keyed(body, "DEPT"),
		Uni:  keyed(body, "UNI"),
	}
}

// Extract runs the matching extractor for every section present.
func Extract(sections Sections) Content {
	var c Content
	if body, ok := sections.Body(SectionHeader); ok {
		h := ExtractHeader(body)
		c.Header = &h
	}
	if body, ok := sections.Body(SectionNav); ok {
		n := ExtractNav(body)
		c.Nav = &n
	}
	if body, ok := sections.Body(SectionBiography); ok {
		b := ExtractBiography(body)
		c.Biography = &b
	}
	if body, ok := sections.Body(SectionAcademic); ok {
		a := ExtractAcademic(body)
		c.Academic = &a
	}
	if body, ok := sections.Body(SectionWriter); ok {
		w := ExtractWriter(body)
		c.Writer = &w
	}
	if body, ok := sections.Body(SectionFooter); ok {
		f := ExtractFooter(body)
		c.Footer = &f
	}
	return c
}

// Parse splits text and extracts every section it carries.
func Parse(text string) (Content, error) {
	sections, err := Split(text)
	if err != nil {
		return Content{}, err
	}
	return Extract(sections), nil
}
