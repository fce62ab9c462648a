// Package check reports which sections and fields a language file is
// missing, so translators can see gaps before the page falls back to
// leaving old text in place.
package check

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/fjvico/homepage/internal/content"
	"github.com/fjvico/homepage/internal/loader"
)

// Report is the result for one file.
type Report struct {
	Name string
	// Code is the language code taken from the file name.
	Code            string
	Err             error
	MissingSections []content.Section
	// MissingFields are named SECTION.FIELD and only cover sections the
	// file carries.
	MissingFields []string
}

func (r Report) OK() bool {
	return r.Err == nil && len(r.MissingSections) == 0 && len(r.MissingFields) == 0
}

// File checks one language file's text.
func File(name, text string) Report {
	r := Report{Name: name, Code: strings.TrimSuffix(path.Base(name), ".txt")}
	if err := loader.ValidCode(r.Code); err != nil {
		r.Err = err
		return r
	}

	secs, err := content.Split(text)
	if err != nil {
		r.Err = err
		return r
	}
	r.MissingSections = secs.Missing()
	r.MissingFields = missingFields(content.Extract(secs))
	return r
}

// Dir checks every *.txt file in fsys, sorted by name. When fsys has
// none at its root it looks in lang/, so both the lang directory and the
// HOMEPAGE_LANG_DIR root that holds it work.
func Dir(fsys fs.FS) ([]Report, error) {
	names, err := fs.Glob(fsys, "*.txt")
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		if names, err = fs.Glob(fsys, "lang/*.txt"); err != nil {
			return nil, err
		}
	}
	if len(names) == 0 {
		return nil, errors.New("no language files found")
	}
	sort.Strings(names)

	reports := make([]Report, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			reports = append(reports, Report{Name: name, Err: err})
			continue
		}
		reports = append(reports, File(name, string(data)))
	}
	return reports, nil
}

// Print writes one line per file, followed by its gaps. It returns the
// number of files with problems.
func Print(w io.Writer, reports []Report) int {
	failed := 0
	for _, r := range reports {
		if r.OK() {
			fmt.Fprintf(w, "ok    %s\n", r.Name)
			continue
		}
		failed++
		fmt.Fprintf(w, "FAIL  %s\n", r.Name)
		if r.Err != nil {
			fmt.Fprintf(w, "      error: %v\n", r.Err)
		}
		for _, s := range r.MissingSections {
			fmt.Fprintf(w, "      missing section %s\n", s)
		}
		for _, f := range r.MissingFields {
			fmt.Fprintf(w, "      missing field %s\n", f)
		}
	}
	return failed
}

type namedField struct {
	name  string
	field content.Field
}

func missingFields(c content.Content) []string {
	var all []namedField
	if h := c.Header; h != nil {
		all = append(all,
			namedField{"HEADER.title", h.Title},
			namedField{"HEADER.subtitle", h.Subtitle})
	}
	if n := c.Nav; n != nil {
		all = append(all,
			namedField{"NAV.bio", n.Bio},
			namedField{"NAV.academic", n.Academic},
			namedField{"NAV.writer", n.Writer})
	}
	if b := c.Biography; b != nil {
		all = append(all,
			namedField{"BIOGRAPHY.TITLE", b.Title},
			namedField{"BIOGRAPHY.CONTENT", b.Content})
	}
	if a := c.Academic; a != nil {
		all = append(all,
			namedField{"ACADEMIC.TITLE", a.Title},
			namedField{"ACADEMIC.PARAGRAPH1", a.Paragraph1},
			namedField{"ACADEMIC.PARAGRAPH2", a.Paragraph2},
			namedField{"ACADEMIC.ORCID_DESC", a.OrcidDesc},
			namedField{"ACADEMIC.ORCID_BTN", a.OrcidBtn},
			namedField{"ACADEMIC.SCHOLAR_DESC", a.ScholarDesc},
			namedField{"ACADEMIC.SCHOLAR_BTN", a.ScholarBtn})
	}
	if w := c.Writer; w != nil {
		all = append(all,
			namedField{"WRITER.TITLE", w.Title},
			namedField{"WRITER.BOOK_TITLE", w.BookTitle},
			namedField{"WRITER.DESCRIPTION", w.Description},
			namedField{"WRITER.YEAR_LABEL", w.YearLabel},
			namedField{"WRITER.BOOK_BTN", w.BookBtn})
	}
	if f := c.Footer; f != nil {
		all = append(all,
			namedField{"FOOTER.NAME", f.Name},
			namedField{"FOOTER.DEPT", f.Dept},
			namedField{"FOOTER.UNI", f.Uni})
	}

	var missing []string
	for _, nf := range all {
		if !nf.field.Ok() {
			missing = append(missing, nf.name)
		}
	}
	return missing
}
