package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// maxFileSize caps a language file read over any source.
const maxFileSize = 1 << 20

var (
	// ErrInvalidCode marks a language code that cannot name a file.
	ErrInvalidCode = errors.New("invalid language code")
	// ErrTooLarge marks a file over maxFileSize. It is refused whole
	// rather than cut, so the page falls back instead of showing a
	// truncated section.
	ErrTooLarge = errors.New("language file too large")
)

var codePattern = regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z0-9]{2,8})*$`)

// Source fetches the raw text of lang/<code>.txt.
type Source interface {
	Fetch(ctx context.Context, code string) (string, error)
}

// FetchError is any failure to obtain a language file: bad code, missing
// file, non-2xx status or transport error.
type FetchError struct {
	Code   string
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ValidCode checks that code is a well-formed BCP 47 tag that is safe to
// use as a file name.
func ValidCode(code string) error {
	if !codePattern.MatchString(code) {
		return fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	if _, err := language.Parse(code); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidCode, code, err)
	}
	return nil
}

// FileName is the resource name for code, relative to the site root.
func FileName(code string) string {
	return "lang/" + code + ".txt"
}

// FSSource reads language files from a file system whose root holds the
// lang directory: the embedded site or a directory on disk.
type FSSource struct {
	FS fs.FS
}

func (s FSSource) Fetch(ctx context.Context, code string) (string, error) {
	name := FileName(code)
	if err := ValidCode(code); err != nil {
		return "", &FetchError{Code: code, URL: name, Status: http.StatusBadRequest, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return "", &FetchError{Code: code, URL: name, Err: err}
	}

	f, err := s.FS.Open(path.Clean(name))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, fs.ErrNotExist) {
			status = http.StatusNotFound
		}
		return "", &FetchError{Code: code, URL: name, Status: status, Err: err}
	}
	defer f.Close()

	text, err := readLimited(f)
	if err != nil {
		return "", &FetchError{Code: code, URL: name, Err: err}
	}
	return text, nil
}

// HTTPSource fetches language files from a remote site.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context, code string) (string, error) {
	url := strings.TrimRight(s.BaseURL, "/") + "/" + FileName(code)
	if err := ValidCode(code); err != nil {
		return "", &FetchError{Code: code, URL: url, Status: http.StatusBadRequest, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{Code: code, URL: url, Err: err}
	}
	req.Header.Set("Accept", "text/plain")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{Code: code, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{Code: code, URL: url, Status: resp.StatusCode}
	}

	text, err := readLimited(resp.Body)
	if err != nil {
		return "", &FetchError{Code: code, URL: url, Err: err}
	}
	return text, nil
}

// readLimited reads r whole, failing with ErrTooLarge past maxFileSize.
func readLimited(r io.Reader) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return "", err
	}
	if len(b) > maxFileSize {
		return "", ErrTooLarge
	}
	return string(b), nil
}
