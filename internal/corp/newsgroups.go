//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corp

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/encoding/charmap"
)

const NEWSGROUPSNAME = "newsgroups"

var quotere = regexp.MustCompile(`(writes in|writes:|wrote:|says:|said:|^In article|^Quoted from|^\||^>)`)

// NewsgroupsOptions - where to find the archive and what to take out of it
type NewsgroupsOptions struct {
	URL        string
	DataDir    string
	Subset     string // "train", "test" or "all"
	Categories []string
	Keep       bool // keep headers, footers and quotes
	Client     *http.Client
	Progress   io.Writer // nil for no progress bar
}

// Newsgroups - fetch (or reuse) the twenty newsgroups archive and return the requested subset as a Corpus
func Newsgroups(ctx context.Context, o NewsgroupsOptions) (*Corpus, error) {
	var dirs []string
	switch o.Subset {
	case "", "train":
		dirs = []string{vv.NEWSGROUPSTRAIN}
	case "test":
		dirs = []string{vv.NEWSGROUPSTEST}
	case "all":
		dirs = []string{vv.NEWSGROUPSTRAIN, vv.NEWSGROUPSTEST}
	default:
		return nil, fmt.Errorf("newsgroups subset '%s': %w", o.Subset, ErrUnknownDataset)
	}

	fn, err := FetchArchive(ctx, o)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	docs, err := ParseNewsgroupsArchive(f, dirs, o.Categories, !o.Keep)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return New(NEWSGROUPSNAME, docs)
}

// NewsgroupsCacheKey - "newsgroups:train:rec.autos,sci.space"
func NewsgroupsCacheKey(o NewsgroupsOptions) string {
	cc := slices.Clone(o.Categories)
	slices.Sort(cc)
	sub := o.Subset
	if sub == "" {
		sub = "train"
	}
	k := fmt.Sprintf("%s:%s:%s", NEWSGROUPSNAME, sub, strings.Join(cc, ","))
	if o.Keep {
		k += ":raw"
	}
	return k
}

// FetchArchive - download the archive into the data dir unless it is already there; returns its path
func FetchArchive(ctx context.Context, o NewsgroupsOptions) (string, error) {
	const (
		DESC = "downloading %s"
	)

	if err := os.MkdirAll(o.DataDir, vv.DIRPERMS); err != nil {
		return "", err
	}

	fn := filepath.Join(o.DataDir, vv.NEWSGROUPSARCHIVE)
	if st, err := os.Stat(fn); err == nil && st.Size() > 0 {
		return fn, nil
	}

	cl := o.Client
	if cl == nil {
		cl = &http.Client{Timeout: vv.FETCHTIMEOUT}
	}

	u := o.URL
	if u == "" {
		u = vv.NEWSGROUPSURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := cl.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received status code %d for URL: %s", resp.StatusCode, u)
	}

	tmp, err := os.CreateTemp(o.DataDir, vv.NEWSGROUPSARCHIVE+".*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	var w io.Writer = tmp
	if o.Progress != nil {
		bar := progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetDescription(color.CyanString(DESC, vv.NEWSGROUPSARCHIVE)),
			progressbar.OptionSetWriter(o.Progress),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetRenderBlankState(true),
		)
		defer bar.Finish()
		w = io.MultiWriter(tmp, bar)
	}

	if _, err = io.Copy(w, resp.Body); err != nil {
		tmp.Close()
		return "", err
	}
	if err = tmp.Close(); err != nil {
		return "", err
	}
	if err = os.Rename(tmp.Name(), fn); err != nil {
		return "", err
	}
	return fn, nil
}

// ParseNewsgroupsArchive - read a .tar.gz laid out as "subsetdir/category/id"; latin-1 is decoded into utf-8
func ParseNewsgroupsArchive(r io.Reader, subsetdirs []string, categories []string, clean bool) ([]str.Document, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	wantdir := gen.ToSet(subsetdirs)
	wantcat := gen.ToSet(categories)
	dec := charmap.ISO8859_1.NewDecoder()

	var docs []str.Document
	tr := tar.NewReader(gz)
	for {
		h, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if h.Typeflag != tar.TypeReg {
			continue
		}

		parts := strings.Split(strings.TrimPrefix(h.Name, "./"), "/")
		if len(parts) != 3 {
			continue
		}
		if _, ok := wantdir[parts[0]]; !ok {
			continue
		}
		if _, ok := wantcat[parts[1]]; len(wantcat) > 0 && !ok {
			continue
		}

		raw, err := io.ReadAll(dec.Reader(tr))
		if err != nil {
			return nil, err
		}

		txt := string(raw)
		d := str.Document{
			ID:       parts[2],
			Category: parts[1],
			Title:    subjectline(txt),
			Source:   h.Name,
			Text:     txt,
		}
		if clean {
			d.Text = CleanPost(txt)
		}
		docs = append(docs, d)
	}

	slices.SortStableFunc(docs, func(a, b str.Document) int {
		if c := strings.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return strings.Compare(a.Source, b.Source)
	})

	return docs, nil
}

// CleanPost - drop headers, quoted replies and signature blocks
func CleanPost(s string) string {
	s = StripHeader(s)
	s = StripQuotes(s)
	s = StripFooter(s)
	return strings.TrimSpace(s)
}

// StripHeader - everything before the first blank line goes
func StripHeader(s string) string {
	_, after, found := strings.Cut(s, "\n\n")
	if !found {
		return ""
	}
	return after
}

// StripQuotes - drop the lines that quote or introduce a quote of someone else's post
func StripQuotes(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if !quotere.MatchString(l) {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

// StripFooter - drop everything after the last line made only of dashes (the usual signature marker)
func StripFooter(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	n := len(lines) - 1
	for ; n >= 0; n-- {
		if strings.Trim(strings.TrimSpace(lines[n]), "-") == "" {
			break
		}
	}
	if n > 0 {
		return strings.Join(lines[:n], "\n")
	}
	return s
}

func subjectline(s string) string {
	head, _, _ := strings.Cut(s, "\n\n")
	for _, l := range strings.Split(head, "\n") {
		if strings.HasPrefix(l, "Subject:") {
			return strings.TrimSpace(strings.TrimPrefix(l, "Subject:"))
		}
	}
	return ""
}
