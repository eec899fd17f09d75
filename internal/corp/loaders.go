//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corp

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"golang.org/x/time/rate"
)

//
// DIRECTORIES
//

// LoadDir - every .txt file under root; the category is the name of the folder holding the file
func LoadDir(root string) (*Corpus, error) {
	var docs []str.Document
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.ToLower(filepath.Ext(p)) != ".txt" {
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		cat := ""
		if rel, e := filepath.Rel(root, filepath.Dir(p)); e == nil && rel != "." {
			cat = filepath.ToSlash(rel)
		}
		docs = append(docs, str.Document{
			ID:       strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)),
			Category: cat,
			Title:    firstsentence(string(b)),
			Source:   p,
			Text:     string(b),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return New("dir:"+root, docs)
}

//
// URLS
//

// Fetcher - polite retrieval of a list of pages
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher - rps requests per second; zero means vv.FETCHRATE
func NewFetcher(client *http.Client, rps float64) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: vv.FETCHTIMEOUT}
	}
	if rps <= 0 {
		rps = vv.FETCHRATE
	}
	return &Fetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Fetch - one page reduced to a Document; html is stripped down to its text
func (f *Fetcher) Fetch(ctx context.Context, u string) (str.Document, error) {
	var d str.Document

	if err := f.limiter.Wait(ctx); err != nil {
		return d, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return d, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return d, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return d, fmt.Errorf("received status code %d for URL: %s", resp.StatusCode, u)
	}

	d.Source = u
	d.Category = hostof(u)

	if strings.Contains(resp.Header.Get("Content-Type"), "html") {
		d.Title, d.Text, err = HTMLToText(resp.Body)
	} else {
		var b []byte
		b, err = io.ReadAll(resp.Body)
		d.Text = string(b)
		d.Title = firstsentence(d.Text)
	}
	return d, err
}

// FetchAll - every url in turn; the first failure stops the run
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) (*Corpus, error) {
	docs := make([]str.Document, 0, len(urls))
	for i, u := range urls {
		d, err := f.Fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		d.ID = strconv.Itoa(i)
		docs = append(docs, d)
	}
	return New("url", docs)
}

// HTMLToText - the title and the visible text of a page
func HTMLToText(r io.Reader) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", err
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("script,style,nav,noscript,header,footer").Remove()

	body := doc.Find("main, article").First()
	if body.Length() == 0 {
		body = doc.Find("body")
	}

	var paras []string
	body.Find("p,h1,h2,h3,h4,li,pre,blockquote").Each(func(_ int, s *goquery.Selection) {
		if t := strings.Join(strings.Fields(s.Text()), " "); t != "" {
			paras = append(paras, t)
		}
	})
	if len(paras) == 0 {
		paras = append(paras, strings.Join(strings.Fields(body.Text()), " "))
	}
	return title, strings.Join(paras, "\n\n"), nil
}

func hostof(u string) string {
	p, err := url.Parse(u)
	if err != nil {
		return ""
	}
	return p.Hostname()
}
