// Package links discovers the links of an HTML document while its
// body streams in.
package links

import (
	"io"
	"strings"
	"sync"

	"http-inspector/application/util/uri"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Link is a reference found in a document.
type Link struct {
	// Base is the URI the target is relative to.
	Base string `json:"base"`
	// Raw is the target as written, without its fragment.
	Raw string `json:"raw"`
	// Target is Raw resolved against Base. It is empty when Raw is not a URI.
	Target string `json:"target,omitempty"`
	Tag    string `json:"tag"`
	Title  string `json:"title,omitempty"`
}

var parseableTypes = []string{
	"text/html",
	"application/xhtml+xml",
	"application/atom+xml",
}

// Parseable reports whether documents of mediaType are scanned for links.
func Parseable(mediaType string) bool {
	for _, t := range parseableTypes {
		if strings.EqualFold(t, mediaType) {
			return true
		}
	}
	return false
}

// linkAttrs maps link carrying elements to the attribute holding the target.
var linkAttrs = map[atom.Atom]string{
	atom.A:      "href",
	atom.Link:   "href",
	atom.Img:    "src",
	atom.Script: "src",
	atom.Frame:  "src",
	atom.Iframe: "src",
}

// Extractor tokenizes the bytes written to it on its own goroutine.
// Links are available once Close returns.
type Extractor struct {
	resolver *uri.RefResolver

	pw   *io.PipeWriter
	done chan struct{}

	links []Link
	once  sync.Once
}

var _ io.WriteCloser = (*Extractor)(nil)

// NewExtractor starts an extractor for a document retrieved from base.
func NewExtractor(base uri.URI) (*Extractor, error) {
	resolver, err := uri.NewRefResolver(base)
	if err != nil {
		return nil, errors.Wrap(err, "creating resolver")
	}

	pr, pw := io.Pipe()
	e := &Extractor{
		resolver: resolver,
		pw:       pw,
		done:     make(chan struct{}),
		links:    make([]Link, 0),
	}
	go e.run(pr)

	return e, nil
}

// Write never fails. A document the tokenizer gives up on is drained.
func (e *Extractor) Write(p []byte) (int, error) {
	_, _ = e.pw.Write(p)
	return len(p), nil
}

// Close flushes the document and waits for the tokenizer.
func (e *Extractor) Close() error {
	e.once.Do(func() { _ = e.pw.Close() })
	<-e.done
	return nil
}

// Links returns the links in document order. It must be called after Close.
func (e *Extractor) Links() []Link { return e.links }

func (e *Extractor) run(pr *io.PipeReader) {
	defer close(e.done)

	z := html.NewTokenizer(pr)
	for {
		switch z.Next() {
		case html.ErrorToken:
			// Let writers finish even when the tokenizer gave up early.
			_, _ = io.Copy(io.Discard, pr)
			return

		case html.StartTagToken, html.SelfClosingTagToken:
			e.handleTag(z.Token())
		}
	}
}

func (e *Extractor) handleTag(t html.Token) {
	if t.DataAtom == atom.Base {
		if href, ok := attr(t, "href"); ok && href != "" {
			e.rebase(href)
		}
		return
	}

	name, ok := linkAttrs[t.DataAtom]
	if !ok {
		return
	}
	if t.DataAtom == atom.Link {
		if rel, _ := attr(t, "rel"); !strings.EqualFold(strings.TrimSpace(rel), "stylesheet") {
			return
		}
	}

	raw, _ := attr(t, name)
	raw, _, _ = strings.Cut(strings.TrimSpace(raw), "#")
	if raw == "" {
		return
	}

	title, _ := attr(t, "title")
	link := Link{
		Base:  e.resolver.Base().String(),
		Raw:   raw,
		Tag:   t.Data,
		Title: strings.TrimSpace(title),
	}
	if target, err := e.resolver.ResolveString(raw); err == nil {
		link.Target = target.String()
	}

	e.links = append(e.links, link)
}

// rebase moves the base to href, resolved against the current base.
func (e *Extractor) rebase(href string) {
	base, err := e.resolver.ResolveString(href)
	if err != nil {
		return
	}
	if resolver, err := uri.NewRefResolver(base); err == nil {
		e.resolver = resolver
	}
}

func attr(t html.Token, key string) (string, bool) {
	for _, a := range t.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
