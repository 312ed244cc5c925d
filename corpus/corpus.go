// Package corpus materializes a page graph out of a directory of
// hyperlinked HTML documents. It is the sole collaborator that performs
// I/O; the rank estimators only ever see the immutable graph it
// produces.
package corpus

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/xerrors"

	"github.com/Maslor/pagerank/graph"
)

// Config encapsulates the parameters for crawling a local corpus.
type Config struct {
	// Dir is the directory containing the corpus HTML documents. Files
	// without a .html extension are ignored.
	Dir string

	// Logger for corpus crawl progress. If not specified, a no-op
	// logger will be used instead.
	Logger *logrus.Entry
}

func (c *Config) validate() error {
	var err error
	if c.Dir == "" {
		err = xerrors.New("corpus directory not specified")
	}
	if c.Logger == nil {
		c.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return err
}

// Crawl parses every HTML document under cfg.Dir and assembles the
// directed page graph induced by their anchor links. Each document
// becomes a page keyed by its file name; its anchor href values become
// out-links after dropping self-links and links that point outside the
// corpus. The resulting graph satisfies every construction invariant
// required by the rank estimators.
func Crawl(cfg Config) (*graph.Graph, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("corpus config validation failed: %w", err)
	}

	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		return nil, xerrors.Errorf("reading corpus directory: %w", err)
	}

	rawLinks := make(map[graph.Page]mapset.Set[graph.Page])
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}

		page := graph.Page(entry.Name())
		links, err := extractLinks(filepath.Join(cfg.Dir, entry.Name()))
		if err != nil {
			return nil, xerrors.Errorf("extracting links from %q: %w", entry.Name(), err)
		}
		links.Remove(page)
		rawLinks[page] = links

		cfg.Logger.WithFields(logrus.Fields{
			"page":  page,
			"links": links.Cardinality(),
		}).Debug("extracted page links")
	}

	// Only keep links that point to other pages in the corpus.
	adjacency := make(map[graph.Page][]graph.Page, len(rawLinks))
	for page, links := range rawLinks {
		adjacency[page] = nil
		for link := range links.Iter() {
			if _, inCorpus := rawLinks[link]; inCorpus {
				adjacency[page] = append(adjacency[page], link)
			}
		}
	}

	cfg.Logger.WithField("pages", len(adjacency)).Info("assembled corpus graph")
	return graph.New(adjacency)
}

// extractLinks parses the document at path and collects the href target
// of every anchor element.
func extractLinks(path string) (mapset.Set[graph.Page], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, err
	}

	links := mapset.NewThreadUnsafeSet[graph.Page]()
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && attr.Val != "" {
					links.Add(graph.Page(attr.Val))
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	visit(doc)

	return links, nil
}
