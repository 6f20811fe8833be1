package cambridge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"wordbot/internal/domain"
	"wordbot/internal/provider"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	defaultBaseURL = "https://dictionary.cambridge.org/dictionary/english"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	maxBodySize    = 4 << 20
)

var slugCleaner = regexp.MustCompile(`[^a-z\-]`)

// definitionClasses must all be present on the definition block
var definitionClasses = []string{"def", "ddef_d", "db"}

// Dictionary scrapes definitions from the Cambridge English dictionary
type Dictionary struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewDictionary creates a dictionary for the public site
func NewDictionary(logger *zap.Logger) *Dictionary {
	return NewDictionaryWithURL(defaultBaseURL, logger)
}

// NewDictionaryWithURL creates a dictionary for a custom base URL (for testing)
func NewDictionaryWithURL(baseURL string, logger *zap.Logger) *Dictionary {
	return &Dictionary{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.With(zap.String("provider", "cambridge")),
	}
}

// Name returns the label shown in logs and metrics
func (d *Dictionary) Name() string {
	return "Cambridge"
}

// Slug converts a word to the form used in dictionary URLs
func Slug(word string) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(word)), " ", "-")
	return slugCleaner.ReplaceAllString(slug, "")
}

// Lookup returns the raw text of the first definition block
func (d *Dictionary) Lookup(ctx context.Context, word string) (string, error) {
	slug := Slug(word)
	if slug == "" {
		return "", fmt.Errorf("cambridge: %q: %w", word, domain.ErrNotFound)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/"+slug, nil)
	if err != nil {
		return "", fmt.Errorf("cambridge: create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", provider.Unavailable(d.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		d.logger.Info("Word not found", zap.String("word", word))
		return "", fmt.Errorf("cambridge: %q: %w", word, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return "", provider.Unavailable(d.Name(), fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", provider.Unavailable(d.Name(), fmt.Errorf("parse html: %w", err))
	}

	node := findDefinition(doc)
	if node == nil {
		d.logger.Info("Definition block not found", zap.String("word", word))
		return "", fmt.Errorf("cambridge: %q: %w", word, domain.ErrNotFound)
	}

	return textContent(node), nil
}

// findDefinition walks the tree depth-first and returns the first definition div
func findDefinition(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "div" && hasClasses(n, definitionClasses) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findDefinition(c); found != nil {
			return found
		}
	}
	return nil
}

func hasClasses(n *html.Node, want []string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		present := make(map[string]bool)
		for _, class := range strings.Fields(attr.Val) {
			present[class] = true
		}
		for _, class := range want {
			if !present[class] {
				return false
			}
		}
		return true
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
