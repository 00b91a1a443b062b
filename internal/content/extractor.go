package content

import (
	"strings"

	"golang.org/x/net/html"
)

// CollectImageURLs merges gallery image URLs with images embedded in the
// product's HTML description. Gallery images come first, duplicates are
// dropped, and order is otherwise preserved.
func CollectImageURLs(galleryURLs []string, descriptionHTML string) []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}

	for _, u := range galleryURLs {
		add(u)
	}
	for _, u := range extractImagesFromHTML(descriptionHTML) {
		add(u)
	}
	return out
}

// extractImagesFromHTML pulls img src attributes out of an HTML fragment.
// Only absolute http(s) URLs are kept; protocol-relative URLs are upgraded
// to https. Malformed HTML never fails, the tokenizer keeps whatever it
// could parse.
func extractImagesFromHTML(fragment string) []string {
	if strings.TrimSpace(fragment) == "" {
		return nil
	}

	var urls []string
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			return urls
		}
		if tokenType != html.StartTagToken && tokenType != html.SelfClosingTagToken {
			continue
		}

		name, hasAttr := tokenizer.TagName()
		if string(name) != "img" || !hasAttr {
			continue
		}

		for {
			key, val, more := tokenizer.TagAttr()
			if string(key) == "src" {
				if u := normalizeImageURL(string(val)); u != "" {
					urls = append(urls, u)
				}
				break
			}
			if !more {
				break
			}
		}
	}
}

func normalizeImageURL(src string) string {
	src = strings.TrimSpace(src)
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return src
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	default:
		return ""
	}
}
