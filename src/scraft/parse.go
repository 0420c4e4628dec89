package scraft

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"git.sr.ht/~avern/wpcraft/index"
)

// parseListing extracts wallpaper records from a listing page. Each item
// carries its id in the link, its tags in the thumbnail alt text and its
// rating in the info block.
func parseListing(r io.Reader, catalog string) ([]index.Record, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	var records []index.Record
	for _, item := range findAll(doc, "li", "wallpapers__item") {
		rec := index.Record{Catalog: catalog}

		if a := findFirst(item, "a", ""); a != nil {
			rec.ID = idFromHref(attr(a, "href"))
		}
		if rec.ID == "" {
			continue
		}

		if img := findFirst(item, "img", ""); img != nil {
			rec.Tags = tagsFromAlt(attr(img, "alt"))
		}
		if rating := findFirst(item, "span", "wallpapers__info-rating"); rating != nil {
			if score, err := strconv.ParseFloat(strings.TrimSpace(text(rating)), 64); err == nil {
				rec.Score = score
			}
		}

		records = append(records, rec)
	}
	return records, nil
}

// parsePageCount reads the listing pager and returns the number of pages.
// A page without a pager is a single-page listing.
func parsePageCount(r io.Reader) (int, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return 0, fmt.Errorf("failed to parse listing page: %w", err)
	}

	pager := findFirst(doc, "ul", "pager__list")
	if pager == nil {
		return 1, nil
	}
	links := findAll(pager, "a", "pager__link")
	if len(links) == 0 {
		return 1, nil
	}

	href := attr(links[len(links)-1], "href")
	if i := strings.Index(href, "page="); i >= 0 {
		// Search results paginate via a query parameter.
		rest := href[i+len("page="):]
		if j := strings.IndexAny(rest, "&#"); j >= 0 {
			rest = rest[:j]
		}
		return strconv.Atoi(rest)
	}

	// Catalog and tag listings paginate via a /pageN path segment.
	last := href[strings.LastIndex(href, "/")+1:]
	return strconv.Atoi(strings.TrimPrefix(last, "page"))
}

// parseWallpaperTags extracts the tag list from a wallpaper's own page.
func parseWallpaperTags(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse wallpaper page: %w", err)
	}

	block := findFirst(doc, "div", "wallpaper__tags")
	if block == nil {
		return nil, nil
	}

	var tags []string
	for _, a := range findAll(block, "a", "") {
		tag := strings.NewReplacer("wallpapers", "", "backgrounds", "").Replace(text(a))
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// parseImageURL extracts the direct image URL from a download page.
func parseImageURL(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse download page: %w", err)
	}

	img := findFirst(doc, "img", "wallpaper__image")
	if img == nil {
		return "", fmt.Errorf("download page has no wallpaper image")
	}
	src := attr(img, "src")
	if src == "" {
		return "", fmt.Errorf("wallpaper image has no source")
	}
	return baseURL + "/image/" + src[strings.LastIndex(src, "/")+1:], nil
}

// idFromHref extracts the wallpaper id, the last path segment of the item
// link.
func idFromHref(href string) string {
	href = strings.TrimSuffix(href, "/")
	return href[strings.LastIndex(href, "/")+1:]
}

// tagsFromAlt splits the thumbnail alt text ("Wallpaper city, night, ...")
// into tags.
func tagsFromAlt(alt string) []string {
	alt = strings.TrimPrefix(alt, "Wallpaper ")
	var tags []string
	for _, part := range strings.Split(alt, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, strings.ToLower(part))
		}
	}
	return tags
}

// HTML traversal helpers

func findAll(n *html.Node, tag, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if matches(node, tag, class) {
			out = append(out, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func findFirst(n *html.Node, tag, class string) *html.Node {
	if all := findAll(n, tag, class); len(all) > 0 {
		return all[0]
	}
	return nil
}

func matches(n *html.Node, tag, class string) bool {
	if n.Type != html.ElementNode || n.Data != tag {
		return false
	}
	if class == "" {
		return true
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
