package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"unicode"

	"lexiguide/internal/domain"

	"golang.org/x/net/html"
)

// maxPageChars bounds a pseudo-page of a plain-text or EPUB document.
const maxPageChars = 2600

// extractTextDocument extracts plain text from "txt", "md" and "epub" files
// and splits it into pseudo-pages.
func extractTextDocument(format string, fileBytes []byte) (*domain.ExtractedText, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	var (
		text   string
		method domain.ExtractionMethod
		mime   string
	)
	switch format {
	case "txt", "md":
		text = normalizeText(sanitizeText(string(fileBytes)))
		method = domain.ExtractionPlain
		mime = "text/plain"
		if format == "md" {
			mime = "text/markdown"
		}
	case "epub":
		spineText, err := extractEPUB(fileBytes)
		if err != nil {
			return nil, err
		}
		text = sanitizeText(spineText)
		method = domain.ExtractionEPUB
		mime = "application/epub+zip"
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}

	return &domain.ExtractedText{
		Text:       text,
		Pages:      paginateParagraphs(splitIntoParagraphs(text), maxPageChars),
		Method:     method,
		Confidence: 1,
		Format:     format,
		MimeType:   mime,
	}, nil
}

// splitIntoParagraphs splits text on blank lines, folding single newlines into spaces.
func splitIntoParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var result []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(strings.ReplaceAll(para, "\n", " "))
		if para != "" {
			result = append(result, para)
		}
	}
	return result
}

func paginateParagraphs(paragraphs []string, maxChars int) []string {
	var pages []string
	var sb strings.Builder

	flush := func() {
		pages = append(pages, strings.TrimSpace(sb.String()))
		sb.Reset()
	}

	for _, para := range paragraphs {
		// A paragraph longer than a page gets a page of its own.
		if sb.Len() == 0 && len(para) > maxChars {
			pages = append(pages, para)
			continue
		}
		if sb.Len() > 0 && sb.Len()+2+len(para) > maxChars {
			flush()
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(para)
	}

	if sb.Len() > 0 {
		flush()
	}
	return pages
}

// sanitizeText drops invalid UTF-8, NULs and control characters other than
// tab and newline, and normalizes line endings. PostgreSQL rejects NUL in
// text columns (22P05).
func sanitizeText(text string) string {
	text = strings.ToValidUTF8(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t' || r == '\n':
			sb.WriteRune(r)
		case unicode.IsControl(r):
		case r >= 0xD800 && r <= 0xDFFF:
		case r == unicode.ReplacementChar:
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// --- EPUB extraction ---

// extractEPUB returns the text of the spine documents in reading order.
func extractEPUB(epubBytes []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(epubBytes), int64(len(epubBytes)))
	if err != nil {
		return "", fmt.Errorf("failed to open epub: %w", err)
	}

	containerBytes, err := readZipFile(zr, "META-INF/container.xml")
	if err != nil {
		return "", fmt.Errorf("invalid epub (missing container.xml): %w", err)
	}

	opfPath, err := findOPFPath(containerBytes)
	if err != nil || strings.TrimSpace(opfPath) == "" {
		return "", fmt.Errorf("invalid epub (missing package path)")
	}

	opfBytes, err := readZipFile(zr, opfPath)
	if err != nil {
		return "", fmt.Errorf("invalid epub (missing package file): %w", err)
	}

	orderedHrefs := parseOPFSpine(opfBytes)

	// Resolve spine hrefs relative to OPF directory.
	opfDir := path.Dir(opfPath)
	if opfDir == "." {
		opfDir = ""
	}

	var chapters []string
	chapters = make([]string, 0, len(orderedHrefs))
	for _, href := range orderedHrefs {
		href = strings.TrimSpace(href)
		if href == "" {
			continue
		}
		unescaped, _ := url.PathUnescape(href)
		if unescaped != "" {
			href = unescaped
		}
		full := path.Clean(path.Join(opfDir, href))
		b, err := readZipFile(zr, full)
		if err != nil {
			// Best-effort: skip missing items.
			continue
		}
		t := htmlToText(b)
		t = normalizeText(t)
		if t != "" {
			chapters = append(chapters, t)
		}
	}

	return strings.TrimSpace(strings.Join(chapters, "\n\n")), nil
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	// Try exact match first.
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	// Then case-insensitive match.
	lower := strings.ToLower(name)
	for _, f := range zr.File {
		if strings.ToLower(f.Name) == lower {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

func findOPFPath(containerXML []byte) (string, error) {
	// container.xml is usually:
	// <container ...><rootfiles><rootfile full-path="OEBPS/content.opf" .../></rootfiles></container>
	type rootfile struct {
		FullPath string `xml:"full-path,attr"`
	}
	type rootfiles struct {
		Rootfiles []rootfile `xml:"rootfile"`
	}
	type container struct {
		Rootfiles rootfiles `xml:"rootfiles"`
	}

	var c container
	if err := xml.Unmarshal(containerXML, &c); err != nil {
		return "", err
	}
	for _, rf := range c.Rootfiles.Rootfiles {
		if strings.TrimSpace(rf.FullPath) != "" {
			return strings.TrimSpace(rf.FullPath), nil
		}
	}
	return "", fmt.Errorf("rootfile not found")
}

// parseOPFSpine resolves the spine itemrefs of a package document to manifest
// hrefs. Elements are matched on Name.Local so namespaces do not matter.
func parseOPFSpine(opf []byte) []string {
	type manifestItem struct {
		ID   string
		Href string
	}
	manifest := map[string]manifestItem{}
	spineIDs := make([]string, 0, 64)

	dec := xml.NewDecoder(bytes.NewReader(opf))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch strings.ToLower(se.Name.Local) {
		case "item":
			var id, href string
			for _, a := range se.Attr {
				switch strings.ToLower(a.Name.Local) {
				case "id":
					id = a.Value
				case "href":
					href = a.Value
				}
			}
			if id != "" && href != "" {
				manifest[id] = manifestItem{ID: id, Href: href}
			}
		case "itemref":
			var idref string
			for _, a := range se.Attr {
				if strings.ToLower(a.Name.Local) == "idref" {
					idref = a.Value
					break
				}
			}
			if idref != "" {
				spineIDs = append(spineIDs, idref)
			}
		}
	}

	spineHrefs := make([]string, 0, len(spineIDs))
	for _, id := range spineIDs {
		if item, ok := manifest[id]; ok && item.Href != "" {
			spineHrefs = append(spineHrefs, item.Href)
		}
	}
	return spineHrefs
}

func htmlToText(b []byte) string {
	doc, err := html.Parse(bytes.NewReader(b))
	if err != nil || doc == nil {
		return ""
	}

	block := map[string]bool{
		"p": true, "div": true, "section": true, "article": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"li": true, "ul": true, "ol": true, "blockquote": true,
	}
	skip := map[string]bool{
		"script": true, "style": true, "head": true, "title": true, "nav": true,
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.ElementNode {
			tag := strings.ToLower(n.Data)
			if skip[tag] {
				return
			}
			if tag == "br" {
				sb.WriteString("\n")
			}
			if block[tag] {
				sb.WriteString("\n\n")
			}
		}
		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") && !strings.HasSuffix(sb.String(), " ") {
					sb.WriteString(" ")
				}
				sb.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			tag := strings.ToLower(n.Data)
			if block[tag] {
				sb.WriteString("\n\n")
			}
		}
	}
	walk(doc)

	return sb.String()
}

func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	// Replace non-breaking spaces.
	s = strings.ReplaceAll(s, "\u00a0", " ")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" {
			blank++
			if blank <= 2 {
				out = append(out, "")
			}
			continue
		}
		blank = 0
		out = append(out, t)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

