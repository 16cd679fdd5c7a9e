// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strings"
)

// Image is one embedded picture pulled out of an Office document.
type Image struct {
	Name string // base file name inside the package, e.g. "image1.png"
	MIME string
	Data []byte
}

// Caption pairs an extracted image name with its description.
type Caption struct {
	Name string
	Text string
}

// rasterMIME maps the media extensions worth captioning to their MIME types.
// Vector formats (emf, wmf, svg) are left out; the vision API wants rasters.
var rasterMIME = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// ExtractImages returns the raster images embedded in the Office document at
// filePath, sorted by name. Office documents are zip archives; pictures live
// under a media/ directory ("word/media" in .docx, "ppt/media" in .pptx).
// Entries in other formats are skipped silently.
func ExtractImages(filePath string) ([]Image, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening %s as zip: %w", filePath, err)
	}
	defer zr.Close()

	var images []Image
	for _, f := range zr.File {
		if !strings.Contains(f.Name, "/media/") {
			continue
		}
		mime, ok := rasterMIME[strings.ToLower(path.Ext(f.Name))]
		if !ok {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s in %s: %w", f.Name, filePath, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s in %s: %w", f.Name, filePath, err)
		}
		images = append(images, Image{Name: path.Base(f.Name), MIME: mime, Data: data})
	}

	sort.Slice(images, func(i, j int) bool { return images[i].Name < images[j].Name })
	return images, nil
}

// imageRefPattern matches a Markdown image reference and captures its target.
var imageRefPattern = regexp.MustCompile(`!\[[^\]]*\]\(([^)]+)\)`)

// MergeCaptions weaves captions into converted Markdown. An image reference
// whose target names a captioned file gets the caption as its alt text.
// Captions with no matching reference are appended under an
// "Image descriptions" heading, so the description survives even when the
// converter dropped the image itself.
func MergeCaptions(markdown string, captions []Caption) string {
	if len(captions) == 0 {
		return markdown
	}

	byName := make(map[string]string, len(captions))
	for _, c := range captions {
		byName[c.Name] = c.Text
	}

	used := make(map[string]bool, len(captions))
	merged := imageRefPattern.ReplaceAllStringFunc(markdown, func(ref string) string {
		target := imageRefPattern.FindStringSubmatch(ref)[1]
		name := path.Base(strings.TrimSpace(target))
		text, ok := byName[name]
		if !ok {
			return ref
		}
		used[name] = true
		return "![" + altText(text) + "](" + target + ")"
	})

	var leftover []Caption
	for _, c := range captions {
		if !used[c.Name] {
			leftover = append(leftover, c)
		}
	}
	if len(leftover) == 0 {
		return merged
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(merged, "\n"))
	b.WriteString("\n\n## Image descriptions\n\n")
	for _, c := range leftover {
		fmt.Fprintf(&b, "- **%s**: %s\n", c.Name, altText(c.Text))
	}
	return b.String()
}

// altText flattens a caption onto one line and swaps out the brackets that
// would terminate a Markdown alt text early.
func altText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	text = strings.ReplaceAll(text, "[", "(")
	return strings.ReplaceAll(text, "]", ")")
}
