package paint

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

func readFontFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// decodeImageHref resolves an `<image>` element's href to pixels.
// data: URIs are decoded inline; local filesystem paths are read
// directly. Remote URLs are never fetched here — the external-resource
// policy only validates and enumerates them for a host to preflight and
// substitute (see internal/resource); a remote href that reaches the
// painter unsubstituted simply paints nothing.
func decodeImageHref(href string) (image.Image, bool) {
	if strings.HasPrefix(strings.ToLower(href), "data:") {
		return decodeDataURI(href)
	}
	if strings.HasPrefix(strings.ToLower(href), "http://") || strings.HasPrefix(strings.ToLower(href), "https://") {
		return nil, false
	}
	data, err := os.ReadFile(href)
	if err != nil {
		return nil, false
	}
	return decodeBytes(data)
}

func decodeDataURI(href string) (image.Image, bool) {
	comma := strings.IndexByte(href, ',')
	if comma < 0 {
		return nil, false
	}
	meta, payload := href[:comma], href[comma+1:]
	var data []byte
	var err error
	if strings.Contains(meta, "base64") {
		data, err = base64.StdEncoding.DecodeString(payload)
	} else {
		data = []byte(payload)
	}
	if err != nil {
		return nil, false
	}
	return decodeBytes(data)
}

func decodeBytes(data []byte) (image.Image, bool) {
	r := bytes.NewReader(data)
	if img, err := png.Decode(r); err == nil {
		return img, true
	}
	r.Seek(0, 0)
	if img, err := jpeg.Decode(r); err == nil {
		return img, true
	}
	r.Seek(0, 0)
	if img, err := gif.Decode(r); err == nil {
		return img, true
	}
	r.Seek(0, 0)
	if img, err := bmp.Decode(r); err == nil {
		return img, true
	}
	r.Seek(0, 0)
	if img, err := webp.Decode(r); err == nil {
		return img, true
	}
	return nil, false
}
