package filter

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"
)

// decodeDataHref decodes a feImage href that is a data: URI. Local file
// paths and remote URLs are intentionally not resolved here — feImage
// only consumes inline raster data, matching the rest of the pipeline's
// refusal to touch the filesystem or network mid-filter.
func decodeDataHref(href string) (image.Image, bool) {
	if !strings.HasPrefix(href, "data:") {
		return nil, false
	}
	comma := strings.IndexByte(href, ',')
	if comma < 0 {
		return nil, false
	}
	meta := href[5:comma]
	payload := href[comma+1:]

	var raw []byte
	if strings.HasSuffix(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, false
		}
		raw = decoded
	} else {
		unescaped, err := url.QueryUnescape(payload)
		if err != nil {
			return nil, false
		}
		raw = []byte(unescaped)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, false
	}
	return img, true
}
