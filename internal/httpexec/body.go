package httpexec

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"atac/internal/atacx/errs"
	"atac/internal/model"
)

// builtBody is the materialized payload plus the Content-Type header it
// implies (already including any multipart boundary).
type builtBody struct {
	Reader      io.Reader
	ContentType string
	Length      int64 // -1 if unknown/streamed
}

// BuildBody applies the body variants named in §4.6 step 6. Entries must
// already have had variable resolution applied to their values.
func BuildBody(body model.Body) (*builtBody, error) {
	switch body.Kind {
	case "", model.BodyNone:
		return nil, nil

	case model.BodyMultipart:
		return buildMultipart(body.Entries)

	case model.BodyForm:
		values := url.Values{}
		for _, e := range body.Entries.Enabled() {
			values.Add(e.Key, e.Value)
		}
		encoded := values.Encode()
		return &builtBody{
			Reader:      strings.NewReader(encoded),
			ContentType: body.ContentType(),
			Length:      int64(len(encoded)),
		}, nil

	case model.BodyFile:
		f, err := os.Open(body.Path)
		if err != nil {
			return nil, errs.IO("build_body", body.Path, fmt.Errorf("CouldNotOpenFile: %w", err))
		}
		info, statErr := f.Stat()
		length := int64(-1)
		if statErr == nil {
			length = info.Size()
		}
		return &builtBody{Reader: f, Length: length}, nil

	case model.BodyRaw, model.BodyJSON, model.BodyXML, model.BodyHTML, model.BodyJavascript:
		return &builtBody{
			Reader:      strings.NewReader(body.Text),
			ContentType: body.ContentType(),
			Length:      int64(len(body.Text)),
		}, nil

	default:
		return nil, errs.Unsupported("build_body", string(body.Kind), fmt.Errorf("unknown body kind"))
	}
}

// buildMultipart writes every enabled entry as a form part; values
// prefixed with `!!` are read from disk as file parts with their basename
// preserved as the `filename` parameter (§4.6 step 6, §8 scenario 4).
func buildMultipart(entries model.KVList) (*builtBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, e := range entries.Enabled() {
		if path, ok := model.IsFileValue(e.Value); ok {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, errs.IO("build_body", path, fmt.Errorf("CouldNotOpenFile: %w", err))
			}
			part, err := w.CreateFormFile(e.Key, filepath.Base(path))
			if err != nil {
				return nil, errs.IO("build_body", path, err)
			}
			if _, err := part.Write(data); err != nil {
				return nil, errs.IO("build_body", path, err)
			}
			continue
		}
		if err := w.WriteField(e.Key, e.Value); err != nil {
			return nil, errs.IO("build_body", e.Key, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, errs.IO("build_body", "multipart", err)
	}

	return &builtBody{Reader: &buf, ContentType: w.FormDataContentType(), Length: int64(buf.Len())}, nil
}
