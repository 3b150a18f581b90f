package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shapestone/shape-csv2json/internal/logger"
	"github.com/shapestone/shape-csv2json/internal/output"
	"github.com/shapestone/shape-csv2json/internal/source"
	"github.com/shapestone/shape-csv2json/pkg/csv"
)

const (
	headerRowCount = "X-Row-Count"

	formFile = "file"
	formText = "text"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleConvert accepts CSV as a raw body, a multipart form with a "file"
// or "text" field, or a urlencoded form with a "text" field.
//
// Query parameters:
//
//	format    json (default) or yaml
//	indent    JSON indent width, 0 for compact
//	download  1 to send Content-Disposition: attachment
//	filename  download name, converted_<timestamp>.json when empty
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := logger.C(r.Context())
	q := r.URL.Query()

	format := strings.ToLower(q.Get("format"))
	if format == "" {
		format = s.out.Format
	}
	if format != csv.OutputJSON && format != csv.OutputYAML {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("unsupported format %q", format))
		return
	}

	indent := s.out.Indent
	if v := q.Get("indent"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 8 {
			writeError(w, r, http.StatusBadRequest, errors.New("indent must be between 0 and 8"))
			return
		}
		indent = n
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	in, err := readInput(r.Header.Get("Content-Type"), body)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	raw, err := source.Resolve(in)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	doc, err := csv.Convert(raw)
	if err != nil {
		log.Debug().Err(err).Int("bytes", len(raw)).Msg("conversion rejected")
		writeError(w, r, statusFor(err), err)
		return
	}

	rendered, err := csv.Render(doc, format, indent)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	log.Info().
		Int("rows", doc.Len()).
		Int("bytes", len(raw)).
		Dur("elapsed", time.Since(start)).
		Str("format", format).
		Msg(output.ConvertedStatus(doc.Len()))

	if format == csv.OutputYAML {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.Header().Set(headerRowCount, strconv.Itoa(doc.Len()))
	if q.Get("download") == "1" {
		name := output.Filename(q.Get("filename"), format, s.now())
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rendered)
}

// readInput maps a request body to a source.Input based on its media type.
// Anything that is not a form is treated as a raw CSV upload.
func readInput(contentType string, body []byte) (source.Input, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "multipart/form-data":
		return readMultipart(body, params["boundary"])
	case "application/x-www-form-urlencoded":
		vals, err := url.ParseQuery(string(body))
		if err != nil {
			return source.Input{}, errBadForm(err)
		}
		return source.Input{Text: vals.Get(formText)}, nil
	default:
		text, err := source.DecodeBytes(body)
		if err != nil {
			return source.Input{}, err
		}
		return source.Input{Text: text}, nil
	}
}

// readMultipart extracts the file and text fields. A file part with no file
// name is what browsers send when nothing was chosen, so it is ignored.
func readMultipart(body []byte, boundary string) (source.Input, error) {
	if boundary == "" {
		return source.Input{}, errBadForm(errors.New("missing boundary"))
	}

	var in source.Input
	mr := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return in, nil
		}
		if err != nil {
			return source.Input{}, errBadForm(err)
		}

		data, err := io.ReadAll(part)
		if err != nil {
			return source.Input{}, errBadForm(err)
		}

		switch part.FormName() {
		case formFile:
			if part.FileName() != "" && in.File == nil {
				in.Name = part.FileName()
				in.File = bytes.NewReader(data)
			}
		case formText:
			in.Text = string(data)
		}
	}
}

// badFormError marks malformed form bodies.
type badFormError struct{ err error }

func (e *badFormError) Error() string { return "invalid form: " + e.err.Error() }
func (e *badFormError) Unwrap() error { return e.err }

func errBadForm(err error) error { return &badFormError{err: err} }

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var (
		tooLarge *http.MaxBytesError
		badForm  *badFormError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &badForm),
		errors.Is(err, source.ErrNoInput),
		errors.Is(err, source.ErrNotCSV):
		return http.StatusBadRequest
	case errors.Is(err, csv.ErrEmptyInput),
		errors.Is(err, csv.ErrNoData),
		errors.Is(err, csv.ErrNoHeaders),
		errors.Is(err, csv.ErrColumnCount):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// columnDetail extracts position fields from a column count mismatch.
func columnDetail(err error) (line, expected, actual int, ok bool) {
	var cce *csv.ColumnCountError
	if !errors.As(err, &cce) {
		return 0, 0, 0, false
	}
	return cce.Line, cce.Expected, cce.Actual, true
}
