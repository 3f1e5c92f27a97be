package imagegen

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

const octetStream = "application/octet-stream"

// filePart is one file-bearing section of a multipart form.
type filePart struct {
	name     string
	fileName string
	body     *FileStream
}

// newFilePart resolves the file name of in and opens it for streaming.
func newFilePart(name string, in ImageInput) (*filePart, error) {
	fileName, ok := baseName(in.Path)
	if !ok {
		return nil, &ImageReadError{Message: fmt.Sprintf("cannot extract file name from %q", in.Path)}
	}
	body, err := OpenFileStream(in.Path)
	if err != nil {
		return nil, err
	}
	return &filePart{name: name, fileName: fileName, body: body}, nil
}

func baseName(path string) (string, bool) {
	if path == "" || strings.HasSuffix(path, string(os.PathSeparator)) || strings.HasSuffix(path, "/") {
		return "", false
	}
	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(os.PathSeparator) {
		return "", false
	}
	return name, true
}

type formField struct {
	name  string
	value string
	file  *filePart
}

// Form is an ordered multipart/form-data body whose file parts are streamed
// from disk when the body is read.
type Form struct {
	fields []formField
	w      *multipart.Writer
	pr     *io.PipeReader
	done   chan struct{}
}

func newForm() *Form {
	return &Form{}
}

func (f *Form) addFile(p *filePart) {
	f.fields = append(f.fields, formField{name: p.name, file: p})
}

func (f *Form) addText(name, value string) {
	f.fields = append(f.fields, formField{name: name, value: value})
}

func addOptional[T any](f *Form, name string, v *T, render func(T) string) {
	if v == nil {
		return
	}
	f.addText(name, render(*v))
}

// Names lists the form's field names in wire order.
func (f *Form) Names() []string {
	out := make([]string, len(f.fields))
	for i, fd := range f.fields {
		out[i] = fd.name
	}
	return out
}

// Value returns a text field's value. File parts report their file name.
func (f *Form) Value(name string) (string, bool) {
	for _, fd := range f.fields {
		if fd.name != name {
			continue
		}
		if fd.file != nil {
			return fd.file.fileName, true
		}
		return fd.value, true
	}
	return "", false
}

func (f *Form) writer() *multipart.Writer {
	if f.w == nil {
		f.w = multipart.NewWriter(io.Discard)
	}
	return f.w
}

// ContentType is the multipart content type including the boundary.
func (f *Form) ContentType() string {
	return f.writer().FormDataContentType()
}

// Body starts encoding the form into a pipe and returns its read side. Closing
// the reader stops the encoder and releases every file handle.
func (f *Form) Body() io.ReadCloser {
	pr, pw := io.Pipe()
	boundary := f.writer().Boundary()
	f.pr = pr
	f.done = make(chan struct{})
	go func() {
		defer close(f.done)
		defer f.closeFiles()
		mw := multipart.NewWriter(pw)
		if err := mw.SetBoundary(boundary); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(f.encode(mw))
	}()
	return pr
}

func (f *Form) encode(mw *multipart.Writer) error {
	for _, fd := range f.fields {
		if fd.file == nil {
			if err := mw.WriteField(fd.name, fd.value); err != nil {
				return err
			}
			continue
		}
		// CreateFormFile sets Content-Type: application/octet-stream.
		pw, err := mw.CreateFormFile(fd.name, fd.file.fileName)
		if err != nil {
			return err
		}
		if _, err := fd.file.body.WriteTo(pw); err != nil {
			return err
		}
	}
	return mw.Close()
}

// Close stops the encoder, waits for it to exit and releases the form's files.
func (f *Form) Close() error {
	if f.pr != nil {
		_ = f.pr.Close()
	}
	err := f.closeFiles()
	if f.done != nil {
		<-f.done
	}
	return err
}

func (f *Form) closeFiles() error {
	var errs []error
	for _, fd := range f.fields {
		if fd.file == nil {
			continue
		}
		if err := fd.file.body.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func newEditForm(req CreateImageEditRequest) (*Form, error) {
	f := newForm()
	image, err := newFilePart("image", req.Image)
	if err != nil {
		return nil, err
	}
	f.addFile(image)
	if req.Mask != nil {
		mask, err := newFilePart("mask", *req.Mask)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		f.addFile(mask)
	}
	f.addText("prompt", req.Prompt)
	addScalars(f, req.N, req.Size, req.ResponseFormat, req.User)
	return f, nil
}

func newVariationForm(req CreateImageVariationRequest) (*Form, error) {
	f := newForm()
	image, err := newFilePart("image", req.Image)
	if err != nil {
		return nil, err
	}
	f.addFile(image)
	addScalars(f, req.N, req.Size, req.ResponseFormat, req.User)
	return f, nil
}

func addScalars(f *Form, n *int, size *ImageSize, format *ResponseFormat, user *string) {
	addOptional(f, "n", n, formatInt)
	addOptional(f, "size", size, ImageSize.String)
	addOptional(f, "response_format", format, ResponseFormat.String)
	addOptional(f, "user", user, func(s string) string { return s })
}
