package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/valyala/fasthttp"

	"github.com/papercomputeco/casegen/pkg/llm"
	"github.com/papercomputeco/casegen/pkg/orchestrator"
)

const (
	formPrompt = "prompt"
	formImages = "images"
)

// allowedTypes are the sniffed content types accepted as uploads.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// UploadError rejects one uploaded file.
type UploadError struct {
	Name   string
	Reason string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}

// readBatch parses the multipart submit form. Files are read fully so the
// batch outlives the request buffers.
func readBatch(c *fiber.Ctx) (orchestrator.Batch, error) {
	var batch orchestrator.Batch

	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return batch, &UploadError{Name: "request", Reason: "expected a multipart form"}
		}
		return batch, fmt.Errorf("parse multipart form: %w", err)
	}

	if values := form.Value[formPrompt]; len(values) > 0 {
		batch.Prompt = utils.CopyString(values[0])
	}

	for _, fh := range form.File[formImages] {
		// Some clients submit an untouched file input as a nameless, empty part.
		if fh.Filename == "" && fh.Size == 0 {
			continue
		}

		img, err := readImage(fh)
		if err != nil {
			return batch, err
		}
		img.Index = len(batch.Images) + 1
		batch.Images = append(batch.Images, img)
	}

	return batch, nil
}

func readImage(fh *multipart.FileHeader) (llm.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return llm.Image{}, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return llm.Image{}, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}

	if len(data) == 0 {
		return llm.Image{}, &UploadError{Name: fh.Filename, Reason: "file is empty"}
	}

	mimeType := http.DetectContentType(data)
	if !allowedTypes[mimeType] {
		return llm.Image{}, &UploadError{Name: fh.Filename, Reason: "unsupported image type " + mimeType + " (use JPEG or PNG)"}
	}

	return llm.Image{
		Name:     utils.CopyString(fh.Filename),
		MIMEType: mimeType,
		Data:     data,
	}, nil
}
