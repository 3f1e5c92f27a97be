package imagegen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bitop-dev/imagegen/internal/schema"
	"github.com/bitop-dev/imagegen/openai"
)

const (
	generationsPath = "/images/generations"
	editsPath       = "/images/edits"
	variationsPath  = "/images/variations"
)

var imageResponseShape = schema.MustCompile("image_response.json", json.RawMessage(`{
	"type": "object",
	"required": ["created", "data"],
	"properties": {
		"created": {"type": "integer"},
		"data": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"url": {"type": "string"},
					"b64_json": {"type": "string"},
					"revised_prompt": {"type": "string"}
				}
			}
		}
	}
}`))

// CreateImage generates images from a prompt. A nil client uses openai.Default().
func CreateImage(ctx context.Context, c *openai.Client, req CreateImageRequest) (*ImageResponse, error) {
	c, err := clientOrDefault(c)
	if err != nil {
		return nil, err
	}
	return postJSON[ImageResponse](ctx, c, generationsPath, imageResponseShape, req)
}

// CreateImageEdit edits or extends req.Image according to the prompt, limited
// to the transparent area of req.Mask when one is given.
func CreateImageEdit(ctx context.Context, c *openai.Client, req CreateImageEditRequest) (*ImageResponse, error) {
	c, err := clientOrDefault(c)
	if err != nil {
		return nil, err
	}
	form, err := newEditForm(req)
	if err != nil {
		return nil, err
	}
	return postForm[ImageResponse](ctx, c, editsPath, imageResponseShape, form)
}

// CreateImageVariation creates variations of req.Image.
func CreateImageVariation(ctx context.Context, c *openai.Client, req CreateImageVariationRequest) (*ImageResponse, error) {
	c, err := clientOrDefault(c)
	if err != nil {
		return nil, err
	}
	form, err := newVariationForm(req)
	if err != nil {
		return nil, err
	}
	return postForm[ImageResponse](ctx, c, variationsPath, imageResponseShape, form)
}

func clientOrDefault(c *openai.Client) (*openai.Client, error) {
	if c == nil {
		c = openai.Default()
	}
	if c == nil {
		return nil, fmt.Errorf("openai client is not configured")
	}
	return c, nil
}
