package imagegen

import "strconv"

type ImageSize string

const (
	Size256x256   ImageSize = "256x256"
	Size512x512   ImageSize = "512x512"
	Size1024x1024 ImageSize = "1024x1024"
)

func (s ImageSize) String() string { return string(s) }

type ResponseFormat string

const (
	ResponseFormatURL     ResponseFormat = "url"
	ResponseFormatB64JSON ResponseFormat = "b64_json"
)

func (f ResponseFormat) String() string { return string(f) }

// ImageInput points at a local image file. The file is opened only when the
// request is sent.
type ImageInput struct {
	Path string
}

func NewImageInput(path string) ImageInput { return ImageInput{Path: path} }

// Optional fields are pointers: nil means the field is not sent at all.

type CreateImageRequest struct {
	Prompt         string          `json:"prompt"`
	N              *int            `json:"n,omitempty"`
	Size           *ImageSize      `json:"size,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
	User           *string         `json:"user,omitempty"`
}

type CreateImageEditRequest struct {
	Image ImageInput
	// Mask marks the editable area with fully transparent pixels. Without it the
	// image's own transparency is used.
	Mask           *ImageInput
	Prompt         string
	N              *int
	Size           *ImageSize
	ResponseFormat *ResponseFormat
	User           *string
}

type CreateImageVariationRequest struct {
	Image          ImageInput
	N              *int
	Size           *ImageSize
	ResponseFormat *ResponseFormat
	User           *string
}

type ImageResponse struct {
	Created int64       `json:"created"`
	Data    []ImageData `json:"data"`
}

// ImageData holds one generated image, as a URL or base64 payload depending on
// the requested response format.
type ImageData struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// Ptr returns a pointer to v, for filling optional request fields.
func Ptr[T any](v T) *T { return &v }

func formatInt(n int) string { return strconv.Itoa(n) }
