package image

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"

	"github.com/chai2010/webp"
)

// ProcessImage decodes the upload, re-encodes it at web-friendly quality
// and returns the buffer plus the content type to store it under.
func ProcessImage(file *multipart.FileHeader) (*bytes.Buffer, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("could not open file: %v", err)
	}
	defer src.Close()

	img, format, err := image.Decode(src)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image: %v", err)
	}

	buf := new(bytes.Buffer)

	switch format {
	case "jpeg":
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: 85})
		return buf, "image/jpeg", err
	case "png":
		err = png.Encode(buf, img)
		return buf, "image/png", err
	case "webp":
		err = webp.Encode(buf, img, &webp.Options{Quality: 85})
		return buf, "image/webp", err
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", format)
	}
}
