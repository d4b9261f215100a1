package eid

import (
	"bytes"
	"image"

	_ "image/jpeg" // the card stores the photo as JPEG
)

// Photo is the card holder photograph as stored on the card, with the
// parameters reported by the image decoding boundary.
type Photo struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// decodePhoto runs the extracted bytes through the image boundary. Only
// the image header is inspected; the payload bytes are returned untouched.
func decodePhoto(data []byte) (*Photo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &PhotoFormatError{Err: err}
	}

	return &Photo{
		Data:   data,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
