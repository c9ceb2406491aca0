package export

import (
	"fmt"
	"time"
)

// Dataset is a titled table ready for rendering.
type Dataset struct {
	Title       string
	Subtitle    string
	Headers     []string
	Rows        [][]string
	GeneratedAt time.Time
}

// Renderer turns a dataset into a downloadable document.
type Renderer interface {
	Render(data Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

func validate(data Dataset) error {
	if len(data.Headers) == 0 {
		return fmt.Errorf("dataset requires at least one header")
	}
	for i, row := range data.Rows {
		if len(row) != len(data.Headers) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(data.Headers))
		}
	}
	return nil
}
