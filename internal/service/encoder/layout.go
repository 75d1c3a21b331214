package encoder

import (
	"encoding/hex"
	"io"

	"github.com/goccy/go-json"

	"github.com/oshokin/ipmi-fru-it/internal/domain/fru"
)

// layoutReport is the JSON form of an assembled image.
type layoutReport struct {
	Size   int          `json:"size"`
	BLAKE3 string       `json:"blake3"`
	Header headerReport `json:"header"`
	Areas  []areaReport `json:"areas"`
}

type headerReport struct {
	InternalUse int `json:"internal_use"`
	Chassis     int `json:"chassis"`
	Board       int `json:"board"`
	Product     int `json:"product"`
	MultiRecord int `json:"multi_record"`
	Checksum    int `json:"checksum"`
}

type areaReport struct {
	Area    string        `json:"area"`
	Section string        `json:"section"`
	Offset  int           `json:"offset"`
	Size    int           `json:"size"`
	Fields  []fieldReport `json:"fields,omitempty"`
}

type fieldReport struct {
	Key        string `json:"key"`
	Value      string `json:"value"`
	Predefined bool   `json:"predefined"`
	Type       string `json:"type"`
	Length     int    `json:"length"`
	Offset     int    `json:"offset"`
}

// newLayoutReport describes img. Offsets are in bytes from the start of the
// image, field offsets from the start of their area.
func newLayoutReport(img *fru.Image, digest [32]byte) *layoutReport {
	header := img.Header.Bytes()

	report := &layoutReport{
		Size:   img.Len(),
		BLAKE3: hex.EncodeToString(digest[:]),
		Header: headerReport{
			InternalUse: int(img.Header.InternalUse) * fru.Alignment,
			Chassis:     int(img.Header.Chassis) * fru.Alignment,
			Board:       int(img.Header.Board) * fru.Alignment,
			Product:     int(img.Header.Product) * fru.Alignment,
			MultiRecord: int(img.Header.MultiRecord) * fru.Alignment,
			Checksum:    int(header[fru.HeaderSize-1]),
		},
		Areas: make([]areaReport, 0, len(img.Areas)),
	}

	for _, area := range img.Areas {
		ar := areaReport{
			Area:    area.Kind.String(),
			Section: area.Section,
			Offset:  area.Offset * fru.Alignment,
			Size:    len(area.Data),
		}

		for _, f := range area.Fields {
			ar.Fields = append(ar.Fields, fieldReport{
				Key:        f.Key,
				Value:      f.Value,
				Predefined: f.Predefined,
				Type:       f.Type.String(),
				Length:     f.Length,
				Offset:     f.Offset,
			})
		}

		report.Areas = append(report.Areas, ar)
	}

	return report
}

// writeLayout prints the indented JSON report of img to w.
func writeLayout(w io.Writer, img *fru.Image, digest [32]byte) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(newLayoutReport(img, digest))
}
