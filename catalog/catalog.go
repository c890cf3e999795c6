package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// PointOfInterest is one row of the tourism catalog. The catalog is loaded
// once at startup and treated as read-only for the lifetime of the process,
// so values may be shared across concurrent requests without locking.
type PointOfInterest struct {
	Title       string
	Link        string
	Rating      float64
	HasRating   bool
	Reviews     int
	Address     string
	Latitude    float64
	Longitude   float64
	Category    string
	Activity    string
	Description string
	Subdistrict string
}

// Field identifies one searchable attribute of a PointOfInterest.
type Field int

const (
	FieldTitle Field = iota
	FieldLink
	FieldRating
	FieldReviews
	FieldAddress
	FieldLatitude
	FieldLongitude
	FieldCategory
	FieldActivity
	FieldDescription
	FieldSubdistrict
)

// SearchFields is the attribute set scanned by FuzzySearch.
var SearchFields = []Field{
	FieldTitle, FieldLink, FieldRating, FieldReviews, FieldAddress,
	FieldLatitude, FieldLongitude, FieldCategory, FieldActivity,
	FieldDescription, FieldSubdistrict,
}

// FieldValue renders the named attribute as a string, matching the textual
// form used when the catalog row was written out.
func (p PointOfInterest) FieldValue(f Field) string {
	switch f {
	case FieldTitle:
		return p.Title
	case FieldLink:
		return p.Link
	case FieldRating:
		return p.RatingString()
	case FieldReviews:
		if p.Reviews == 0 {
			return ""
		}
		return strconv.Itoa(p.Reviews)
	case FieldAddress:
		return p.Address
	case FieldLatitude:
		return formatCoord(p.Latitude)
	case FieldLongitude:
		return formatCoord(p.Longitude)
	case FieldCategory:
		return p.Category
	case FieldActivity:
		return p.Activity
	case FieldDescription:
		return p.Description
	case FieldSubdistrict:
		return p.Subdistrict
	default:
		return ""
	}
}

// RatingString renders the rating, or "" when the row has none.
func (p PointOfInterest) RatingString() string {
	if !p.HasRating {
		return ""
	}
	return strconv.FormatFloat(p.Rating, 'f', -1, 64)
}

func formatCoord(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Catalog file headers as shipped in the source dataset.
var requiredColumns = []string{
	"title", "link", "rating", "reviews", "address", "latitude",
	"longitude", "kategori", "aktivitas", "deskripsi", "kecamatan",
}

// Load reads the delimited catalog file. Rows with unparseable numeric
// fields are kept with those fields zeroed; only structural problems
// (missing file, missing columns) are errors.
func Load(path string) ([]PointOfInterest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("catalog %s is missing column %q", path, col)
		}
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	pois := make([]PointOfInterest, 0, len(records)-1)
	for _, row := range records[1:] {
		poi := PointOfInterest{
			Title:       cell(row, "title"),
			Link:        cell(row, "link"),
			Address:     cell(row, "address"),
			Category:    cell(row, "kategori"),
			Activity:    cell(row, "aktivitas"),
			Description: cell(row, "deskripsi"),
			Subdistrict: cell(row, "kecamatan"),
		}
		if poi.Title == "" {
			continue
		}
		if rating, err := strconv.ParseFloat(cell(row, "rating"), 64); err == nil {
			poi.Rating = rating
			poi.HasRating = true
		}
		if reviews, err := strconv.Atoi(cell(row, "reviews")); err == nil {
			poi.Reviews = reviews
		}
		if lat, err := strconv.ParseFloat(cell(row, "latitude"), 64); err == nil {
			poi.Latitude = lat
		}
		if lon, err := strconv.ParseFloat(cell(row, "longitude"), 64); err == nil {
			poi.Longitude = lon
		}
		pois = append(pois, poi)
	}

	return pois, nil
}
