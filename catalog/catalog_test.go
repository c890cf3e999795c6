package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `title,link,rating,reviews,address,latitude,longitude,kategori,aktivitas,deskripsi,kecamatan
Bukit Holbung,http://x,4.6,1200,Jl. Holbung,2.68,98.8,Alam,Hiking,Bukit dengan pemandangan danau,Harian
Air Terjun Efrata,http://y,4.4,800,Jl. Efrata,2.65,98.77,Alam,Berenang,Air terjun di lembah,Harian
Museum Huta Bolon,http://z,,56,Jl. Simanindo,2.74,98.83,Budaya,Wisata budaya,Museum adat Batak,Simanindo
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesRows(t *testing.T) {
	pois, err := Load(writeCatalog(t, sampleCSV))
	require.NoError(t, err)
	require.Len(t, pois, 3)

	holbung := pois[0]
	assert.Equal(t, "Bukit Holbung", holbung.Title)
	assert.Equal(t, "Harian", holbung.Subdistrict)
	assert.Equal(t, "Jl. Holbung", holbung.Address)
	assert.Equal(t, 2.68, holbung.Latitude)
	assert.Equal(t, 98.8, holbung.Longitude)
	assert.True(t, holbung.HasRating)
	assert.Equal(t, 4.6, holbung.Rating)
	assert.Equal(t, 1200, holbung.Reviews)
}

func TestLoadKeepsRowsWithMissingRating(t *testing.T) {
	pois, err := Load(writeCatalog(t, sampleCSV))
	require.NoError(t, err)

	museum := pois[2]
	assert.False(t, museum.HasRating)
	assert.Equal(t, "", museum.RatingString())
	assert.Equal(t, 56, museum.Reviews)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestLoadMissingColumn(t *testing.T) {
	header := "title,link,rating,reviews,address,latitude,longitude,aktivitas,deskripsi,kecamatan\n"
	path := writeCatalog(t, header+"Bukit Holbung,http://x,4.6,1200,Jl. Holbung,2.68,98.8,Hiking,Bukit,Harian\n")
	_, err := Load(path)
	require.ErrorContains(t, err, "kategori")
}

func TestFieldValueFormatsCoordinates(t *testing.T) {
	poi := PointOfInterest{Latitude: 2.68, Longitude: 98.8}
	assert.Equal(t, "2.68", poi.FieldValue(FieldLatitude))
	assert.Equal(t, "98.8", poi.FieldValue(FieldLongitude))
}
