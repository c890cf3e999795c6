// Package respond renders structured-data answers from the catalog. No
// language model is involved: content fields are fully determined by the
// inputs, and only the phrasing template is chosen at random from the
// injected source, so a fixed seed reproduces byte-identical output.
package respond

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/hasiholan/toba-guide/catalog"
	"github.com/hasiholan/toba-guide/query"
)

const maxRecommendations = 3

type Composer struct {
	rng *rand.Rand
}

// NewComposer builds a composer around the given random source; a nil
// source is seeded from the clock.
func NewComposer(rng *rand.Rand) *Composer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Composer{rng: rng}
}

var (
	locationKeywords = []string{"lokasi", "dimana", "di mana", "letak", "alamat", "where", "location", "address"}
	ratingKeywords   = []string{"rating", "bintang", "nilai", "stars", "score"}
)

// Compose picks the structured-data view for a parsed message: a location or
// rating answer when the message carries the matching cue words, a
// comprehensive multi-section answer when several entities or a
// recommendation request are involved, and a general detail answer
// otherwise. Returns "" when nothing can be rendered.
func (c *Composer) Compose(parsed query.ParsedQuery, message string, pois []catalog.PointOfInterest) string {
	lower := strings.ToLower(message)

	if parsed.Primary != nil {
		if containsAny(lower, locationKeywords) {
			return c.Location(*parsed.Primary)
		}
		if containsAny(lower, ratingKeywords) {
			return c.Rating(*parsed.Primary)
		}
	}

	if len(parsed.Additional) > 0 || parsed.WantsMore || (parsed.Primary == nil && parsed.Mentions > 0) {
		return c.Comprehensive(parsed, pois)
	}

	if parsed.Primary != nil {
		return c.Detail(*parsed.Primary)
	}

	return ""
}

func (c *Composer) Location(poi catalog.PointOfInterest) string {
	lat := poi.FieldValue(catalog.FieldLatitude)
	lon := poi.FieldValue(catalog.FieldLongitude)
	templates := []string{
		fmt.Sprintf("%s terletak di kecamatan %s, dengan alamat %s. Kamu dapat menggunakan koordinat GPS (%s, %s) untuk menemukannya. Info lengkap di %s.",
			poi.Title, poi.Subdistrict, poi.Address, lat, lon, poi.Link),
		fmt.Sprintf("Lokasi %s berada di kecamatan %s. Alamat: %s. Cek koordinat: (%s, %s) dan kunjungi %s.",
			poi.Title, poi.Subdistrict, poi.Address, lat, lon, poi.Link),
		fmt.Sprintf("Kamu bisa menemukan %s di %s pada alamat %s. Koordinatnya adalah (%s, %s). Klik %s untuk detail lebih lanjut.",
			poi.Title, poi.Subdistrict, poi.Address, lat, lon, poi.Link),
		fmt.Sprintf("%s berlokasi di %s, %s. Pastikan untuk menggunakan koordinat (%s, %s). Kunjungi %s untuk info peta.",
			poi.Title, poi.Address, poi.Subdistrict, lat, lon, poi.Link),
		fmt.Sprintf("Untuk mencapai %s, kamu bisa pergi ke %s di kecamatan %s. Lokasi GPS: (%s, %s). Info selengkapnya: %s.",
			poi.Title, poi.Address, poi.Subdistrict, lat, lon, poi.Link),
	}
	return templates[c.rng.Intn(len(templates))]
}

func (c *Composer) Rating(poi catalog.PointOfInterest) string {
	rating := poi.RatingString()
	if rating == "" {
		rating = "belum tersedia"
	}
	templates := []string{
		fmt.Sprintf("%s memiliki rating sebesar %s.", poi.Title, rating),
		fmt.Sprintf("Rating dari %s adalah %s, cukup menarik untuk dikunjungi!", poi.Title, rating),
		fmt.Sprintf("Dengan skor %s, %s menjadi salah satu tempat yang direkomendasikan.", rating, poi.Title),
		fmt.Sprintf("%s mendapatkan penilaian %s dari para pengunjungnya.", poi.Title, rating),
		fmt.Sprintf("Skor rating %s menurut pengunjung adalah %s.", poi.Title, rating),
	}
	return templates[c.rng.Intn(len(templates))]
}

func (c *Composer) Detail(poi catalog.PointOfInterest) string {
	templates := []string{
		fmt.Sprintf("%s adalah tempat dengan kategori %s yang bisa kamu kunjungi di kecamatan %s. Tempat ini menawarkan aktivitas seperti %s. Deskripsinya: %s",
			poi.Title, poi.Category, poi.Subdistrict, poi.Activity, poi.Description),
		fmt.Sprintf("Kamu dapat mengunjungi %s, yang berlokasi di kecamatan %s. Tempat ini terkenal dengan kategori %s dan aktivitas %s. Berikut deskripsinya: %s",
			poi.Title, poi.Subdistrict, poi.Category, poi.Activity, poi.Description),
		fmt.Sprintf("%s termasuk dalam kategori %s dan berada di kecamatan %s. Tempat ini cocok untuk aktivitas seperti %s. Detail: %s",
			poi.Title, poi.Category, poi.Subdistrict, poi.Activity, poi.Description),
		fmt.Sprintf("Tempat %s di kecamatan %s terkenal dengan kategori %s dan aktivitas yang ditawarkan seperti %s. Deskripsi singkat: %s",
			poi.Title, poi.Subdistrict, poi.Category, poi.Activity, poi.Description),
		fmt.Sprintf("Destinasi %s berada di kecamatan %s. Tempat ini menawarkan kategori %s dan aktivitas seru seperti %s. Deskripsi: %s",
			poi.Title, poi.Subdistrict, poi.Category, poi.Activity, poi.Description),
	}
	return templates[c.rng.Intn(len(templates))]
}

// DetailBlock is the plain field-per-line rendering used inside
// comprehensive answers and as ingestion passage text.
func DetailBlock(poi catalog.PointOfInterest) string {
	return fmt.Sprintf(
		"Nama: %s\nLatitude: %s\nLongitude: %s\nKategori: %s\nAktivitas: %s\nKecamatan: %s\nDeskripsi: %s\n",
		poi.Title,
		poi.FieldValue(catalog.FieldLatitude),
		poi.FieldValue(catalog.FieldLongitude),
		poi.Category,
		poi.Activity,
		poi.Subdistrict,
		poi.Description,
	)
}

// Comprehensive renders the multi-section answer: the primary entity, every
// other mentioned entity, and (when asked) up to three same-category
// recommendations excluding everything already mentioned, in catalog order.
func (c *Composer) Comprehensive(parsed query.ParsedQuery, pois []catalog.PointOfInterest) string {
	var parts []string

	if parsed.Primary != nil {
		parts = append(parts, "=== DESTINASI UTAMA ===", DetailBlock(*parsed.Primary))
	}

	if len(parsed.Additional) > 0 {
		parts = append(parts, "\n=== DESTINASI LAIN YANG DISEBUTKAN ===")
		for _, poi := range parsed.Additional {
			parts = append(parts, DetailBlock(poi), "---")
		}
	}

	if parsed.WantsMore && parsed.Primary != nil {
		parts = append(parts, "\n=== REKOMENDASI WISATA SERUPA ===")

		mentioned := map[string]struct{}{strings.ToLower(parsed.Primary.Title): {}}
		for _, poi := range parsed.Additional {
			mentioned[strings.ToLower(poi.Title)] = struct{}{}
		}

		var recommendations []string
		for _, poi := range pois {
			if _, ok := mentioned[strings.ToLower(poi.Title)]; ok {
				continue
			}
			if poi.Category != parsed.Primary.Category {
				continue
			}
			recommendations = append(recommendations,
				fmt.Sprintf("- %s (Kategori: %s, Kecamatan: %s)", poi.Title, poi.Category, poi.Subdistrict))
			if len(recommendations) >= maxRecommendations {
				break
			}
		}

		if len(recommendations) > 0 {
			parts = append(parts, recommendations...)
		} else {
			parts = append(parts, "- Tidak ada rekomendasi serupa ditemukan dalam kategori yang sama.")
		}
	}

	return strings.Join(parts, "\n")
}

// TopDestinations lists the n best-rated entities, ties broken by review
// count, for the "most famous places" shortcut.
func TopDestinations(pois []catalog.PointOfInterest, n int) string {
	sorted := make([]catalog.PointOfInterest, len(pois))
	copy(sorted, pois)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].Reviews > sorted[j].Reviews
	})

	if n > len(sorted) {
		n = len(sorted)
	}

	lines := make([]string, 0, n+1)
	lines = append(lines, "Berikut beberapa destinasi wisata paling terkenal di sekitar Danau Toba:")
	for _, poi := range sorted[:n] {
		lines = append(lines, fmt.Sprintf("%s (Deskripsi: %s, Kecamatan: %s)", poi.Title, poi.Description, poi.Subdistrict))
	}
	return strings.Join(lines, "\n")
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
