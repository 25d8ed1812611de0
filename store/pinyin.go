package store

import (
	"strings"
	"time"
	"unicode"

	"github.com/mozillazg/go-pinyin"

	"github.com/totok22/quicksales-backend/models"
)

// GenerateSearchPinyin builds the search shortcode for a product name:
// the pinyin initials followed by the full pinyin, space separated, all
// lowercase. ASCII letters and digits pass through unchanged in both
// halves, other characters are dropped. A name yielding nothing falls
// back to its lowercased form.
func GenerateSearchPinyin(name string) string {
	args := pinyin.NewArgs()

	var initials, full strings.Builder
	for _, r := range name {
		if r <= unicode.MaxASCII {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				lower := unicode.ToLower(r)
				initials.WriteRune(lower)
				full.WriteRune(lower)
			}
			continue
		}

		syllables := pinyin.SinglePinyin(r, args)
		if len(syllables) == 0 {
			continue
		}
		syllable := strings.ToLower(syllables[0])
		if syllable == "" {
			continue
		}
		initials.WriteByte(syllable[0])
		full.WriteString(syllable)
	}

	if initials.Len() == 0 {
		return strings.ToLower(strings.TrimSpace(name))
	}
	return initials.String() + " " + full.String()
}

// BatchUpdatePinyin recomputes the pinyin code of every product and
// returns how many rows actually changed.
func (s *Store) BatchUpdatePinyin() (int, error) {
	products, err := s.GetAllProducts()
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range products {
		code := GenerateSearchPinyin(products[i].Name)
		if products[i].Pinyin != nil && *products[i].Pinyin == code {
			continue
		}
		if err := s.updateProductPinyin(products[i].ID, code); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

func (s *Store) updateProductPinyin(id, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"pinyin":     code,
			"updated_at": time.Now(),
		}).Error
}
