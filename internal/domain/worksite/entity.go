package worksite

import (
	"math"
	"strconv"
	"strings"

	"github.com/lumaclean/wfm-backend-go/internal/pkg/slug"
)

type SiteType string

const (
	TypeUffici       SiteType = "uffici"
	TypeAppartamenti SiteType = "appartamenti"
	TypeBnb          SiteType = "bnb"
	TypePst          SiteType = "pst"
)

// AllTypes lists the four catalog documents in their canonical order.
var AllTypes = []SiteType{TypeUffici, TypeAppartamenti, TypeBnb, TypePst}

func IsValidType(t string) bool {
	switch SiteType(t) {
	case TypeUffici, TypeAppartamenti, TypeBnb, TypePst:
		return true
	}
	return false
}

// Site is the normalized form of one catalog entry. Historical records come
// in two shapes (bare string or structured object); both resolve to this at
// the ingestion boundary so the rest of the pipeline sees a single type.
type Site struct {
	Name                       string
	Type                       SiteType
	DefaultMinutes             float64
	ConsumablesCostPerActivity float64
	ProductsCostPerActivity    float64
	FlatMonthlyRevenue         float64
	PerInterventionRevenue     float64
}

// Key returns the composite billing key "{type}__{slug(name)}".
func (s Site) Key() string {
	return slug.SiteKey(string(s.Type), s.Name)
}

// Catalogs holds the four normalized catalog lists.
type Catalogs map[SiteType][]Site

// ParseEntry normalizes a raw catalog record. Bare strings may carry a
// "|minutes" suffix and produce zero-valued cost fields; structured maps
// coerce every numeric field permissively (absent or unparsable values
// become 0). Returns false for records that carry no usable name.
func ParseEntry(raw interface{}, t SiteType) (Site, bool) {
	switch v := raw.(type) {
	case string:
		name, minutes := splitNameMinutes(v)
		if name == "" {
			return Site{}, false
		}
		return Site{Name: name, Type: t, DefaultMinutes: minutes}, true
	case map[string]interface{}:
		name, _ := v["nome"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			return Site{}, false
		}
		return Site{
			Name:                       name,
			Type:                       t,
			DefaultMinutes:             CoerceFloat(v["minuti"]),
			ConsumablesCostPerActivity: CoerceFloat(v["biancheria"]),
			ProductsCostPerActivity:    CoerceFloat(v["prodotti"]),
			FlatMonthlyRevenue:         CoerceFloat(v["fatturato_mensile"]),
			PerInterventionRevenue:     CoerceFloat(v["fatturato_intervento"]),
		}, true
	}
	return Site{}, false
}

func splitNameMinutes(s string) (string, float64) {
	name := strings.TrimSpace(s)
	var minutes float64
	if idx := strings.LastIndex(name, "|"); idx >= 0 {
		if m, err := strconv.ParseFloat(strings.TrimSpace(name[idx+1:]), 64); err == nil {
			minutes = m
			name = strings.TrimSpace(name[:idx])
		}
	}
	return name, minutes
}

// CoerceFloat applies the permissive numeric parse used across all stored
// records: numbers pass through, numeric strings are parsed, everything
// else (including NaN) collapses to 0.
func CoerceFloat(raw interface{}) float64 {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
