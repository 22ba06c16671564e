// Package plays removes non-play events and duplicate rows from the raw play table.
package plays

import (
	"github.com/okian/playcall/internal/domain/dedupe"
	"github.com/okian/playcall/internal/domain/model"
	"github.com/okian/playcall/internal/domain/playtype"
)

// CleanReport counts the rows removed by Clean.
type CleanReport struct {
	Input          int `json:"input"`
	Administrative int `json:"administrative"`
	Duplicates     int `json:"duplicates"`
	Output         int `json:"output"`
}

// Clean drops administrative play types and exact duplicates, keeping the
// first occurrence of each row. Survivors keep their input order.
func Clean(rows []model.PlayRecord) ([]model.PlayRecord, CleanReport) {
	rep := CleanReport{Input: len(rows)}
	seen := dedupe.NewInMemoryDeduper[model.PlayRecord](dedupe.WithCapacity(len(rows)))

	out := make([]model.PlayRecord, 0, len(rows))
	for _, r := range rows {
		if playtype.IsAdministrative(r.PlayTypeID) {
			rep.Administrative++
			continue
		}
		if seen.SeenAndRecord(r) {
			rep.Duplicates++
			continue
		}
		out = append(out, r)
	}
	rep.Output = len(out)
	return out, rep
}
