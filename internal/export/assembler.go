// Package export turns a finished checklist into a flat, deterministically
// named photo archive.
package export

import (
	"fmt"
	"strings"

	"github.com/mwhitby/unitcheck/internal/domain"
	"github.com/mwhitby/unitcheck/internal/ports"
)

// photoSource is the subset of the item state store the assembler reads.
type photoSource interface {
	Photos(key domain.ItemKey) []domain.Photo
}

// Assemble flattens every captured photo into (filename, bytes) pairs.
// Iteration order is checklist order, then item order, then capture
// order; each photo gets a strictly increasing 1-based counter scoped to
// the whole export:
//
//	{counter}_{categoryTitle}_{itemName}_{photoIndexWithinItem}.jpg
//
// with filesystem-hostile characters in titles and item names replaced by
// dashes. Photo-less items contribute nothing; a skip marker never
// excludes an item's photos (skip-with-photos-kept items export in full).
// A checklist with zero photos overall fails with domain.ErrEmptyExport.
func Assemble(instance *domain.ChecklistInstance, photos photoSource) ([]ports.ExportFile, error) {
	var files []ports.ExportFile
	counter := 0
	for _, category := range instance.Categories {
		for index, item := range category.Items {
			key := domain.ItemKey{CategoryID: category.ID, Index: index}
			for i, photo := range photos.Photos(key) {
				counter++
				name := fmt.Sprintf("%d_%s_%s_%d.jpg",
					counter, sanitize(category.Title), sanitize(item), i+1)
				files = append(files, ports.ExportFile{Name: name, Data: photo.Data})
			}
		}
	}
	if len(files) == 0 {
		return nil, domain.ErrEmptyExport
	}
	return files, nil
}

// ArchiveName is the externally agreed name for the downloaded archive.
func ArchiveName(meta domain.InspectionMetadata) string {
	return fmt.Sprintf("Unit_%s_%s_%s.zip", meta.UnitNumber, meta.Type, meta.Date)
}

var sanitizer = strings.NewReplacer(
	"/", "-", `\`, "-", ":", "-", "*", "-", "?", "-",
	`"`, "-", "<", "-", ">", "-", "|", "-",
)

func sanitize(s string) string {
	return sanitizer.Replace(s)
}
