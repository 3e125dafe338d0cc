package editor

import (
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/pkg/idgen"
)

func NewBatch() models.Batch {
	return models.Batch{ID: idgen.New()}
}

func AddBatch(batches []models.Batch) []models.Batch {
	return Add(batches, NewBatch())
}

// AppendBatches adds generated batches after the existing ones.
func AppendBatches(batches, generated []models.Batch) []models.Batch {
	out := cloneAll(batches)
	return append(out, cloneAll(generated)...)
}

func RemoveBatch(batches []models.Batch, id string) []models.Batch {
	return Remove(batches, id)
}

func MoveBatchUp(batches []models.Batch, i int) []models.Batch {
	return MoveUp(batches, i)
}

func MoveBatchDown(batches []models.Batch, i int) []models.Batch {
	return MoveDown(batches, i)
}

func UpdateBatch(batches []models.Batch, id, field string, value any) ([]models.Batch, error) {
	return Update(batches, id, field, value)
}

func NormalizeBatches(batches []models.Batch) []models.Batch {
	return EnsureIDs(batches, func(b *models.Batch, id string) { b.ID = id })
}
