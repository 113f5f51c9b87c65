package bulk

import (
	"context"

	"github.com/MKhiriev/go-bulk-notes/models"
)

// Hooks is the set of callbacks fired around bulk persistence. The per-item
// hooks receive each record of the batch in payload order; the batch hooks
// receive the whole batch once.
//
// Ordering for save operations:
//
//	PreSave (per item) -> PreBulkSave -> persist -> PostBulkSave -> PostSave (per item)
//
// and for destroy operations:
//
//	PreDelete (per item) -> PreBulkDelete -> delete -> PostBulkDelete -> PostDelete (per item)
//
// Any nil hook is skipped. A non-nil error from a pre-hook aborts the
// operation before anything is persisted; post-hooks run after persistence
// succeeded and cannot abort it.
type Hooks struct {
	PreSave  func(ctx context.Context, note *models.Note) error
	PostSave func(ctx context.Context, note *models.Note, created bool)

	PreBulkSave  func(ctx context.Context, notes []*models.Note) error
	PostBulkSave func(ctx context.Context, notes []*models.Note)

	PreDelete  func(ctx context.Context, note *models.Note) error
	PostDelete func(ctx context.Context, note *models.Note)

	PreBulkDelete  func(ctx context.Context, notes []*models.Note) error
	PostBulkDelete func(ctx context.Context, notes []*models.Note)
}

// FirePreSave runs the per-item pre-save hook for every note in order.
// The first error aborts the loop and is returned.
func (h Hooks) FirePreSave(ctx context.Context, notes []*models.Note) error {
	if h.PreSave == nil {
		return nil
	}
	for _, note := range notes {
		if err := h.PreSave(ctx, note); err != nil {
			return err
		}
	}
	return nil
}

// FirePostSave runs the per-item post-save hook for every note in order.
func (h Hooks) FirePostSave(ctx context.Context, notes []*models.Note, created bool) {
	if h.PostSave == nil {
		return
	}
	for _, note := range notes {
		h.PostSave(ctx, note, created)
	}
}

// FirePreBulkSave runs the batch pre-save hook.
func (h Hooks) FirePreBulkSave(ctx context.Context, notes []*models.Note) error {
	if h.PreBulkSave == nil {
		return nil
	}
	return h.PreBulkSave(ctx, notes)
}

// FirePostBulkSave runs the batch post-save hook.
func (h Hooks) FirePostBulkSave(ctx context.Context, notes []*models.Note) {
	if h.PostBulkSave == nil {
		return
	}
	h.PostBulkSave(ctx, notes)
}

// FirePreDelete runs the per-item pre-delete hook for every note in order.
// The first error aborts the loop and is returned.
func (h Hooks) FirePreDelete(ctx context.Context, notes []*models.Note) error {
	if h.PreDelete == nil {
		return nil
	}
	for _, note := range notes {
		if err := h.PreDelete(ctx, note); err != nil {
			return err
		}
	}
	return nil
}

// FirePostDelete runs the per-item post-delete hook for every note in order.
func (h Hooks) FirePostDelete(ctx context.Context, notes []*models.Note) {
	if h.PostDelete == nil {
		return
	}
	for _, note := range notes {
		h.PostDelete(ctx, note)
	}
}

// FirePreBulkDelete runs the batch pre-delete hook.
func (h Hooks) FirePreBulkDelete(ctx context.Context, notes []*models.Note) error {
	if h.PreBulkDelete == nil {
		return nil
	}
	return h.PreBulkDelete(ctx, notes)
}

// FirePostBulkDelete runs the batch post-delete hook.
func (h Hooks) FirePostBulkDelete(ctx context.Context, notes []*models.Note) {
	if h.PostBulkDelete == nil {
		return
	}
	h.PostBulkDelete(ctx, notes)
}

// Merge returns a hook set that fires the receiver's hooks first and then
// the other set's. Pre-hooks short-circuit on the first error.
func (h Hooks) Merge(other Hooks) Hooks {
	merged := h

	if other.PreSave != nil {
		prev := merged.PreSave
		merged.PreSave = chainErr(prev, other.PreSave)
	}
	if other.PostSave != nil {
		prev := merged.PostSave
		merged.PostSave = func(ctx context.Context, note *models.Note, created bool) {
			if prev != nil {
				prev(ctx, note, created)
			}
			other.PostSave(ctx, note, created)
		}
	}
	if other.PreBulkSave != nil {
		merged.PreBulkSave = chainBatchErr(merged.PreBulkSave, other.PreBulkSave)
	}
	if other.PostBulkSave != nil {
		merged.PostBulkSave = chainBatch(merged.PostBulkSave, other.PostBulkSave)
	}
	if other.PreDelete != nil {
		merged.PreDelete = chainErr(merged.PreDelete, other.PreDelete)
	}
	if other.PostDelete != nil {
		prev := merged.PostDelete
		merged.PostDelete = func(ctx context.Context, note *models.Note) {
			if prev != nil {
				prev(ctx, note)
			}
			other.PostDelete(ctx, note)
		}
	}
	if other.PreBulkDelete != nil {
		merged.PreBulkDelete = chainBatchErr(merged.PreBulkDelete, other.PreBulkDelete)
	}
	if other.PostBulkDelete != nil {
		merged.PostBulkDelete = chainBatch(merged.PostBulkDelete, other.PostBulkDelete)
	}

	return merged
}

func chainErr(first, second func(ctx context.Context, note *models.Note) error) func(ctx context.Context, note *models.Note) error {
	return func(ctx context.Context, note *models.Note) error {
		if first != nil {
			if err := first(ctx, note); err != nil {
				return err
			}
		}
		return second(ctx, note)
	}
}

func chainBatchErr(first, second func(ctx context.Context, notes []*models.Note) error) func(ctx context.Context, notes []*models.Note) error {
	return func(ctx context.Context, notes []*models.Note) error {
		if first != nil {
			if err := first(ctx, notes); err != nil {
				return err
			}
		}
		return second(ctx, notes)
	}
}

func chainBatch(first, second func(ctx context.Context, notes []*models.Note)) func(ctx context.Context, notes []*models.Note) {
	return func(ctx context.Context, notes []*models.Note) {
		if first != nil {
			first(ctx, notes)
		}
		second(ctx, notes)
	}
}
