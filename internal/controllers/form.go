package controllers

import (
	"kharcha/internal/core"
	"kharcha/internal/log"
	"kharcha/internal/store"
)

// FormMode is the entry state of the expense form.
type FormMode string

const (
	ModeCreate FormMode = "create"
	ModeEdit   FormMode = "edit"
)

// FormFields are the bound form inputs, held as the user typed them.
type FormFields struct {
	Title    string
	Amount   string
	Category string
	Date     string // YYYY-MM-DD, blank means today
}

// FormStore is the slice of the store the expense form needs. An edit
// never calls the store's update operation: it deletes the original and
// creates a replacement so the store assigns a fresh identifier.
type FormStore interface {
	store.ExpenseCreator
	store.ExpenseDeleter
}

// ExpenseForm drives the add/edit screen. Opened bare it starts in
// create mode; opened from a record's edit action it carries that
// record's identifier and values as seed data.
type ExpenseForm struct {
	screen
	store FormStore

	fields     FormFields
	mode       FormMode
	originalID string
}

// SubmitResult tells the caller what to do after a successful submit.
type SubmitResult struct {
	// Created is the stored record, identifier assigned by the store.
	Created core.Expense
	// NavigateBack is set after an edit: the form returns to the list
	// it came from. After a plain add the screen stays open for more
	// entries.
	NavigateBack bool
}

func NewExpenseForm(st FormStore, opts Options) *ExpenseForm {
	f := &ExpenseForm{screen: newScreen(opts), store: st}
	f.reset()
	return f
}

func (f *ExpenseForm) reset() {
	f.fields = FormFields{Category: core.DefaultCategory, Date: core.DateOf(f.opts.Now()).String()}
	f.mode = ModeCreate
	f.originalID = ""
}

// BeginCreate puts the form in the no-seed baseline.
func (f *ExpenseForm) BeginCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

// BeginEdit seeds the form from an existing record.
func (f *ExpenseForm) BeginEdit(e core.Expense) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = FormFields{
		Title:    e.Title,
		Amount:   e.Amount.String(),
		Category: e.Category,
		Date:     e.Date.String(),
	}
	f.mode = ModeEdit
	f.originalID = e.ID
}

// Cancel discards pending edits and returns to the no-seed baseline
// without any network call.
func (f *ExpenseForm) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

// Fields returns a copy of the bound inputs.
func (f *ExpenseForm) Fields() FormFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// SetFields rebinds the form inputs.
func (f *ExpenseForm) SetFields(fields FormFields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = fields
}

// Categories returns the suggested vocabulary for category pickers.
// Arbitrary values typed into the field are still accepted.
func (f *ExpenseForm) Categories() []string {
	return core.SuggestedCategories
}

// Mode returns the form's entry state.
func (f *ExpenseForm) Mode() FormMode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// parseDraft validates the bound fields into a draft. Any failure here
// halts the submit before a single network call.
func (f *ExpenseForm) parseDraft(fields FormFields) (core.Draft, error) {
	amount, err := core.ParseMoney(fields.Amount)
	if err != nil {
		return core.Draft{}, err
	}
	d := core.Draft{Title: fields.Title, Amount: amount, Category: fields.Category}
	if fields.Date != "" {
		if d.Date, err = core.ParseDate(fields.Date); err != nil {
			return core.Draft{}, err
		}
	}
	if err := d.Validate(); err != nil {
		return core.Draft{}, err
	}
	return d.Normalize(f.opts.Now()), nil
}

// Submit runs the protocol for the current mode.
//
// Create: one create call; on success the form clears and stays open,
// showing a transient success banner.
//
// Edit: delete the original record first, then create the replacement.
// The ordering keeps the store free of duplicate old+new entries at the
// cost of a window where the original is gone and the replacement is not
// yet confirmed. If the create fails inside that window the expense is
// lost; the failure surfaces as the create call's error, nothing here
// compensates for the completed delete.
func (f *ExpenseForm) Submit() (SubmitResult, error) {
	f.mu.Lock()
	fields := f.fields
	mode := f.mode
	originalID := f.originalID
	f.mu.Unlock()

	draft, err := f.parseDraft(fields)
	if err != nil {
		return SubmitResult{}, err
	}

	ctx, cancel, gen, err := f.begin()
	if err != nil {
		return SubmitResult{}, err
	}
	defer cancel()

	if mode == ModeEdit {
		if err := f.store.DeleteExpense(ctx, originalID); err != nil {
			f.finish(gen)
			return SubmitResult{}, f.reportError(log.OpReplace, err)
		}
	}

	created, err := f.store.CreateExpense(ctx, draft)
	if err != nil {
		f.finish(gen)
		return SubmitResult{}, f.reportError(log.OpCreate, err)
	}

	if !f.finish(gen) {
		return SubmitResult{}, ErrClosed
	}

	f.opts.Logger.Info("Expense saved",
		log.FieldOperation, string(mode),
		log.FieldExpenseID, created.ID,
		log.FieldAmount, created.Amount.Cents,
		log.FieldCategory, created.Category)

	f.mu.Lock()
	f.reset()
	f.mu.Unlock()

	if mode == ModeEdit {
		f.setBanner(BannerSuccess, "Expense updated successfully!")
		return SubmitResult{Created: created, NavigateBack: true}, nil
	}
	f.setBanner(BannerSuccess, "Expense added successfully!")
	return SubmitResult{Created: created}, nil
}
