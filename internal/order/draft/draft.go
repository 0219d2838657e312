package draft

import (
	"sync"

	"github.com/shopspring/decimal"

	"tutorlink/internal/domain"
	apperrors "tutorlink/internal/errors"
	"tutorlink/internal/order/validation"
)

type TagVocabulary interface {
	Contains(value string) bool
}

// Draft holds the in-progress order a user is composing. All reads go through
// Snapshot, so a submit always sees the latest edit.
type Draft struct {
	mu         sync.RWMutex
	values     validation.Values
	errors     map[string]string
	vocabulary TagVocabulary
}

func New(vocabulary TagVocabulary) *Draft {
	return &Draft{
		values: validation.Values{
			Name:     domain.DefaultDraftName,
			Grade:    domain.DefaultDraftGrade,
			Tags:     []string{},
			MinPrice: decimal.NewFromInt(domain.DefaultDraftMinPrice),
			MaxPrice: decimal.NewFromInt(domain.DefaultDraftMaxPrice),
		},
		errors:     make(map[string]string),
		vocabulary: vocabulary,
	}
}

func (d *Draft) SetName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values.Name = name
}

func (d *Draft) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values.Title = title
}

func (d *Draft) SetDescription(description string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values.Description = description
}

func (d *Draft) SetGrade(grade string) error {
	if !domain.IsKnownGrade(grade) {
		return fieldError(validation.FieldError{
			Field:   validation.FieldGrade,
			Code:    validation.InvalidGrade,
			Message: validation.MsgInvalidGrade,
		})
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.values.Grade = grade
	return nil
}

// SelectTags replaces the selection. A selection over the limit or with a tag
// outside the vocabulary is rejected and the previous selection is kept.
func (d *Draft) SelectTags(values []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(values) > domain.MaxOrderTags {
		fe, _ := validation.CheckTagCount(len(values))
		d.errors[validation.FieldTags] = fe.Message
		return fieldError(fe)
	}

	for _, v := range values {
		if d.vocabulary != nil && !d.vocabulary.Contains(v) {
			fe := validation.FieldError{
				Field:   validation.FieldTags,
				Code:    validation.UnknownTag,
				Message: validation.MsgUnknownTag,
			}
			d.errors[validation.FieldTags] = fe.Message
			return fieldError(fe)
		}
	}

	delete(d.errors, validation.FieldTags)
	d.values.Tags = append([]string{}, values...)
	return nil
}

// SetMinPrice applies an edit of the lower bound, raising the upper bound
// when it would fall below.
func (d *Draft) SetMinPrice(raw string) error {
	price, fe := validation.ParsePrice(raw)

	d.mu.Lock()
	defer d.mu.Unlock()

	if fe != nil {
		d.values.PriceError = fe.Message
		return fieldError(*fe)
	}

	d.values.PriceError = ""
	d.values.MinPrice = price
	if price.GreaterThan(d.values.MaxPrice) {
		d.values.MaxPrice = price
	}
	return nil
}

// SetMaxPrice applies an edit of the upper bound, lowering the lower bound
// when it would rise above.
func (d *Draft) SetMaxPrice(raw string) error {
	price, fe := validation.ParsePrice(raw)

	d.mu.Lock()
	defer d.mu.Unlock()

	if fe != nil {
		d.values.PriceError = fe.Message
		return fieldError(*fe)
	}

	d.values.PriceError = ""
	d.values.MaxPrice = price
	if price.LessThan(d.values.MinPrice) {
		d.values.MinPrice = price
	}
	return nil
}

func (d *Draft) Snapshot() validation.Values {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snapshot := d.values
	snapshot.Tags = append([]string{}, d.values.Tags...)
	return snapshot
}

// ResetErrors clears the errors a submit attempt reports. A pending price
// error stays until the price is edited again.
func (d *Draft) ResetErrors() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, field := range []string{
		validation.FieldName,
		validation.FieldTitle,
		validation.FieldDescription,
		validation.FieldTags,
		validation.FieldGrade,
		validation.FieldForm,
	} {
		delete(d.errors, field)
	}
}

func (d *Draft) SetErrors(errs []validation.FieldError) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, fe := range errs {
		if fe.Field == validation.FieldPrice {
			continue
		}
		if _, ok := d.errors[fe.Field]; !ok {
			d.errors[fe.Field] = fe.Message
		}
	}
}

// Errors returns the messages currently shown next to each field.
func (d *Draft) Errors() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string]string, len(d.errors)+1)
	for field, msg := range d.errors {
		out[field] = msg
	}
	if d.values.PriceError != "" {
		out[validation.FieldPrice] = d.values.PriceError
	}
	return out
}

func fieldError(fe validation.FieldError) error {
	return apperrors.NewValidationError(fe.Message, apperrors.ValidationDetail{
		Field:   fe.Field,
		Code:    string(fe.Code),
		Message: fe.Message,
	})
}
