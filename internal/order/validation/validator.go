package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"tutorlink/internal/domain"
	apperrors "tutorlink/internal/errors"
)

// Values is a snapshot of a draft as typed by the user.
type Values struct {
	Name        string
	Title       string
	Description string
	Grade       string
	Tags        []string
	MinPrice    decimal.Decimal
	MaxPrice    decimal.Decimal
	// PriceError holds the message of the last rejected price edit.
	PriceError string
}

type FieldError struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

type Result struct {
	Order  *domain.OrderCreate
	Errors []FieldError
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Messages maps each failing field to its first message.
func (r Result) Messages() map[string]string {
	messages := make(map[string]string, len(r.Errors))
	for _, fe := range r.Errors {
		if _, ok := messages[fe.Field]; !ok {
			messages[fe.Field] = fe.Message
		}
	}
	return messages
}

func (r Result) Has(code Code) bool {
	for _, fe := range r.Errors {
		if fe.Code == code {
			return true
		}
	}
	return false
}

// Err returns the failures as a *errors.ValidationError, or nil when valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	details := make([]apperrors.ValidationDetail, len(r.Errors))
	for i, fe := range r.Errors {
		details[i] = apperrors.ValidationDetail{
			Field:   fe.Field,
			Code:    string(fe.Code),
			Message: fe.Message,
		}
	}
	return apperrors.NewValidationError("validation failed", details...)
}

// Validate checks every rule and reports all failures together.
func Validate(v Values) Result {
	var errs []FieldError

	name := strings.TrimSpace(v.Name)
	title := strings.TrimSpace(v.Title)
	description := strings.TrimSpace(v.Description)

	if utf8.RuneCountInString(name) < MinNameLength {
		errs = append(errs, FieldError{Field: FieldName, Code: NameTooShort, Message: MsgNameTooShort})
	}
	if utf8.RuneCountInString(title) < MinTitleLength {
		errs = append(errs, FieldError{Field: FieldTitle, Code: TitleTooShort, Message: MsgTitleTooShort})
	}
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		errs = append(errs, FieldError{Field: FieldDescription, Code: DescriptionTooShort, Message: MsgDescriptionTooShort})
	}

	if fe, ok := CheckTagCount(len(v.Tags)); !ok {
		errs = append(errs, fe)
	}

	if name == "" || title == "" || description == "" {
		errs = append(errs, FieldError{Field: FieldForm, Code: EmptyRequiredField, Message: MsgEmptyRequiredField})
	}

	if fe, ok := checkPrices(v); !ok {
		errs = append(errs, fe)
	}

	if !domain.IsKnownGrade(v.Grade) {
		errs = append(errs, FieldError{Field: FieldGrade, Code: InvalidGrade, Message: MsgInvalidGrade})
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}

	return Result{
		Order: &domain.OrderCreate{
			Name:        name,
			Title:       title,
			Description: description,
			Grade:       v.Grade,
			Tags:        append([]string(nil), v.Tags...),
			MinPrice:    v.MinPrice.InexactFloat64(),
			MaxPrice:    v.MaxPrice.InexactFloat64(),
		},
	}
}

// CheckTagCount reports whether n tags is an acceptable selection.
func CheckTagCount(n int) (FieldError, bool) {
	switch {
	case n == 0:
		return FieldError{Field: FieldTags, Code: NoTagsSelected, Message: MsgNoTagsSelected}, false
	case n > domain.MaxOrderTags:
		return FieldError{Field: FieldTags, Code: TooManyTags, Message: MsgTooManyTags}, false
	}
	return FieldError{}, true
}

func checkPrices(v Values) (FieldError, bool) {
	if v.PriceError != "" {
		return FieldError{Field: FieldPrice, Code: InvalidPrice, Message: v.PriceError}, false
	}
	if v.MinPrice.IsNegative() || v.MaxPrice.IsNegative() {
		return FieldError{Field: FieldPrice, Code: InvalidPrice, Message: MsgPriceNegative}, false
	}
	if v.MinPrice.GreaterThan(v.MaxPrice) {
		return FieldError{Field: FieldPrice, Code: InvalidPrice, Message: MsgPriceInverted}, false
	}
	return FieldError{}, true
}

// ParsePrice parses one price bound as typed into a numeric input. Blank input
// counts as zero.
func ParsePrice(raw string) (decimal.Decimal, *FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &FieldError{Field: FieldPrice, Code: InvalidPrice, Message: MsgPriceNotNumeric}
	}
	if price.IsNegative() {
		return decimal.Decimal{}, &FieldError{Field: FieldPrice, Code: InvalidPrice, Message: MsgPriceNegative}
	}
	return price, nil
}

// ValidateUpdate checks an edit of a posted order with the rules of a new
// one. Name and grade cannot be edited.
func ValidateUpdate(u domain.OrderUpdate) Result {
	var errs []FieldError

	title := strings.TrimSpace(u.Title)
	description := strings.TrimSpace(u.Description)

	if utf8.RuneCountInString(title) < MinTitleLength {
		errs = append(errs, FieldError{Field: FieldTitle, Code: TitleTooShort, Message: MsgTitleTooShort})
	}
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		errs = append(errs, FieldError{Field: FieldDescription, Code: DescriptionTooShort, Message: MsgDescriptionTooShort})
	}
	if fe, ok := CheckTagCount(len(u.Tags)); !ok {
		errs = append(errs, fe)
	}
	if title == "" || description == "" {
		errs = append(errs, FieldError{Field: FieldForm, Code: EmptyRequiredField, Message: MsgEmptyRequiredField})
	}
	if fe, ok := checkPrices(Values{
		MinPrice: decimal.NewFromFloat(u.MinPrice),
		MaxPrice: decimal.NewFromFloat(u.MaxPrice),
	}); !ok {
		errs = append(errs, fe)
	}

	return Result{Errors: errs}
}
