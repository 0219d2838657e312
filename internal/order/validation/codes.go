package validation

type Code string

const (
	NameTooShort        Code = "NameTooShort"
	TitleTooShort       Code = "TitleTooShort"
	DescriptionTooShort Code = "DescriptionTooShort"
	NoTagsSelected      Code = "NoTagsSelected"
	TooManyTags         Code = "TooManyTags"
	UnknownTag          Code = "UnknownTag"
	EmptyRequiredField  Code = "EmptyRequiredField"
	InvalidPrice        Code = "InvalidPrice"
	InvalidGrade        Code = "InvalidGrade"
)

// Field names used in FieldError.Field.
const (
	FieldName        = "name"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldGrade       = "grade"
	FieldTags        = "tags"
	FieldPrice       = "price"
	FieldForm        = "form"
)

const (
	MinNameLength        = 2
	MinTitleLength       = 5
	MinDescriptionLength = 10
)

// User-facing messages, shown inline under the field.
const (
	MsgNameTooShort        = "Имя должно содержать не менее 2 символов"
	MsgTitleTooShort       = "Название должно содержать не менее 5 символов"
	MsgDescriptionTooShort = "Описание должно содержать не менее 10 символов"
	MsgNoTagsSelected      = "Выберите хотя бы один тег"
	MsgTooManyTags         = "Можно выбрать не более 3 тегов"
	MsgUnknownTag          = "Неизвестный тег"
	MsgEmptyRequiredField  = "Заполните все обязательные поля"
	MsgPriceNotNumeric     = "Введите числовое значение"
	MsgPriceNegative       = "Цена не может быть отрицательной"
	MsgPriceInverted       = "Минимальная цена не может быть больше максимальной"
	MsgInvalidGrade        = "Выберите класс или курс"
)
