package syntax

import "strings"

// Category is the semantic class a rule assigns to matched text.
type Category uint8

// Categories, in no particular precedence. Precedence between rules comes
// only from rule order.
const (
	CategoryNone Category = iota
	CategoryKeyword
	CategoryBuiltin
	CategoryString
	CategoryComment
	CategoryNumber
	CategoryFunction
	CategoryDecorator
	CategoryClass
	CategoryIdentifierRole // self, this

	categoryCount
)

var categoryNames = [categoryCount]string{
	CategoryNone:           "none",
	CategoryKeyword:        "keyword",
	CategoryBuiltin:        "builtin",
	CategoryString:         "string",
	CategoryComment:        "comment",
	CategoryNumber:         "number",
	CategoryFunction:       "function",
	CategoryDecorator:      "decorator",
	CategoryClass:          "class",
	CategoryIdentifierRole: "identifier-role",
}

// categoryAliases maps alternate names used in rule files.
var categoryAliases = map[string]Category{
	"self":     CategoryIdentifierRole,
	"this":     CategoryIdentifierRole,
	"identity": CategoryIdentifierRole,
	"builtins": CategoryBuiltin,
	"keywords": CategoryKeyword,
	"type":     CategoryClass,
}

// String returns the category name.
func (c Category) String() string {
	if c < categoryCount {
		return categoryNames[c]
	}
	return "unknown"
}

// Valid reports whether c is one of the defined categories other than none.
func (c Category) Valid() bool {
	return c > CategoryNone && c < categoryCount
}

// Categories returns every valid category.
func Categories() []Category {
	out := make([]Category, 0, categoryCount-1)
	for c := CategoryNone + 1; c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}

// ParseCategory converts a name to a Category. Matching is case-insensitive.
func ParseCategory(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c := CategoryNone + 1; c < categoryCount; c++ {
		if categoryNames[c] == name {
			return c, true
		}
	}
	if c, ok := categoryAliases[name]; ok {
		return c, true
	}
	return CategoryNone, false
}
