package entities

import "strings"

// Category is a bank topic. Each category maps to one bank file per language.
type Category string

const (
	CategoryBasic        Category = "basic"
	CategoryContracts    Category = "contracts-&-tooling"
	CategoryDataDelivery Category = "data-&-delivery"
	CategoryLeadership   Category = "leadership-&-strategy"
	CategoryOperations   Category = "operations-&-impact"
	CategoryPlatform     Category = "platform-&-rendering"
	CategorySecurity     Category = "security-&integrity"
	CategoryUXComponents Category = "ux-&-components"
)

const (
	FilterAll       = "all" // pseudo-token selecting every category
	filterSeparator = ","
)

// AllCategories lists the known categories in their canonical order.
var AllCategories = []Category{
	CategoryBasic,
	CategoryContracts,
	CategoryDataDelivery,
	CategoryLeadership,
	CategoryOperations,
	CategoryPlatform,
	CategorySecurity,
	CategoryUXComponents,
}

// IsCategory reports whether s is a known category tag.
func IsCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// FilterResult is the outcome of parsing a category filter.
type FilterResult struct {
	Categories []Category // never empty
	Unknown    []string   // dropped tokens, in input order
	All        bool       // every category is selected
}

// ParseFilter parses a comma-separated category filter. Tokens are trimmed,
// lower-cased and deduplicated. An empty filter, one containing "all", or one
// made only of unknown tokens selects every category.
func ParseFilter(raw string) FilterResult {
	tokens := make([]string, 0)
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, filterSeparator) {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}

	if len(tokens) == 0 {
		return allCategories(nil)
	}
	for _, t := range tokens {
		if t == FilterAll {
			return allCategories(nil)
		}
	}

	var (
		known   []Category
		unknown []string
	)
	for _, t := range tokens {
		if IsCategory(t) {
			known = append(known, Category(t))
			continue
		}
		unknown = append(unknown, t)
	}

	if len(known) == 0 {
		return allCategories(unknown)
	}

	return FilterResult{
		Categories: known,
		Unknown:    unknown,
		All:        len(known) == len(AllCategories),
	}
}

// String renders the filter in canonical form: "all" or a CSV of tags.
func (f FilterResult) String() string {
	if f.All {
		return FilterAll
	}
	return JoinCategories(f.Categories)
}

// JoinCategories renders categories as a CSV filter.
func JoinCategories(categories []Category) string {
	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, filterSeparator)
}

func allCategories(unknown []string) FilterResult {
	return FilterResult{
		Categories: append([]Category(nil), AllCategories...),
		Unknown:    unknown,
		All:        true,
	}
}
