package foundationtest

import (
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	unexpectedMethods = "%d unexpected method: %s"
	missingMethods    = "%d missing method: %s"
)

var methodCatalog = newMethodCatalog()

func newMethodCatalog() catalog.Catalog {
	b := catalog.NewBuilder()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(b.Set(language.English, unexpectedMethods, plural.Selectf(1, "%d",
		"=1", "%d unexpected method: %s",
		"other", "%d unexpected methods: %s",
	)))
	must(b.Set(language.English, missingMethods, plural.Selectf(1, "%d",
		"=1", "%d missing method: %s",
		"other", "%d missing methods: %s",
	)))
	return b
}

// unequalMessage describes how actual differs from expected, names present in
// actual only first.  It returns "" when both hold the same names.
func unequalMessage(actual, expected []string) string {
	p := message.NewPrinter(language.English, message.Catalog(methodCatalog))
	format := func(values []string, key string) string {
		if len(values) == 0 {
			return ""
		}
		return p.Sprintf(key, len(values), strings.Join(values, ", "))
	}

	actualSet, expectedSet := toSet(actual), toSet(expected)
	var messages []string
	if s := format(difference(actual, expectedSet), unexpectedMethods); s != "" {
		messages = append(messages, s)
	}
	if s := format(difference(expected, actualSet), missingMethods); s != "" {
		messages = append(messages, s)
	}
	if len(messages) == 0 {
		return ""
	}
	return "Found " + strings.Join(messages, "; ")
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// difference returns the values not in exclude, each once, in first-seen
// order.
func difference(values []string, exclude map[string]bool) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range values {
		if exclude[v] || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
